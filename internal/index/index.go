// Package index collects parsed articles by slug and projects the
// date-ordered post list for the homepage.
package index

import (
	"sort"

	"github.com/Bitlatte/staticblog/internal/model"
)

// AboutSlug marks the article rendered as the standalone about page
// instead of as a post.
const AboutSlug = "about-page"

// Index maps slugs to articles and remembers first-insertion order.
type Index struct {
	order  []string
	bySlug map[string]*model.Article
}

// New returns an empty Index.
func New() *Index {
	return &Index{bySlug: make(map[string]*model.Article)}
}

// Insert stores a under its slug. An existing entry with the same slug is
// replaced in place, so it keeps its original position.
func (idx *Index) Insert(a *model.Article) {
	if _, ok := idx.bySlug[a.Slug]; !ok {
		idx.order = append(idx.order, a.Slug)
	}
	idx.bySlug[a.Slug] = a
}

// Len reports the number of distinct slugs, the about page included.
func (idx *Index) Len() int {
	return len(idx.order)
}

func (idx *Index) Get(slug string) (*model.Article, bool) {
	a, ok := idx.bySlug[slug]
	return a, ok
}

// About returns the about-page article, if one was inserted.
func (idx *Index) About() (*model.Article, bool) {
	return idx.Get(AboutSlug)
}

// Sorted returns the posts in ascending date order without the about
// page. Equal dates keep insertion order.
func (idx *Index) Sorted() []*model.Article {
	posts := make([]*model.Article, 0, len(idx.order))
	for _, slug := range idx.order {
		if slug == AboutSlug {
			continue
		}
		posts = append(posts, idx.bySlug[slug])
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.Before(posts[j].Date)
	})
	return posts
}
