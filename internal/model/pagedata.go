package model

// HomePage is the context for the homepage template.
type HomePage struct {
	Site  Site
	Posts []*Article
}

type PostPage struct {
	Site Site
	Post *Article
}

type AboutPage struct {
	Site Site
	Page *Article
}
