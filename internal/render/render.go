package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Bitlatte/staticblog/internal/model"
)

const (
	DefaultHomeTemplate  = "homePage.html"
	DefaultPostTemplate  = "postPage.html"
	DefaultAboutTemplate = "aboutPage.html"
)

// ErrTemplateMissing is returned by New when one of the three page
// templates is not defined by the template set.
var ErrTemplateMissing = errors.New("template not found")

//go:embed templates
var embedded embed.FS

// Builtin returns the template set shipped with the binary.
func Builtin() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Config is built once at startup and handed to New.
type Config struct {
	// FS holds *.html page templates and an optional partials/ directory.
	// A nil FS selects the builtin set.
	FS    fs.FS
	Home  string
	Post  string
	About string
	Site  model.Site
}

// Renderer executes the three page templates against their contexts.
type Renderer struct {
	templates *template.Template
	home      string
	post      string
	about     string
	site      model.Site
}

// New parses the template set and resolves the page templates. Any of
// the three missing is an error.
func New(cfg Config) (*Renderer, error) {
	fsys := cfg.FS
	if fsys == nil {
		fsys = Builtin()
	}
	r := &Renderer{
		home:  orDefault(cfg.Home, DefaultHomeTemplate),
		post:  orDefault(cfg.Post, DefaultPostTemplate),
		about: orDefault(cfg.About, DefaultAboutTemplate),
		site:  cfg.Site,
	}

	var patterns []string
	for _, pattern := range []string{"*.html", "partials/*.html"} {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to find layout files: %w", err)
		}
		if len(matches) > 0 {
			patterns = append(patterns, pattern)
		}
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: no .html layout files found", ErrTemplateMissing)
	}

	templates, err := template.New("").Funcs(funcMap()).ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout files: %w", err)
	}
	for _, name := range []string{r.home, r.post, r.about} {
		if templates.Lookup(name) == nil {
			return nil, fmt.Errorf("%w: %s", ErrTemplateMissing, name)
		}
	}
	r.templates = templates
	return r, nil
}

// RenderHome renders the homepage for posts, which must already be in
// display order.
func (r *Renderer) RenderHome(posts []*model.Article) (string, error) {
	return r.execute(r.home, model.HomePage{Site: r.site, Posts: posts})
}

func (r *Renderer) RenderPost(post *model.Article) (string, error) {
	return r.execute(r.post, model.PostPage{Site: r.site, Post: post})
}

// RenderAbout renders the standalone about page.
func (r *Renderer) RenderAbout(page *model.Article) (string, error) {
	return r.execute(r.about, model.AboutPage{Site: r.site, Page: page})
}

func (r *Renderer) execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template '%s': %w", name, err)
	}
	return buf.String(), nil
}

func funcMap() template.FuncMap {
	titleCaser := cases.Title(language.English)
	return template.FuncMap{
		"formatDate": func(layout string, t time.Time) string {
			return t.Format(layout)
		},
		"titlecase": func(s string) string {
			return titleCaser.String(s)
		},
		"postURL": PostURL,
	}
}

// PostURL is the output path of a post relative to the site root.
func PostURL(slug string) string {
	return "posts/" + slug + ".html"
}

func orDefault(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
