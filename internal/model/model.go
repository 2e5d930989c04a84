package model

import (
	"html/template"
	"time"
)

// DateLayout is the only accepted format for an article's date field.
const DateLayout = "2006-01-02"

// Article is one parsed source file: its required metadata plus the
// rendered Markdown body.
type Article struct {
	Title      string
	Date       time.Time
	DateString string
	Summary    string
	Slug       string
	Content    template.HTML
	SourceName string
	// Frontmatter is the full metadata block, including keys beyond the
	// required four.
	Frontmatter map[string]interface{}
}

// Site holds site-wide values available to every template.
type Site struct {
	Title   string
	BaseURL string
	Params  map[string]interface{}
}
