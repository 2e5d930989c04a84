package content

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	fences "github.com/stefanfritsch/goldmark-fences"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/Bitlatte/staticblog/internal/model"
)

// RequiredFields lists the metadata keys every article must declare, in
// the order they are checked.
var RequiredFields = []string{"title", "date", "summary", "slug"}

// ParserOptions configures the Markdown engine.
type ParserOptions struct {
	// CodeStyle is the chroma style used for fenced code blocks.
	CodeStyle string
	HardWraps bool
}

// Parser turns a source file into an Article. The goldmark engine is
// built once and reused for every file.
type Parser struct {
	md goldmark.Markdown
}

// NewParser builds a Parser with GFM, footnotes, ::: fenced containers
// and chroma highlighting enabled.
func NewParser(opts ParserOptions) *Parser {
	style := opts.CodeStyle
	if style == "" {
		style = "monokai"
	}

	rendererOptions := []renderer.Option{gmhtml.WithUnsafe()}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, gmhtml.WithHardWraps())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			&fences.Extender{},
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(chromahtml.TabWidth(2)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(rendererOptions...),
	)
	return &Parser{md: md}
}

// Parse splits the metadata header from the body, renders the body and
// validates the required fields.
func (p *Parser) Parse(src Source) (*model.Article, error) {
	var meta map[string]interface{}
	body, err := frontmatter.Parse(bytes.NewReader(src.Data), &meta)
	if err != nil {
		return nil, fmt.Errorf("failed to parse metadata for '%s': %w", src.Name, err)
	}
	if meta == nil {
		meta = make(map[string]interface{})
	}

	fields := make(map[string]string, len(RequiredFields))
	for _, key := range RequiredFields {
		value := metaString(meta[key])
		if value == "" {
			return nil, &MissingFieldError{File: src.Name, Field: key}
		}
		fields[key] = value
	}

	date, err := time.Parse(model.DateLayout, fields["date"])
	if err != nil {
		return nil, &DateError{File: src.Name, Value: fields["date"], Err: err}
	}

	var htmlBuffer bytes.Buffer
	if err := p.md.Convert(body, &htmlBuffer); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML for file '%s': %w", src.Name, err)
	}

	return &model.Article{
		Title:       fields["title"],
		Date:        date,
		DateString:  fields["date"],
		Summary:     fields["summary"],
		Slug:        fields["slug"],
		Content:     template.HTML(htmlBuffer.String()),
		SourceName:  src.Name,
		Frontmatter: meta,
	}, nil
}

// metaString flattens a decoded metadata value. YAML timestamps come back
// as time.Time and are written back in the date layout.
func metaString(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case time.Time:
		if value.Hour() != 0 || value.Minute() != 0 || value.Second() != 0 || value.Nanosecond() != 0 {
			// Keep the clock so the date check rejects it.
			return value.Format(time.RFC3339)
		}
		return value.Format(model.DateLayout)
	default:
		return strings.TrimSpace(fmt.Sprint(value))
	}
}
