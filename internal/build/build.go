// Package build runs the blog generation pipeline from content directory
// to output directory in one pass.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/Bitlatte/staticblog/internal/config"
	"github.com/Bitlatte/staticblog/internal/content"
	"github.com/Bitlatte/staticblog/internal/index"
	"github.com/Bitlatte/staticblog/internal/model"
	"github.com/Bitlatte/staticblog/internal/output"
	"github.com/Bitlatte/staticblog/internal/render"
)

// ErrAboutMissing is returned when no source declares the about-page slug.
var ErrAboutMissing = errors.New("no article with slug '" + index.AboutSlug + "' found")

const listingColumn = 25

// Result summarizes a completed run.
type Result struct {
	Sources int
	Slugs   int
	Posts   int
	Written []string
}

// Run generates the blog described by cfg. The operator listing goes to
// stdout, diagnostics to logger. All parsing and rendering finishes
// before the first file is written, so a bad source leaves the output
// directory untouched.
func Run(ctx context.Context, cfg config.Config, stdout io.Writer, logger *slog.Logger) (Result, error) {
	var result Result
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	site, err := loadSite(cfg)
	if err != nil {
		return result, err
	}

	var templatesFS fs.FS
	if cfg.TemplatesDir != "" {
		templatesFS = os.DirFS(cfg.TemplatesDir)
		logger.Debug("using layouts directory", "dir", cfg.TemplatesDir)
	}
	renderer, err := render.New(render.Config{FS: templatesFS, Site: site})
	if err != nil {
		return result, fmt.Errorf("failed to load templates: %w", err)
	}

	loader := content.NewLoader(cfg.ContentDir)
	sources, err := loader.Sources()
	if err != nil {
		return result, err
	}
	result.Sources = len(sources)
	logger.Debug("discovered sources", "dir", loader.Dir(), "count", len(sources))

	parser := content.NewParser(content.ParserOptions{
		CodeStyle: cfg.CodeStyle,
		HardWraps: cfg.HardWraps,
	})

	fmt.Fprintln(stdout, "Following files are active blog posts:")
	fmt.Fprintln(stdout, listingLine("fileName", "date"))
	posts := index.New()
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		article, err := parser.Parse(src)
		if err != nil {
			return result, err
		}
		fmt.Fprintln(stdout, listingLine(src.Name, article.DateString))
		if prev, ok := posts.Get(article.Slug); ok {
			logger.Debug("slug redeclared, keeping later file", "slug", article.Slug, "previous", prev.SourceName, "file", src.Name)
		}
		posts.Insert(article)
	}

	about, ok := posts.About()
	if !ok {
		return result, ErrAboutMissing
	}
	result.Slugs = posts.Len()
	sorted := posts.Sorted()
	result.Posts = len(sorted)

	homeHTML, err := renderer.RenderHome(sorted)
	if err != nil {
		return result, err
	}
	postHTML := make([]string, len(sorted))
	for i, post := range sorted {
		if postHTML[i], err = renderer.RenderPost(post); err != nil {
			return result, err
		}
	}
	aboutHTML, err := renderer.RenderAbout(about)
	if err != nil {
		return result, err
	}

	writer := output.NewWriter(cfg.OutputDir)
	path, err := writer.WriteIndex(homeHTML)
	if err != nil {
		return result, err
	}
	result.Written = append(result.Written, path)
	for i, post := range sorted {
		path, err := writer.WritePost(post.Slug, postHTML[i])
		if err != nil {
			return result, err
		}
		result.Written = append(result.Written, path)
		logger.Debug("generated post", "slug", post.Slug, "path", path)
	}
	path, err = writer.WriteAbout(aboutHTML)
	if err != nil {
		return result, err
	}
	result.Written = append(result.Written, path)

	logger.Info("build completed", "posts", result.Posts, "files", len(result.Written), "out", cfg.OutputDir)
	return result, nil
}

// listingLine pads name with underscores to the listing column, then
// appends value.
func listingLine(name, value string) string {
	name += " "
	if pad := listingColumn - len(name); pad > 0 {
		name += strings.Repeat("_", pad)
	}
	return name + " " + value
}

// loadSite builds the template site values. The site file is optional;
// when present its top-level keys become Site.Params.
func loadSite(cfg config.Config) (model.Site, error) {
	site := model.Site{
		Title:   cfg.SiteTitle,
		BaseURL: cfg.BaseURL,
		Params:  map[string]interface{}{},
	}
	if cfg.SiteFile == "" {
		return site, nil
	}
	yamlFile, err := os.ReadFile(cfg.SiteFile)
	if errors.Is(err, fs.ErrNotExist) {
		return site, nil
	}
	if err != nil {
		return site, fmt.Errorf("error reading site file %s: %w", cfg.SiteFile, err)
	}
	if err := yaml.Unmarshal(yamlFile, &site.Params); err != nil {
		return site, fmt.Errorf("error unmarshalling site file %s: %w", cfg.SiteFile, err)
	}
	return site, nil
}
