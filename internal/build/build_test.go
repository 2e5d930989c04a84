package build

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Bitlatte/staticblog/internal/config"
	"github.com/Bitlatte/staticblog/internal/content"
)

func article(title, date, summary, slug string) string {
	return "---\ntitle: " + title + "\ndate: " + date + "\nsummary: " + summary + "\nslug: " + slug + "\n---\n\n# " + title + "\n\nBody of " + slug + ".\n"
}

// newBlog lays out a content directory and an output directory with its
// posts/ subdirectory, and returns a config pointing at both.
func newBlog(t *testing.T, files map[string]string) config.Config {
	t.Helper()
	root := t.TempDir()
	contentDir := filepath.Join(root, "active_articles")
	outDir := filepath.Join(root, "out")
	for _, dir := range []string{contentDir, filepath.Join(outDir, "posts")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(contentDir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := config.Default()
	cfg.ContentDir = contentDir
	cfg.OutputDir = outDir
	cfg.SiteFile = ""
	return cfg
}

func readOut(t *testing.T, cfg config.Config, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func outputFiles(t *testing.T, cfg config.Config) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(cfg.OutputDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(cfg.OutputDir, path)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return files
}

func TestRunScenario(t *testing.T) {
	cfg := newBlog(t, map[string]string{
		"2024-01-01-a.md": article("Post A", "2024-01-02", "Summary of A", "a"),
		"2024-01-02-b.md": article("Post B", "2024-01-01", "Summary of B", "b"),
		"about.md":        article("About", "2020-01-01", "Who I am", "about-page"),
	})
	var stdout bytes.Buffer

	result, err := Run(context.Background(), cfg, &stdout, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Sources != 3 || result.Slugs != 3 || result.Posts != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(result.Written) != 4 {
		t.Fatalf("expected 4 files written, got %v", result.Written)
	}

	index := readOut(t, cfg, "index.html")
	ib, ia := strings.Index(index, `id="b"`), strings.Index(index, `id="a"`)
	if ib < 0 || ia < 0 || ib > ia {
		t.Fatalf("expected b listed before a: %s", index)
	}
	if strings.Contains(index, "about-page") {
		t.Fatalf("about page must not be listed on the homepage: %s", index)
	}

	for slug, want := range map[string][]string{
		"a": {"Post A", "Summary of A"},
		"b": {"Post B", "Summary of B"},
	} {
		page := readOut(t, cfg, "posts/"+slug+".html")
		for _, s := range want {
			if !strings.Contains(page, s) {
				t.Fatalf("posts/%s.html missing %q", slug, s)
			}
		}
	}

	about := readOut(t, cfg, "about.html")
	if !strings.Contains(about, "Body of about-page.") {
		t.Fatalf("about page missing body: %s", about)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "posts", "about-page.html")); !os.IsNotExist(err) {
		t.Fatalf("posts/about-page.html must not exist: %v", err)
	}

	files := outputFiles(t, cfg)
	posts := 0
	for _, f := range files {
		if strings.HasPrefix(f, "posts/") {
			posts++
		}
	}
	if posts != result.Sources-1 {
		t.Fatalf("expected %d post files, got %d (%v)", result.Sources-1, posts, files)
	}
}

func TestRunListing(t *testing.T) {
	cfg := newBlog(t, map[string]string{
		"2024-01-01-a.md": article("Post A", "2024-01-02", "S", "a"),
		"about.md":        article("About", "2020-01-01", "S", "about-page"),
	})
	var stdout bytes.Buffer

	if _, err := Run(context.Background(), cfg, &stdout, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "Following files are active blog posts:\n" +
		"fileName ________________ date\n" +
		"2024-01-01-a.md _________ 2024-01-02\n" +
		"about.md ________________ 2020-01-01\n"
	if stdout.String() != want {
		t.Fatalf("unexpected listing:\n%s\nwant:\n%s", stdout.String(), want)
	}
}

func TestRunDuplicateSlugLastWriteWins(t *testing.T) {
	cfg := newBlog(t, map[string]string{
		"1-first.md":  article("First Title", "2024-01-01", "First summary", "same"),
		"2-second.md": article("Second Title", "2024-02-01", "Second summary", "same"),
		"about.md":    article("About", "2020-01-01", "S", "about-page"),
	})

	result, err := Run(context.Background(), cfg, &bytes.Buffer{}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Slugs != 2 || result.Posts != 1 {
		t.Fatalf("expected two slugs and one post, got %+v", result)
	}
	page := readOut(t, cfg, "posts/same.html")
	if !strings.Contains(page, "Second Title") || strings.Contains(page, "First Title") {
		t.Fatalf("expected the later file to win: %s", page)
	}
}

func TestRunBadDateWritesNothing(t *testing.T) {
	cfg := newBlog(t, map[string]string{
		"a.md":     article("A", "2024-01-01", "S", "a"),
		"b.md":     article("B", "2024/01/02", "S", "b"),
		"about.md": article("About", "2020-01-01", "S", "about-page"),
	})

	_, err := Run(context.Background(), cfg, &bytes.Buffer{}, nil)
	var dateErr *content.DateError
	if !errors.As(err, &dateErr) {
		t.Fatalf("expected DateError, got %v", err)
	}
	if files := outputFiles(t, cfg); len(files) != 0 {
		t.Fatalf("expected no output files, got %v", files)
	}
}

func TestRunMissingFieldIsFatal(t *testing.T) {
	cfg := newBlog(t, map[string]string{
		"a.md":     "---\ntitle: A\ndate: 2024-01-01\nslug: a\n---\nbody\n",
		"about.md": article("About", "2020-01-01", "S", "about-page"),
	})

	_, err := Run(context.Background(), cfg, &bytes.Buffer{}, nil)
	var fieldErr *content.MissingFieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "summary" {
		t.Fatalf("expected missing summary, got %v", err)
	}
	if files := outputFiles(t, cfg); len(files) != 0 {
		t.Fatalf("expected no output files, got %v", files)
	}
}

func TestRunMissingAbout(t *testing.T) {
	cfg := newBlog(t, map[string]string{
		"a.md": article("A", "2024-01-01", "S", "a"),
	})

	_, err := Run(context.Background(), cfg, &bytes.Buffer{}, nil)
	if !errors.Is(err, ErrAboutMissing) {
		t.Fatalf("expected ErrAboutMissing, got %v", err)
	}
}

func TestRunMissingPostsDir(t *testing.T) {
	cfg := newBlog(t, map[string]string{
		"a.md":     article("A", "2024-01-01", "S", "a"),
		"about.md": article("About", "2020-01-01", "S", "about-page"),
	})
	if err := os.Remove(filepath.Join(cfg.OutputDir, "posts")); err != nil {
		t.Fatal(err)
	}

	if _, err := Run(context.Background(), cfg, &bytes.Buffer{}, nil); err == nil {
		t.Fatal("expected a write error without posts/")
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "posts")); !os.IsNotExist(err) {
		t.Fatal("posts/ must not be created")
	}
}

func TestRunMissingTemplate(t *testing.T) {
	cfg := newBlog(t, map[string]string{
		"about.md": article("About", "2020-01-01", "S", "about-page"),
	})
	cfg.TemplatesDir = t.TempDir()
	if err := os.WriteFile(filepath.Join(cfg.TemplatesDir, "homePage.html"), []byte("home"), 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout bytes.Buffer

	if _, err := Run(context.Background(), cfg, &stdout, nil); err == nil {
		t.Fatal("expected a template error")
	}
	if stdout.Len() != 0 {
		t.Fatalf("templates should fail before any content is read, got %q", stdout.String())
	}
}

func TestRunSiteParams(t *testing.T) {
	cfg := newBlog(t, map[string]string{
		"about.md": article("About", "2020-01-01", "S", "about-page"),
	})
	cfg.SiteFile = filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(cfg.SiteFile, []byte("author: Jo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.TemplatesDir = t.TempDir()
	for name, data := range map[string]string{
		"homePage.html":  "{{.Site.Params.author}}",
		"postPage.html":  "{{.Post.Title}}",
		"aboutPage.html": "{{.Page.Title}}",
	} {
		if err := os.WriteFile(filepath.Join(cfg.TemplatesDir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := Run(context.Background(), cfg, &bytes.Buffer{}, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := readOut(t, cfg, "index.html"); got != "Jo" {
		t.Fatalf("expected site param in homepage, got %q", got)
	}
}

func TestListingLine(t *testing.T) {
	tests := []struct {
		name, value, want string
	}{
		{"fileName", "date", "fileName ________________ date"},
		{"a-rather-long-file-name-here.md", "2024-01-01", "a-rather-long-file-name-here.md  2024-01-01"},
	}
	for _, tt := range tests {
		if got := listingLine(tt.name, tt.value); got != tt.want {
			t.Errorf("listingLine(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
