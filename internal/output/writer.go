package output

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	IndexFile = "index.html"
	AboutFile = "about.html"
	PostsDir  = "posts"
)

// Writer places rendered pages under a fixed output layout. It never
// creates directories: the output directory and its posts/ subdirectory
// must already exist.
type Writer struct {
	dir string
}

// NewWriter returns a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

func (w *Writer) IndexPath() string {
	return filepath.Join(w.dir, IndexFile)
}

func (w *Writer) AboutPath() string {
	return filepath.Join(w.dir, AboutFile)
}

// PostPath is where WritePost writes the post with the given slug. The
// slug is used verbatim, so one containing "/" or ".." is not contained
// to posts/.
func (w *Writer) PostPath(slug string) string {
	return filepath.Join(w.dir, PostsDir, slug+".html")
}

// WriteIndex writes the homepage.
func (w *Writer) WriteIndex(html string) (string, error) {
	return w.write(w.IndexPath(), html)
}

// WritePost writes posts/<slug>.html.
func (w *Writer) WritePost(slug, html string) (string, error) {
	return w.write(w.PostPath(slug), html)
}

// WriteAbout writes the about page.
func (w *Writer) WriteAbout(html string) (string, error) {
	return w.write(w.AboutPath(), html)
}

// write creates or truncates path. There is no temp-file swap, so a
// failure leaves whatever was already written in place.
func (w *Writer) write(path, html string) (string, error) {
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("failed to write output file '%s': %w", path, err)
	}
	return path, nil
}
