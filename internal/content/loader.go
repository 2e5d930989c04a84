package content

import (
	"fmt"
	"os"
	"path/filepath"
)

type Source struct {
	Name string
	Path string
	Data []byte
}

type Loader struct {
	dir string
}

// NewLoader returns a Loader for dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

func (l *Loader) Dir() string {
	return l.dir
}

// Sources reads every entry in the content directory in name order.
// Nothing is filtered out: an entry that cannot be read as a file, such
// as a subdirectory, fails the whole load.
func (l *Loader) Sources() ([]Source, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read content directory '%s': %w", l.dir, err)
	}

	sources := make([]Source, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(l.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
		}
		sources = append(sources, Source{
			Name: entry.Name(),
			Path: path,
			Data: data,
		})
	}
	return sources, nil
}
