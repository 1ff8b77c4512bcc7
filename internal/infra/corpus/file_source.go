package corpus

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/faq-widget/internal/domain/faq"
)

// FileSource reads a JSON array or YAML list of entries from disk.
type FileSource struct {
	path string
}

// NewFileSource constructs a file backed source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the watched file path.
func (s *FileSource) Path() string {
	return s.path
}

// Load implements Source.
func (s *FileSource) Load(_ context.Context) ([]faq.Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		var entries []faq.Entry
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parse corpus file: %w", err)
		}
		return entries, nil
	default:
		return decodeJSON(bytes.NewReader(data))
	}
}

// Describe implements Source.
func (s *FileSource) Describe() string {
	return "file:" + s.path
}

var _ Source = (*FileSource)(nil)
