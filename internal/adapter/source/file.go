package source

import (
	"context"
	"fmt"
	"os"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// FileSource reads the dataset document from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource creates a source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements domain.DatasetSource.
func (s *FileSource) Name() string { return "file" }

// Fetch reads the whole file.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}
	payload, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read dataset file: %w", domain.ErrDataUnavailable, err)
	}
	return payload, nil
}
