// Package textsource abstracts where already-extracted document text
// comes from. OCR and parsing happen upstream; the engine only ever
// sees plain UTF-8 text.
package textsource

import (
	"context"
	"fmt"
	"os"
)

// Source supplies the extracted text for a document reference.
type Source interface {
	GetText(ctx context.Context, documentRef string) (string, error)
}

// FileSource reads document text from the local filesystem, treating
// the reference as a path.
type FileSource struct{}

func NewFileSource() *FileSource {
	return &FileSource{}
}

func (s *FileSource) GetText(ctx context.Context, documentRef string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(documentRef)
	if err != nil {
		return "", fmt.Errorf("read document %q: %w", documentRef, err)
	}
	return string(data), nil
}
