package extract

import (
	"errors"
	"fmt"
	"strings"
)

const (
	EnginePDF  = "pdf"
	EngineFitz = "fitz"
)

// ErrUnreadable covers every reason a resume could not be turned into text:
// missing file, permission problems and broken PDFs.
var ErrUnreadable = errors.New("file unreadable")

// Extractor turns a PDF on disk into plain text, pages joined in order.
type Extractor interface {
	Name() string
	Extract(path string) (string, error)
}

// New returns the extractor for the given engine name. Empty means the pure Go engine.
func New(engine string) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EnginePDF:
		return NewPDF(), nil
	case EngineFitz:
		return NewFitz(), nil
	default:
		return nil, fmt.Errorf("unsupported extractor engine: %s", engine)
	}
}

func unreadable(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
}
