package extract

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Fitz extracts text through MuPDF bindings.
type Fitz struct{}

func NewFitz() *Fitz {
	return &Fitz{}
}

func (e *Fitz) Name() string { return EngineFitz }

func (e *Fitz) Extract(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", unreadable(path, err)
	}
	defer doc.Close()

	var builder strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		content, err := doc.Text(n)
		if err != nil {
			return "", unreadable(path, fmt.Errorf("page %d: %w", n+1, err))
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(content)
	}

	return builder.String(), nil
}
