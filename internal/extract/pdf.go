package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDF extracts text with github.com/ledongthuc/pdf.
type PDF struct{}

func NewPDF() *PDF {
	return &PDF{}
}

func (e *PDF) Name() string { return EnginePDF }

func (e *PDF) Extract(path string) (text string, err error) {
	// The parser panics on some malformed cross reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = unreadable(path, fmt.Errorf("parser panic: %v", r))
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", unreadable(path, err)
	}
	defer f.Close()

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", unreadable(path, fmt.Errorf("page %d: %w", i, err))
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(content)
	}

	return builder.String(), nil
}
