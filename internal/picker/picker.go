package picker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/manifoldco/promptui"
)

const (
	PromptSelectAll = "Select all"
	PromptCompare   = "Compare selected"
	PromptCancel    = "Cancel"

	pdfExt   = ".pdf"
	pageSize = 12
)

// ErrNoPDFs means the directory holds nothing to pick from.
var ErrNoPDFs = errors.New("no pdf files found")

type selectRunner func(label string, items []string, cursor int) (int, string, error)

// Picker is an interactive multi-file selector limited to PDF files.
type Picker struct {
	run selectRunner
}

func New() *Picker {
	return &Picker{run: runSelect}
}

func runSelect(label string, items []string, cursor int) (int, string, error) {
	prompt := promptui.Select{
		Label:        label,
		Items:        items,
		Size:         pageSize,
		CursorPos:    cursor,
		HideSelected: true,
	}
	return prompt.Run()
}

// Select lets the user toggle PDF files in dir and returns the chosen paths in
// listing order. Cancel returns an empty selection.
func (p *Picker) Select(dir string) ([]string, error) {
	files, err := ListPDFs(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPDFs, dir)
	}

	selected := make([]bool, len(files))
	cursor := 0

	for {
		items := make([]string, 0, len(files)+3)
		count := 0
		for i, name := range files {
			mark := "[ ]"
			if selected[i] {
				mark = "[x]"
				count++
			}
			items = append(items, fmt.Sprintf("%s %s", mark, name))
		}
		items = append(items, PromptSelectAll, fmt.Sprintf("%s (%d)", PromptCompare, count), PromptCancel)

		idx, _, err := p.run("Choose resumes and press ENTER", items, cursor)
		if err != nil {
			return nil, err
		}
		cursor = idx

		switch {
		case idx < len(files):
			selected[idx] = !selected[idx]
		case idx == len(files):
			all := count != len(files)
			for i := range selected {
				selected[i] = all
			}
		case idx == len(files)+1:
			paths := make([]string, 0, count)
			for i, name := range files {
				if selected[i] {
					paths = append(paths, filepath.Join(dir, name))
				}
			}
			return paths, nil
		default:
			return []string{}, nil
		}
	}
}

// ListPDFs returns the sorted names of regular files with a .pdf extension in dir.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsPDF(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Strings(names)
	return names, nil
}

// IsPDF reports whether path carries a .pdf extension, ignoring case.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), pdfExt)
}
