package display

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spigell/resume-compare/internal/resume"
)

const (
	separatorWidth = 50
	none           = "None"
)

// ErrLocked is returned when content is written outside of a render.
var ErrLocked = errors.New("board is read-only")

type State int

const (
	Locked State = iota
	Editable
)

func (s State) String() string {
	if s == Editable {
		return "editable"
	}
	return "locked"
}

// Board is the read-only results area. Only Render may change its content and
// every render replaces it completely.
type Board struct {
	out     io.Writer
	state   State
	content strings.Builder
}

func NewBoard(out io.Writer) *Board {
	if out == nil {
		out = io.Discard
	}
	return &Board{out: out}
}

func (b *Board) State() State {
	return b.state
}

// Content returns the text of the last render.
func (b *Board) Content() string {
	return b.content.String()
}

// Write appends to the board and fails unless a render is in progress.
func (b *Board) Write(p []byte) (int, error) {
	if b.state != Editable {
		return 0, ErrLocked
	}
	return b.content.Write(p)
}

// Render clears the board, writes every result and the best resume summary,
// locks the board again and flushes the content to the output.
func (b *Board) Render(results *resume.Results) error {
	b.state = Editable
	b.content.Reset()
	err := b.write(results)
	b.state = Locked

	if err != nil {
		return err
	}

	if _, err := io.WriteString(b.out, b.content.String()); err != nil {
		return fmt.Errorf("flushing board: %w", err)
	}
	return nil
}

func (b *Board) write(results *resume.Results) error {
	if results == nil {
		return nil
	}

	separator := strings.Repeat("─", separatorWidth)
	for _, result := range results.Items {
		if _, err := fmt.Fprintf(b,
			"📄 Resume: %s\n✅ Skills found: %s\n💼 Job titles found: %s\n🧠 Predicted personality traits: %s\n⭐ Candidate score: %d\n📝 Feedback: %s\n%s\n",
			result.File,
			joinOrNone(result.Skills),
			joinOrNone(result.Titles),
			result.Personality,
			result.Score,
			result.Feedback,
			separator,
		); err != nil {
			return err
		}
	}

	best, ok := results.Best()
	if !ok {
		return nil
	}

	_, err := fmt.Fprintf(b,
		"\n🏆 Best Resume: %s\n🔥 Highest Score: %d\nThis CV stands out among the selected resumes.\n",
		best.File, best.Score,
	)
	return err
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return none
	}
	return strings.Join(items, ", ")
}
