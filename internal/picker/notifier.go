package picker

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"
)

type acknowledger func(label string) error

// PromptNotifier prints the failure and blocks until the user acknowledges it.
type PromptNotifier struct {
	out io.Writer
	ack acknowledger
}

func NewPromptNotifier(out io.Writer) *PromptNotifier {
	if out == nil {
		out = os.Stderr
	}
	return &PromptNotifier{out: out, ack: acknowledge}
}

func acknowledge(label string) error {
	prompt := promptui.Prompt{Label: label}
	_, err := prompt.Run()
	return err
}

func (n *PromptNotifier) Notify(path string, err error) {
	fmt.Fprintf(n.out, "Error reading PDF: %v\n", err)
	// Ctrl-C on the acknowledgement just continues the batch.
	_ = n.ack(fmt.Sprintf("%s was skipped, press ENTER to continue", filepath.Base(path)))
}

// LogNotifier reports failures as warnings without stopping.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(path string, err error) {
	n.logger.Warn("Error reading PDF", zap.String("path", path), zap.Error(err))
}
