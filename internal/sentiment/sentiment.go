package sentiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonreiter/govader"
)

const (
	ProviderVader  = "vader"
	ProviderGemini = "gemini"
)

// Polarizer scores the overall tone of a text in [-1, 1].
type Polarizer interface {
	Name() string
	Polarity(ctx context.Context, text string) (float64, error)
}

// Vader is the lexicon based polarizer; Polarity never fails.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *Vader) Name() string { return ProviderVader }

// Polarity returns the VADER compound score.
func (v *Vader) Polarity(_ context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	return v.analyzer.PolarityScores(text).Compound, nil
}

// CheckProvider reports whether name is a known provider.
func CheckProvider(name string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProviderVader, ProviderGemini:
		return nil
	default:
		return fmt.Errorf("unsupported sentiment provider: %s", name)
	}
}
