package analysis

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-compare/internal/sentiment"
)

const (
	positiveThreshold = 0.3
	negativeThreshold = -0.3
)

type Personality int

const (
	Neutral Personality = iota
	Positive
	Negative
)

// Label is the bare classification name.
func (p Personality) Label() string {
	switch p {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	default:
		return "Neutral"
	}
}

func (p Personality) String() string {
	switch p {
	case Positive:
		return "Positive, Likely to be Agreeable"
	case Negative:
		return "Negative, Likely to be Less Agreeable"
	default:
		return "Neutral"
	}
}

// Classify maps a polarity to a personality. Both thresholds are exclusive.
func Classify(polarity float64) Personality {
	switch {
	case polarity > positiveThreshold:
		return Positive
	case polarity < negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// Predictor classifies text tone through a sentiment.Polarizer.
type Predictor struct {
	polarizer sentiment.Polarizer
	logger    *zap.Logger
}

func NewPredictor(polarizer sentiment.Polarizer, logger *zap.Logger) *Predictor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Predictor{polarizer: polarizer, logger: logger}
}

// Predict returns the personality and the polarity it was derived from.
// Provider failures are logged and count as a neutral tone.
func (p *Predictor) Predict(ctx context.Context, text string) (Personality, float64) {
	if strings.TrimSpace(text) == "" || p.polarizer == nil {
		return Neutral, 0
	}

	polarity, err := p.polarizer.Polarity(ctx, text)
	if err != nil {
		p.logger.Warn("sentiment polarity failed, assuming neutral tone",
			zap.String("provider", p.polarizer.Name()),
			zap.Error(err),
		)
		return Neutral, 0
	}

	if math.IsNaN(polarity) {
		return Neutral, 0
	}
	polarity = math.Max(-1, math.Min(1, polarity))

	return Classify(polarity), polarity
}
