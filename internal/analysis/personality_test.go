package analysis

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubPolarizer struct {
	polarity float64
	err      error
	calls    int
}

func (s *stubPolarizer) Name() string { return "stub" }

func (s *stubPolarizer) Polarity(context.Context, string) (float64, error) {
	s.calls++
	return s.polarity, s.err
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		polarity float64
		expect   Personality
	}{
		{polarity: 1, expect: Positive},
		{polarity: 0.31, expect: Positive},
		{polarity: 0.3, expect: Neutral},
		{polarity: 0, expect: Neutral},
		{polarity: -0.3, expect: Neutral},
		{polarity: -0.31, expect: Negative},
		{polarity: -1, expect: Negative},
	}

	for _, tt := range tests {
		if got := Classify(tt.polarity); got != tt.expect {
			t.Fatalf("polarity %v: expected %s, got %s", tt.polarity, tt.expect.Label(), got.Label())
		}
	}
}

func TestPersonalityStrings(t *testing.T) {
	t.Parallel()

	if Positive.String() != "Positive, Likely to be Agreeable" {
		t.Fatalf("unexpected positive text: %q", Positive.String())
	}
	if Negative.String() != "Negative, Likely to be Less Agreeable" {
		t.Fatalf("unexpected negative text: %q", Negative.String())
	}
	if Neutral.String() != "Neutral" || Neutral.Label() != "Neutral" {
		t.Fatalf("unexpected neutral text: %q", Neutral.String())
	}
}

func TestPredictorEmptyTextSkipsProvider(t *testing.T) {
	t.Parallel()

	stub := &stubPolarizer{polarity: 0.9}
	p := NewPredictor(stub, nil)

	got, polarity := p.Predict(context.Background(), "")
	if got != Neutral || polarity != 0 {
		t.Fatalf("expected neutral zero polarity, got %s %v", got.Label(), polarity)
	}
	if stub.calls != 0 {
		t.Fatalf("expected provider not to be called, got %d calls", stub.calls)
	}
}

func TestPredictorClampsPolarity(t *testing.T) {
	t.Parallel()

	p := NewPredictor(&stubPolarizer{polarity: 4}, nil)

	got, polarity := p.Predict(context.Background(), "great")
	if got != Positive || polarity != 1 {
		t.Fatalf("expected clamped positive, got %s %v", got.Label(), polarity)
	}
}

func TestPredictorProviderFailureIsNeutral(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.WarnLevel)
	p := NewPredictor(&stubPolarizer{err: errors.New("quota")}, zap.New(core))

	got, polarity := p.Predict(context.Background(), "some text")
	if got != Neutral || polarity != 0 {
		t.Fatalf("expected neutral fallback, got %s %v", got.Label(), polarity)
	}

	if observed.Len() != 1 {
		t.Fatalf("expected one warning, got %d", observed.Len())
	}
	if observed.All()[0].ContextMap()["provider"] != "stub" {
		t.Fatalf("expected provider field in warning")
	}
}
