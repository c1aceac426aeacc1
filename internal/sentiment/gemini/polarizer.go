package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/spigell/resume-compare/internal/sentiment"
	"github.com/spigell/resume-compare/internal/utils"
)

const (
	systemInstruction   = "You are a sentiment analysis service. You answer with JSON only."
	defaultMaxLogLength = 200
	maxTextRunes        = 20000
)

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
}

// Assessment is the decoded model reply.
type Assessment struct {
	Polarity float64 `mapstructure:"polarity"`
	Reason   string  `mapstructure:"reason"`
}

// Polarizer asks Gemini for the polarity of a resume text.
type Polarizer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ sentiment.Polarizer = (*Polarizer)(nil)

func NewPolarizer(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Polarizer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Polarizer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (p *Polarizer) Name() string { return sentiment.ProviderGemini }

func (p *Polarizer) Polarity(ctx context.Context, text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}

	prompt := buildPrompt(text)

	p.logger.Debug("gemini polarity request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, p.maxLogLen)),
	)

	raw, err := p.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return 0, err
	}

	p.logger.Debug("gemini polarity response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, p.maxLogLen)),
	)

	assessment, err := parseResponse(raw)
	if err != nil {
		return 0, err
	}

	return assessment.Polarity, nil
}

func buildPrompt(text string) string {
	if runes := []rune(text); len(runes) > maxTextRunes {
		text = string(runes[:maxTextRunes])
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume text:\n{{RESUME_TEXT}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{RESUME_TEXT}}", text)
}

func parseResponse(raw string) (*Assessment, error) {
	cleaned := extractJSON(raw)
	if !gjson.Valid(cleaned) {
		return nil, fmt.Errorf("parse gemini response: invalid json %q", utils.TruncateForLog(cleaned, defaultMaxLogLength))
	}

	parsed := gjson.Parse(cleaned)
	if !parsed.IsObject() {
		return nil, errors.New("parse gemini response: expected a json object")
	}
	if !parsed.Get("polarity").Exists() {
		return nil, errors.New("parse gemini response: polarity is missing")
	}

	var assessment Assessment
	if err := mapstructure.WeakDecode(parsed.Value(), &assessment); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	assessment.Reason = strings.TrimSpace(assessment.Reason)
	return &assessment, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
