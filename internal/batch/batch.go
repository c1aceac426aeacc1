package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spigell/resume-compare/internal/analysis"
	"github.com/spigell/resume-compare/internal/extract"
	"github.com/spigell/resume-compare/internal/logger"
	"github.com/spigell/resume-compare/internal/resume"
)

// ErrNoFiles is returned when a batch is started without any file.
var ErrNoFiles = errors.New("no files selected")

// Notifier tells the user a resume could not be read. Implementations may block.
type Notifier interface {
	Notify(path string, err error)
}

// Deps aggregates the collaborators of a batch run.
type Deps struct {
	Extractor extract.Extractor
	Predictor *analysis.Predictor
	Notifier  Notifier
	Logger    *zap.Logger
}

// Summary describes the outcome of a finished batch.
type Summary struct {
	Processed  int
	Unreadable int
	BestFile   string
	BestScore  int
}

// Processor runs the per-file pipeline for a list of resumes, one at a time.
type Processor struct {
	deps Deps
}

func New(deps Deps) *Processor {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Predictor == nil {
		deps.Predictor = analysis.NewPredictor(nil, deps.Logger)
	}
	return &Processor{deps: deps}
}

// Run processes paths in order. An unreadable file is reported and scored as
// empty text; it never stops the batch.
func (p *Processor) Run(ctx context.Context, paths []string) (*resume.Results, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}
	if p.deps.Extractor == nil {
		return nil, errors.New("extractor is required")
	}

	results := resume.New()
	log := logger.WithFields(p.deps.Logger, zap.String(logger.FieldRunID, results.RunID.String()))

	log.Info("starting the comparison", zap.Int("files", len(paths)))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("comparison interrupted: %w", err)
		}

		results.Add(p.process(ctx, log, path))
	}

	summary := Summarize(results)
	log.Info("comparison completed",
		zap.Int("processed", summary.Processed),
		zap.Int("unreadable", summary.Unreadable),
		zap.String("best_file", summary.BestFile),
		zap.Int("best_score", summary.BestScore),
	)

	return results, nil
}

func (p *Processor) process(ctx context.Context, log *zap.Logger, path string) *resume.Result {
	name := filepath.Base(path)
	log = log.With(zap.String("file", name))

	raw, err := p.deps.Extractor.Extract(path)
	unreadable := err != nil
	if unreadable {
		log.Warn("reading resume failed, continuing with empty text", zap.Error(err))
		if p.deps.Notifier != nil {
			p.deps.Notifier.Notify(path, err)
		}
		raw = ""
	}

	text := extract.Normalize(raw)
	skills, titles := analysis.Match(text)
	personality, polarity := p.deps.Predictor.Predict(ctx, text)
	score := analysis.Score(skills, titles, personality)

	result := &resume.Result{
		File:        name,
		Skills:      skills,
		Titles:      titles,
		Personality: personality,
		Polarity:    polarity,
		Score:       score,
		Feedback:    analysis.Feedback(score),
		Unreadable:  unreadable,
	}

	log.Debug("resume scored",
		zap.Int("text_length", len(text)),
		zap.Strings("skills", skills),
		zap.Strings("titles", titles),
		zap.String("personality", personality.Label()),
		zap.Float64("polarity", polarity),
		zap.Int("score", score),
	)

	return result
}

// Summarize counts the batch and names its best resume.
func Summarize(results *resume.Results) Summary {
	if results == nil {
		return Summary{}
	}

	summary := Summary{
		Processed:  results.Len(),
		Unreadable: len(results.Unreadable()),
	}
	if best, ok := results.Best(); ok {
		summary.BestFile = best.File
		summary.BestScore = best.Score
	}
	return summary
}
