package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-compare/internal/analysis"
	"github.com/spigell/resume-compare/internal/batch"
	"github.com/spigell/resume-compare/internal/display"
	"github.com/spigell/resume-compare/internal/extract"
	"github.com/spigell/resume-compare/internal/logger"
	"github.com/spigell/resume-compare/internal/picker"
	"github.com/spigell/resume-compare/internal/resume"
	"github.com/spigell/resume-compare/internal/secrets"
	"github.com/spigell/resume-compare/internal/sentiment"
	"github.com/spigell/resume-compare/internal/sentiment/gemini"
)

const (
	PromptCompareAgain = "Compare other resumes"
	PromptReport       = "Report by resume"
	PromptDump         = "Dump results to file"
	PromptExit         = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptCompareAgain, PromptReport, PromptDump, PromptExit},
}

var compareCmd = &cobra.Command{
	Use:   "compare [resume.pdf ...]",
	Short: "Compare resumes and name the strongest one",
	Long: "Compare scores every selected PDF resume and prints the results with the best resume.\n" +
		"Without arguments an interactive picker lists the PDF files of --dir.",
	Run: func(cmd *cobra.Command, args []string) {
		compare(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringP("dir", "D", "", "directory the picker lists resumes from (default is current directory)")
	compareCmd.Flags().BoolP("yes", "y", false, "do not prompt: log unreadable files and exit after the first comparison")
	compareCmd.Flags().Bool("dump", false, "dump results to a temp json file after each comparison")
	compareCmd.Flags().StringP("output", "o", "", "write results json to this file instead of a temp file")

	viper.BindPFlag("dir", compareCmd.Flags().Lookup("dir"))
}

// session carries what the interactive loop needs between batches.
type session struct {
	processor *batch.Processor
	board     *display.Board
	picker    *picker.Picker
	logger    *zap.Logger
	dir       string
	dump      bool
	output    string
	results   *resume.Results
}

// compare is the main command for the cli.
func compare(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer lg.Sync()

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	lg.Info("starting the resume-compare", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	lg.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	auto := flagEnabled(cmd, "yes")

	paths, err := validatePaths(args, auto)
	if err != nil {
		lg.Fatal("checking resume paths", zap.Error(err))
	}

	lg.Debug("resume vocabulary",
		zap.Strings("skills", analysis.Skills()),
		zap.Strings("titles", analysis.Titles()),
	)

	extractor, err := extract.New(config.Extractor.Engine)
	if err != nil {
		lg.Fatal("creating an extractor", zap.Error(err))
	}

	polarizer, model := newPolarizer(ctx, config.Sentiment, lg)
	lg = logger.WithPipelineFields(lg, extractor.Name(), polarizer.Name(), model)

	var notifier batch.Notifier = picker.NewPromptNotifier(os.Stderr)
	if auto {
		notifier = picker.NewLogNotifier(lg)
	}

	s := &session{
		processor: batch.New(batch.Deps{
			Extractor: extractor,
			Predictor: analysis.NewPredictor(polarizer, lg),
			Notifier:  notifier,
			Logger:    lg,
		}),
		board:  display.NewBoard(os.Stdout),
		picker: picker.New(),
		logger: lg,
		dir:    config.Dir,
		dump:   flagEnabled(cmd, "dump"),
		output: flagString(cmd, "output"),
	}

	for {
		if paths == nil {
			paths, err = s.pick()
			if err != nil {
				if errors.Is(err, errExit) {
					return
				}
				lg.Fatal("selecting resumes", zap.Error(err))
			}
		}

		if err := s.compare(ctx, paths); err != nil {
			if errors.Is(err, context.Canceled) {
				lg.Info("exiting", zap.String("reason", "interrupted"))
				return
			}
			lg.Fatal("comparing resumes", zap.Error(err))
		}
		paths = nil

		if auto {
			return
		}

		if err := s.actions(); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			lg.Fatal("exiting", zap.Error(err))
		}
	}
}

// pick runs the interactive picker. Interrupts and empty directories end the session.
func (s *session) pick() ([]string, error) {
	paths, err := s.picker.Select(s.dir)
	switch {
	case err == nil:
		return paths, nil
	case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		s.logger.Info("exiting", zap.String("reason", "selection interrupted"))
		return nil, errExit
	case errors.Is(err, picker.ErrNoPDFs):
		s.logger.Info("exiting", zap.String("reason", err.Error()))
		return nil, errExit
	default:
		return nil, err
	}
}

// compare runs one batch and renders it. An empty selection leaves the board as it was.
func (s *session) compare(ctx context.Context, paths []string) error {
	results, err := s.processor.Run(ctx, paths)
	if errors.Is(err, batch.ErrNoFiles) {
		s.logger.Info("nothing to compare", zap.String("reason", "no resumes selected"))
		return nil
	}
	if err != nil {
		return err
	}

	s.results = results

	if err := s.board.Render(results); err != nil {
		return fmt.Errorf("rendering results: %w", err)
	}

	if s.dump || s.output != "" {
		return s.dumpResults()
	}
	return nil
}

// actions asks what to do with the current board until a new comparison or exit is chosen.
func (s *session) actions() error {
	for {
		_, action, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return errExit
			}
			return err
		}

		next, err := s.handleAction(action)
		if err != nil {
			return err
		}
		if next {
			return nil
		}
	}
}

// handleAction returns true when a new comparison should start.
func (s *session) handleAction(action string) (bool, error) {
	switch action {
	case PromptCompareAgain:
		return true, nil
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return false, errExit
	case PromptReport:
		if s.results == nil {
			s.logger.Info("nothing to report yet")
			return false, nil
		}
		report, err := s.results.ReportByResume()
		if err != nil {
			return false, fmt.Errorf("building report: %w", err)
		}
		pretty, _ := json.MarshalIndent(report, "", "  ")
		s.logger.Info(string(pretty), zap.Int("resumes count", s.results.Len()))
		return false, nil
	case PromptDump:
		return false, s.dumpResults()
	default:
		return false, fmt.Errorf("invalid action: %s", action)
	}
}

func (s *session) dumpResults() error {
	if s.results == nil {
		s.logger.Info("nothing to dump yet")
		return nil
	}

	if s.output != "" {
		if err := s.results.ToFile(s.output); err != nil {
			return fmt.Errorf("write results to %s: %w", s.output, err)
		}
		s.logger.Info("dumping results to file", zap.String("filename", s.output))
		return nil
	}

	filename, err := s.results.DumpToTmpFile()
	if err != nil {
		return fmt.Errorf("dump results to file: %w", err)
	}
	s.logger.Info("dumping results to file", zap.String("filename", filename))
	return nil
}

// errPathsRequired is returned when prompts are disabled and nothing was passed to compare.
var errPathsRequired = errors.New("--yes disables the interactive picker, pass resume pdf files as arguments")

// validatePaths accepts only .pdf arguments. No arguments means the picker is used,
// unless prompts are disabled.
func validatePaths(args []string, auto bool) ([]string, error) {
	if len(args) == 0 {
		if auto {
			return nil, errPathsRequired
		}
		return nil, nil
	}

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if !picker.IsPDF(arg) {
			return nil, fmt.Errorf("only .pdf files can be compared: %q", arg)
		}
		paths = append(paths, arg)
	}
	return paths, nil
}

// newPolarizer builds the configured sentiment provider. A gemini setup
// failure falls back to the lexicon provider.
func newPolarizer(ctx context.Context, cfg *SentimentConfig, lg *zap.Logger) (sentiment.Polarizer, string) {
	if cfg == nil || cfg.Provider == "" {
		return sentiment.NewVader(), ""
	}

	if err := sentiment.CheckProvider(cfg.Provider); err != nil {
		lg.Warn("falling back to vader sentiment", zap.Error(err))
		return sentiment.NewVader(), ""
	}

	if cfg.Provider != sentiment.ProviderGemini {
		return sentiment.NewVader(), ""
	}

	polarizer, model, err := newGeminiPolarizer(ctx, cfg.Gemini, lg)
	if err != nil {
		lg.Warn("falling back to vader sentiment", zap.Error(err))
		return sentiment.NewVader(), ""
	}
	return polarizer, model
}

func newGeminiPolarizer(ctx context.Context, cfg *GeminiConfig, lg *zap.Logger) (sentiment.Polarizer, string, error) {
	if cfg == nil {
		return nil, "", errors.New("gemini configuration is required when the gemini provider is selected")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w (set sentiment.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	genLogger := logger.WithPipelineFields(lg, "", sentiment.ProviderGemini, cfg.Model).
		With(zap.Int("ai_retry_attempts", cfg.MaxRetries))

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model, cfg.MaxRetries, genLogger)
	if err != nil {
		return nil, "", err
	}

	return gemini.NewPolarizer(generator, cfg.MaxLogLength, genLogger), generator.Model(), nil
}

func flagEnabled(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	flag := cmd.Flag(name)
	return flag != nil && strings.EqualFold(flag.Value.String(), "true")
}

func flagString(cmd *cobra.Command, name string) string {
	if cmd == nil {
		return ""
	}
	flag := cmd.Flag(name)
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(flag.Value.String())
}
