package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-compare/internal/resume"
	"github.com/spigell/resume-compare/internal/sentiment"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "empty gets defaults", config: Config{}},
		{
			name: "known values any case",
			config: Config{
				Extractor: &ExtractorConfig{Engine: " FITZ "},
				Sentiment: &SentimentConfig{Provider: "Vader"},
			},
		},
		{
			name:    "unknown engine",
			config:  Config{Extractor: &ExtractorConfig{Engine: "ocr"}},
			wantErr: true,
		},
		{
			name:    "unknown provider",
			config:  Config{Sentiment: &SentimentConfig{Provider: "textblob"}},
			wantErr: true,
		},
		{
			name:    "gemini without section",
			config:  Config{Sentiment: &SentimentConfig{Provider: "gemini"}},
			wantErr: true,
		},
		{
			name: "gemini too many retries",
			config: Config{Sentiment: &SentimentConfig{
				Provider: "gemini",
				Gemini:   &GeminiConfig{Model: "gemini-2.5-flash", MaxRetries: 50},
			}},
			wantErr: true,
		},
		{
			name: "gemini ok",
			config: Config{Sentiment: &SentimentConfig{
				Provider: "gemini",
				Gemini:   &GeminiConfig{Model: "gemini-2.5-flash", MaxRetries: 3},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := tt.config
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected validation error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Dir != "." {
				t.Fatalf("expected default dir, got %q", cfg.Dir)
			}
			if cfg.Extractor == nil || cfg.Sentiment == nil {
				t.Fatalf("expected nested sections to be initialized")
			}
			if cfg.Extractor.Engine != strings.ToLower(strings.TrimSpace(cfg.Extractor.Engine)) {
				t.Fatalf("expected engine to be normalized, got %q", cfg.Extractor.Engine)
			}
		})
	}
}

func TestValidatePaths(t *testing.T) {
	t.Parallel()

	paths, err := validatePaths(nil, false)
	if err != nil || paths != nil {
		t.Fatalf("expected nil paths for no arguments, got %v (%v)", paths, err)
	}

	paths, err = validatePaths([]string{"a.pdf", " docs/B.PDF "}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 || paths[1] != "docs/B.PDF" {
		t.Fatalf("unexpected paths %v", paths)
	}

	if _, err := validatePaths([]string{"a.pdf", "notes.docx"}, false); err == nil {
		t.Fatalf("expected error for non pdf argument")
	}
}

func TestValidatePathsWithoutPromptsNeedsArguments(t *testing.T) {
	t.Parallel()

	paths, err := validatePaths(nil, true)
	if !errors.Is(err, errPathsRequired) {
		t.Fatalf("expected errPathsRequired, got %v", err)
	}
	if paths != nil {
		t.Fatalf("expected no paths, got %v", paths)
	}

	if _, err := validatePaths([]string{}, true); !errors.Is(err, errPathsRequired) {
		t.Fatalf("expected errPathsRequired for empty arguments, got %v", err)
	}
}

func TestNewPolarizerDefaultsToVader(t *testing.T) {
	t.Parallel()

	p, model := newPolarizer(context.Background(), &SentimentConfig{Provider: "vader"}, zap.NewNop())
	if p.Name() != sentiment.ProviderVader || model != "" {
		t.Fatalf("expected vader, got %s %q", p.Name(), model)
	}

	p, _ = newPolarizer(context.Background(), nil, zap.NewNop())
	if p.Name() != sentiment.ProviderVader {
		t.Fatalf("expected vader for nil config, got %s", p.Name())
	}
}

func TestNewPolarizerFallsBackWithoutKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	core, observed := observer.New(zapcore.WarnLevel)
	cfg := &SentimentConfig{
		Provider: sentiment.ProviderGemini,
		Gemini:   &GeminiConfig{Model: "gemini-2.5-flash"},
	}

	p, model := newPolarizer(context.Background(), cfg, zap.New(core))
	if p.Name() != sentiment.ProviderVader || model != "" {
		t.Fatalf("expected vader fallback, got %s %q", p.Name(), model)
	}

	if observed.FilterMessage("falling back to vader sentiment").Len() != 1 {
		t.Fatalf("expected fallback warning")
	}
}

func TestNewPolarizerUnknownProvider(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.WarnLevel)
	p, _ := newPolarizer(context.Background(), &SentimentConfig{Provider: "textblob"}, zap.New(core))
	if p.Name() != sentiment.ProviderVader {
		t.Fatalf("expected vader fallback, got %s", p.Name())
	}
	if observed.Len() != 1 {
		t.Fatalf("expected one warning, got %d", observed.Len())
	}
}

func TestHandleActionDumpToOutput(t *testing.T) {
	t.Parallel()

	results := resume.New()
	results.Add(&resume.Result{File: "alice.pdf", Skills: []string{"python"}, Score: 5, Feedback: "Poor"})

	path := filepath.Join(t.TempDir(), "results.json")
	s := &session{logger: zap.NewNop(), results: results, output: path}

	if next, err := s.handleAction(PromptDump); err != nil || next {
		t.Fatalf("unexpected dump outcome %v (%v)", next, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}

	var decoded struct {
		Items []struct {
			File  string `json:"file"`
			Score int    `json:"score"`
		} `json:"items"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode dump: %v", err)
	}
	if len(decoded.Items) != 1 || decoded.Items[0].File != "alice.pdf" || decoded.Items[0].Score != 5 {
		t.Fatalf("unexpected dump content %s", data)
	}
}

func TestHandleAction(t *testing.T) {
	t.Parallel()

	s := &session{logger: zap.NewNop()}

	next, err := s.handleAction(PromptCompareAgain)
	if err != nil || !next {
		t.Fatalf("expected new comparison, got %v (%v)", next, err)
	}

	if _, err := s.handleAction(PromptExit); err != errExit {
		t.Fatalf("expected errExit, got %v", err)
	}

	if next, err := s.handleAction(PromptReport); err != nil || next {
		t.Fatalf("expected report without results to be a no-op, got %v (%v)", next, err)
	}

	if next, err := s.handleAction(PromptDump); err != nil || next {
		t.Fatalf("expected dump without results to be a no-op, got %v (%v)", next, err)
	}

	if _, err := s.handleAction("unknown"); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}

func TestFlagEnabled(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool("yes", false, "")
	if err := cmd.Flags().Set("yes", "true"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	if !flagEnabled(cmd, "yes") {
		t.Fatalf("expected yes to be enabled")
	}
	if flagEnabled(cmd, "missing") || flagEnabled(nil, "yes") {
		t.Fatalf("expected missing flags to be disabled")
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	if !strings.HasPrefix(out.String(), "resume-compare version: ") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}
