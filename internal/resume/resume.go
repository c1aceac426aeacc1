package resume

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/spigell/resume-compare/internal/analysis"
)

// Results holds everything computed during one comparison batch.
type Results struct {
	RunID uuid.UUID `json:"run_id"`
	Items []*Result `json:"items"`
}

// Result is the outcome for a single resume file.
type Result struct {
	File        string               `json:"file" mapstructure:"file"`
	Skills      []string             `json:"skills" mapstructure:"skills"`
	Titles      []string             `json:"titles" mapstructure:"titles"`
	Personality analysis.Personality `json:"-" mapstructure:"-"`
	Polarity    float64              `json:"polarity" mapstructure:"polarity"`
	Score       int                  `json:"score" mapstructure:"score"`
	Feedback    string               `json:"feedback" mapstructure:"feedback"`
	Unreadable  bool                 `json:"unreadable,omitempty" mapstructure:"unreadable"`
}

func New() *Results {
	return &Results{RunID: uuid.New()}
}

// MarshalJSON writes the personality as its display text.
func (r *Result) MarshalJSON() ([]byte, error) {
	type plain Result
	return json.Marshal(struct {
		*plain
		Personality string `json:"personality"`
	}{
		plain:       (*plain)(r),
		Personality: r.Personality.String(),
	})
}

func (r *Results) Add(result *Result) {
	r.Items = append(r.Items, result)
}

func (r *Results) Len() int {
	return len(r.Items)
}

// Best returns the first result holding the highest score.
func (r *Results) Best() (*Result, bool) {
	if r == nil || len(r.Items) == 0 {
		return nil, false
	}

	best := r.Items[0]
	for _, result := range r.Items[1:] {
		if result.Score > best.Score {
			best = result
		}
	}

	return best, true
}

// Unreadable returns the names of files that produced no text.
func (r *Results) Unreadable() []string {
	files := make([]string, 0)
	for _, result := range r.Items {
		if result.Unreadable {
			files = append(files, result.File)
		}
	}
	return files
}

// ReportByResume flattens every result into display-ready strings keyed by file name.
func (r *Results) ReportByResume() (map[string]map[string]string, error) {
	report := make(map[string]map[string]string, len(r.Items))
	for _, result := range r.Items {
		var fields map[string]any
		if err := mapstructure.Decode(result, &fields); err != nil {
			return nil, fmt.Errorf("decoding result of %s: %w", result.File, err)
		}

		entry := make(map[string]string, len(fields)+1)
		for key, value := range fields {
			switch v := value.(type) {
			case []string:
				entry[key] = strings.Join(v, ", ")
			default:
				entry[key] = fmt.Sprintf("%v", v)
			}
		}
		entry["personality"] = result.Personality.String()

		report[result.File] = entry
	}
	return report, nil
}

// DumpToTmpFile writes the batch as indented JSON into a new temp file and returns its name.
func (r *Results) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "results_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := r.encode(file); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ToFile writes the batch as indented JSON to path, replacing its content.
func (r *Results) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	return r.encode(file)
}

func (r *Results) encode(file *os.File) error {
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
