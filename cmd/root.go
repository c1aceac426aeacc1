package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-compare/internal/extract"
	"github.com/spigell/resume-compare/internal/sentiment"
)

const (
	app = "resume-compare"
)

type Config struct {
	Dir       string           `mapstructure:"dir"`
	Extractor *ExtractorConfig `mapstructure:"extractor"`
	Sentiment *SentimentConfig `mapstructure:"sentiment"`
}

type ExtractorConfig struct {
	Engine string `mapstructure:"engine" validate:"omitempty,oneof=pdf fitz"`
}

type SentimentConfig struct {
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=vader gemini"`
	Gemini   *GeminiConfig `mapstructure:"gemini" validate:"required_if=Provider gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0,lte=10"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-compare scores PDF resumes by skills, job titles and tone and names the strongest one",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("sentiment.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-compare.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	viper.SetDefault("dir", ".")
	viper.SetDefault("extractor.engine", extract.EnginePDF)
	viper.SetDefault("sentiment.provider", sentiment.ProviderVader)
	viper.SetDefault("sentiment.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("sentiment.gemini.max-retries", 3)
	viper.SetDefault("sentiment.gemini.max-log-length", 200)
}

func initConfig() {
	// Only compare reads the config.
	if compareCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The default file is optional, an explicit or broken one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate normalizes enum-like values and checks them against the allowed sets.
func (c *Config) Validate() error {
	if c.Extractor == nil {
		c.Extractor = &ExtractorConfig{}
	}
	if c.Sentiment == nil {
		c.Sentiment = &SentimentConfig{}
	}

	c.Dir = strings.TrimSpace(c.Dir)
	if c.Dir == "" {
		c.Dir = "."
	}
	c.Extractor.Engine = strings.ToLower(strings.TrimSpace(c.Extractor.Engine))
	c.Sentiment.Provider = strings.ToLower(strings.TrimSpace(c.Sentiment.Provider))

	return validator.New().Struct(c)
}
