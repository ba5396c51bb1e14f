package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/soos-lab/reflectd/pkg/domain/model"
	"github.com/soos-lab/reflectd/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the optional TOML application configuration
type AppConfig struct {
	path string

	Analysis  AnalysisConfig  `toml:"analysis"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Similar   SimilarConfig   `toml:"similar"`
	Summary   SummaryConfig   `toml:"summary"`
}

type AnalysisConfig struct {
	Version            string `toml:"version"`
	ObservationComment string `toml:"observation_comment"`
}

type EmbeddingConfig struct {
	Dimension int `toml:"dimension"`
}

type SimilarConfig struct {
	Limit int `toml:"limit"`
}

// SummaryConfig overrides the wording of the deterministic summary. Empty
// fields keep the built-in wording.
type SummaryConfig struct {
	Summary           string `toml:"summary"`
	EmotionTheme      string `toml:"emotion_theme"`
	PatternTheme      string `toml:"pattern_theme"`
	EmotionThemeEmpty string `toml:"emotion_theme_empty"`
	PatternThemeEmpty string `toml:"pattern_theme_empty"`
	TriggerTheme      string `toml:"trigger_theme"`
	Placeholder       string `toml:"placeholder"`
}

// Flags returns CLI flags for the application configuration file
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to TOML configuration file",
			Sources:     cli.EnvVars("REFLECTD_CONFIG"),
			Destination: &a.path,
		},
	}
}

func (a AppConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", a.path),
		slog.String("version", a.Version()),
		slog.Int("dimension", a.Dimension()),
		slog.Int("similar_limit", a.SimilarLimit()),
	)
}

// Configure loads the file given by --config. Without it the defaults apply.
func (a *AppConfig) Configure() error {
	if a.path == "" {
		return nil
	}

	loaded, err := LoadAppConfiguration(a.path)
	if err != nil {
		return err
	}
	loaded.path = a.path
	*a = *loaded
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if a.Embedding.Dimension < 0 {
		return goerr.Wrap(ErrInvalidConfig, "embedding dimension must not be negative", goerr.V("dimension", a.Embedding.Dimension))
	}
	if a.Similar.Limit < 0 {
		return goerr.Wrap(ErrInvalidConfig, "similar limit must not be negative", goerr.V("limit", a.Similar.Limit))
	}
	if _, err := a.SummaryTemplate(); err != nil {
		return goerr.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// Version returns the analysis schema version tag
func (a *AppConfig) Version() string {
	if a.Analysis.Version == "" {
		return model.DefaultAnalysisVersion
	}
	return a.Analysis.Version
}

// Dimension returns the embedding vector length
func (a *AppConfig) Dimension() int {
	if a.Embedding.Dimension == 0 {
		return model.DefaultEmbeddingDimension
	}
	return a.Embedding.Dimension
}

// SimilarLimit returns the default number of similar entries
func (a *AppConfig) SimilarLimit() int {
	if a.Similar.Limit == 0 {
		return model.DefaultSimilarLimit
	}
	return a.Similar.Limit
}

// SummaryTemplate merges the configured wording over the defaults
func (a *AppConfig) SummaryTemplate() (*usecase.SummaryTemplate, error) {
	tmpl := usecase.DefaultSummaryTemplate()
	s := a.Summary

	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&tmpl.Summary, s.Summary)
	override(&tmpl.EmotionTheme, s.EmotionTheme)
	override(&tmpl.PatternTheme, s.PatternTheme)
	override(&tmpl.EmotionThemeEmpty, s.EmotionThemeEmpty)
	override(&tmpl.PatternThemeEmpty, s.PatternThemeEmpty)
	override(&tmpl.TriggerTheme, s.TriggerTheme)
	override(&tmpl.Placeholder, s.Placeholder)

	if err := tmpl.Compile(); err != nil {
		return nil, err
	}
	return tmpl, nil
}
