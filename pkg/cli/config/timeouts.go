package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Timeouts holds per-stage timeouts in milliseconds
type Timeouts struct {
	analysisMS  int
	embeddingMS int
	writeMS     int
	similarMS   int
	metaMS      int
}

func (t *Timeouts) Flags() []cli.Flag {
	d := usecase.DefaultTimeouts()
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "analysis-timeout-ms",
			Category:    "Timeouts",
			Usage:       "Timeout of a remote analysis call",
			Value:       int(d.Analysis.Milliseconds()),
			Sources:     cli.EnvVars("REFLECTD_ANALYSIS_TIMEOUT_MS", "ANALYSIS_TIMEOUT_MS"),
			Destination: &t.analysisMS,
		},
		&cli.IntFlag{
			Name:        "embedding-timeout-ms",
			Category:    "Timeouts",
			Usage:       "Timeout of a remote embedding call",
			Value:       int(d.Embedding.Milliseconds()),
			Sources:     cli.EnvVars("REFLECTD_EMBEDDING_TIMEOUT_MS", "EMBEDDING_TIMEOUT_MS"),
			Destination: &t.embeddingMS,
		},
		&cli.IntFlag{
			Name:        "write-timeout-ms",
			Category:    "Timeouts",
			Usage:       "Timeout of each record write",
			Value:       int(d.Write.Milliseconds()),
			Sources:     cli.EnvVars("REFLECTD_WRITE_TIMEOUT_MS", "FIRESTORE_WRITE_TIMEOUT_MS"),
			Destination: &t.writeMS,
		},
		&cli.IntFlag{
			Name:        "similar-timeout-ms",
			Category:    "Timeouts",
			Usage:       "Timeout of the similar entries scan",
			Value:       int(d.Similar.Milliseconds()),
			Sources:     cli.EnvVars("REFLECTD_SIMILAR_TIMEOUT_MS", "SIMILAR_QUERY_TIMEOUT_MS"),
			Destination: &t.similarMS,
		},
		&cli.IntFlag{
			Name:        "meta-timeout-ms",
			Category:    "Timeouts",
			Usage:       "Timeout of the entry metadata update",
			Value:       int(d.Meta.Milliseconds()),
			Sources:     cli.EnvVars("REFLECTD_META_TIMEOUT_MS"),
			Destination: &t.metaMS,
		},
	}
}

func (t Timeouts) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("analysis_ms", t.analysisMS),
		slog.Int("embedding_ms", t.embeddingMS),
		slog.Int("write_ms", t.writeMS),
		slog.Int("similar_ms", t.similarMS),
		slog.Int("meta_ms", t.metaMS),
	)
}

// Configure converts the flags to usecase.Timeouts
func (t *Timeouts) Configure() (usecase.Timeouts, error) {
	for name, v := range map[string]int{
		"analysis-timeout-ms":  t.analysisMS,
		"embedding-timeout-ms": t.embeddingMS,
		"write-timeout-ms":     t.writeMS,
		"similar-timeout-ms":   t.similarMS,
		"meta-timeout-ms":      t.metaMS,
	} {
		if v <= 0 {
			return usecase.Timeouts{}, goerr.Wrap(ErrInvalidConfig, "timeout must be positive", goerr.V("flag", name), goerr.V("value", v))
		}
	}

	return usecase.Timeouts{
		Analysis:  time.Duration(t.analysisMS) * time.Millisecond,
		Embedding: time.Duration(t.embeddingMS) * time.Millisecond,
		Write:     time.Duration(t.writeMS) * time.Millisecond,
		Similar:   time.Duration(t.similarMS) * time.Millisecond,
		Meta:      time.Duration(t.metaMS) * time.Millisecond,
	}, nil
}
