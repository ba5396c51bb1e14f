package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
	"github.com/soos-lab/reflectd/pkg/service/llm"
	"github.com/soos-lab/reflectd/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// LLM backends
const (
	BackendAuto   = "auto"
	BackendNone   = "none"
	BackendGemini = "gemini"
	BackendGenAI  = "genai"
)

// LLM holds configuration for the remote reasoning and embedding models
type LLM struct {
	backend        string
	projectID      string
	location       string
	apiKey         string `masq:"secret"`
	model          string
	embeddingModel string
}

// Flags returns CLI flags for LLM configuration
func (l *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-backend",
			Category:    "LLM",
			Usage:       "Remote model backend [auto|none|gemini|genai]. auto picks genai with an API key, gemini with a project",
			Value:       BackendAuto,
			Sources:     cli.EnvVars("REFLECTD_LLM_BACKEND"),
			Destination: &l.backend,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Category:    "LLM",
			Usage:       "Google Cloud project ID for Gemini on Vertex AI",
			Sources:     cli.EnvVars("REFLECTD_GEMINI_PROJECT"),
			Destination: &l.projectID,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Category:    "LLM",
			Usage:       "Google Cloud location for Gemini on Vertex AI",
			Value:       "us-central1",
			Sources:     cli.EnvVars("REFLECTD_GEMINI_LOCATION"),
			Destination: &l.location,
		},
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Category:    "LLM",
			Usage:       "Gemini API key",
			Sources:     cli.EnvVars("REFLECTD_GEMINI_API_KEY", "GEMINI_API_KEY"),
			Destination: &l.apiKey,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Category:    "LLM",
			Usage:       "Generative model name (genai backend)",
			Value:       llm.DefaultGenAIModel,
			Sources:     cli.EnvVars("REFLECTD_GEMINI_MODEL", "GEMINI_MODEL"),
			Destination: &l.model,
		},
		&cli.StringFlag{
			Name:        "gemini-embedding-model",
			Category:    "LLM",
			Usage:       "Embedding model name (genai backend)",
			Value:       llm.DefaultGenAIEmbeddingModel,
			Sources:     cli.EnvVars("REFLECTD_GEMINI_EMBEDDING_MODEL", "GEMINI_EMBEDDING_MODEL"),
			Destination: &l.embeddingModel,
		},
	}
}

// LogValue implements slog.LogValuer. The API key is never logged.
func (l LLM) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", l.Backend()),
		slog.String("project_id", l.projectID),
		slog.String("location", l.location),
		slog.Bool("api_key_set", l.apiKey != ""),
		slog.String("model", l.model),
		slog.String("embedding_model", l.embeddingModel),
	)
}

// Backend resolves auto to a concrete backend from the available credentials
func (l *LLM) Backend() string {
	switch l.backend {
	case BackendAuto, "":
		switch {
		case l.apiKey != "":
			return BackendGenAI
		case l.projectID != "":
			return BackendGemini
		default:
			return BackendNone
		}
	default:
		return l.backend
	}
}

// Configure creates the remote model adapters. Both are nil when no backend
// is available, in which case every call uses the deterministic fallbacks.
func (l *LLM) Configure(ctx context.Context, dimension int) (interfaces.Generator, interfaces.Embedder, error) {
	switch backend := l.Backend(); backend {
	case BackendNone:
		logging.Default().Info("Remote models disabled, using deterministic analysis only")
		return nil, nil, nil

	case BackendGemini:
		if l.projectID == "" {
			return nil, nil, goerr.New("gemini-project is required for gemini backend")
		}
		client, err := gemini.New(ctx, l.projectID, l.location)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		adapter, err := llm.NewGollem(client, dimension)
		if err != nil {
			return nil, nil, err
		}
		logging.Default().Info("Using Gemini on Vertex AI", "project_id", l.projectID, "location", l.location)
		return adapter, adapter, nil

	case BackendGenAI:
		adapter, err := llm.NewGenAI(ctx, l.apiKey, l.model, l.embeddingModel, dimension)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create Gemini API client")
		}
		logging.Default().Info("Using Gemini API", "model", l.model, "embedding_model", l.embeddingModel)
		return adapter, adapter, nil

	default:
		return nil, nil, goerr.Wrap(ErrInvalidConfig, "invalid llm backend", goerr.V("backend", backend))
	}
}
