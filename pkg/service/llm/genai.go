package llm

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
	"google.golang.org/genai"
)

// GenAI talks to the Gemini API with an API key
type GenAI struct {
	client         *genai.Client
	model          string
	embeddingModel string
	dimension      int32
}

var (
	_ interfaces.Generator = &GenAI{}
	_ interfaces.Embedder  = &GenAI{}
)

const (
	DefaultGenAIModel          = "gemini-2.0-flash"
	DefaultGenAIEmbeddingModel = "text-embedding-004"
)

// NewGenAI creates a Gemini API client. Empty model names use the defaults.
// A positive dimension requests a reduced embedding length from the model.
func NewGenAI(ctx context.Context, apiKey, model, embeddingModel string, dimension int) (*GenAI, error) {
	if apiKey == "" {
		return nil, goerr.New("GenAI API key is required")
	}
	if model == "" {
		model = DefaultGenAIModel
	}
	if embeddingModel == "" {
		embeddingModel = DefaultGenAIEmbeddingModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GenAI client")
	}

	return &GenAI{
		client:         client,
		model:          model,
		embeddingModel: embeddingModel,
		dimension:      int32(dimension),
	}, nil
}

func (g *GenAI) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(userPrompt), config)
	if err != nil {
		return "", goerr.Wrap(err, "GenAI generate failed", goerr.V("model", g.model))
	}

	text := resp.Text()
	if text == "" {
		return "", goerr.New("empty response from GenAI", goerr.V("model", g.model))
	}
	return text, nil
}

func (g *GenAI) Embed(ctx context.Context, text string) ([]float64, error) {
	config := &genai.EmbedContentConfig{
		TaskType: "SEMANTIC_SIMILARITY",
	}
	if g.dimension > 0 {
		config.OutputDimensionality = &g.dimension
	}

	result, err := g.client.Models.EmbedContent(ctx,
		g.embeddingModel,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		config,
	)
	if err != nil {
		return nil, goerr.Wrap(err, "GenAI embed failed", goerr.V("model", g.embeddingModel))
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, goerr.New("no embeddings returned", goerr.V("model", g.embeddingModel))
	}

	values := result.Embeddings[0].Values
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out, nil
}
