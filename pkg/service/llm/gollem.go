package llm

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
)

// Gollem adapts a gollem.LLMClient to the Generator and Embedder interfaces
type Gollem struct {
	client    gollem.LLMClient
	dimension int
}

var (
	_ interfaces.Generator = &Gollem{}
	_ interfaces.Embedder  = &Gollem{}
)

// NewGollem wraps client. dimension is the requested embedding length.
func NewGollem(client gollem.LLMClient, dimension int) (*Gollem, error) {
	if client == nil {
		return nil, goerr.New("LLM client is required")
	}
	if dimension <= 0 {
		return nil, goerr.New("embedding dimension must be positive", goerr.V("dimension", dimension))
	}
	return &Gollem{client: client, dimension: dimension}, nil
}

func (g *Gollem) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	session, err := g.client.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(userPrompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content from LLM")
	}
	if resp == nil || len(resp.Texts) == 0 {
		return "", goerr.New("empty response from LLM")
	}

	return resp.Texts[0], nil
}

func (g *Gollem) Embed(ctx context.Context, text string) ([]float64, error) {
	embeddings, err := g.client.GenerateEmbedding(ctx, g.dimension, []string{text})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate embedding")
	}
	if len(embeddings) == 0 || len(embeddings[0]) == 0 {
		return nil, goerr.New("no embedding returned")
	}

	return embeddings[0], nil
}
