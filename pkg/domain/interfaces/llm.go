package interfaces

import "context"

// Generator is a remote language model that answers a prompt with JSON text
type Generator interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Embedder is a remote embedding model
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}
