package embedding

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
	"github.com/soos-lab/reflectd/pkg/domain/model"
	"github.com/soos-lab/reflectd/pkg/service/heuristic"
	"github.com/soos-lab/reflectd/pkg/utils/logging"
	"github.com/soos-lab/reflectd/pkg/utils/timeout"
)

// DefaultTimeout bounds one remote embedding call
const DefaultTimeout = 5000 * time.Millisecond

// Client computes entry vectors with a remote model and falls back to the
// deterministic hash embedding on any failure.
type Client struct {
	embedder  interfaces.Embedder
	dimension int
	timeout   time.Duration
}

type Option func(*Client)

// WithEmbedder sets the remote model
func WithEmbedder(e interfaces.Embedder) Option {
	return func(c *Client) {
		c.embedder = e
	}
}

// WithDimension sets the length of fallback vectors
func WithDimension(n int) Option {
	return func(c *Client) {
		c.dimension = n
	}
}

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		dimension: model.DefaultEmbeddingDimension,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Remote reports whether a remote model is configured
func (c *Client) Remote() bool {
	return c.embedder != nil
}

// Dimension is the length of fallback vectors
func (c *Client) Dimension() int {
	return c.dimension
}

// Fallback returns the deterministic vector for text
func (c *Client) Fallback(text string) []float64 {
	return heuristic.Embed(text, c.dimension)
}

// Embed always returns a vector. The remote vector is passed through as
// returned by the model and is not normalized.
func (c *Client) Embed(ctx context.Context, text string) []float64 {
	if c.embedder == nil {
		return c.Fallback(text)
	}

	vec, err := c.EmbedRemote(ctx, text)
	if err != nil {
		logging.From(ctx).Warn("remote embedding failed, using hash fallback", "error", err)
		return c.Fallback(text)
	}
	return vec
}

// EmbedRemote calls the remote model only and reports its failure
func (c *Client) EmbedRemote(ctx context.Context, text string) ([]float64, error) {
	if c.embedder == nil {
		return nil, goerr.New("remote embedding is not configured")
	}

	vec, err := timeout.Run(ctx, c.timeout, "embedding_timeout", func(ctx context.Context) ([]float64, error) {
		return c.embedder.Embed(ctx, text)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate embedding")
	}
	if len(vec) == 0 {
		return nil, goerr.New("remote embedding is empty")
	}
	return vec, nil
}
