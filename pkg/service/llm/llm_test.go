package llm_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	"github.com/soos-lab/reflectd/pkg/service/llm"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{`{}`}}, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return s.GenerateStream(ctx, input...)
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn        func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
	generateEmbeddingFn func(ctx context.Context, dimension int, input []string) ([][]float64, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	if c.generateEmbeddingFn != nil {
		return c.generateEmbeddingFn(ctx, dimension, input)
	}
	vec := make([]float64, dimension)
	for i := range vec {
		vec[i] = 0.1
	}
	return [][]float64{vec}, nil
}

func TestNewGollem(t *testing.T) {
	_, err := llm.NewGollem(nil, 64)
	gt.Value(t, err).NotNil()

	_, err = llm.NewGollem(&mockLLMClient{}, 0)
	gt.Value(t, err).NotNil()
}

func TestGollemGenerateJSON(t *testing.T) {
	t.Run("returns first text and forwards prompt", func(t *testing.T) {
		var received string
		client := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				gt.Number(t, len(options)).Equal(2)
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						if txt, ok := input[0].(gollem.Text); ok {
							received = string(txt)
						}
						return &gollem.Response{Texts: []string{`{"facts":[]}`}}, nil
					},
				}, nil
			},
		}

		g, err := llm.NewGollem(client, 64)
		gt.NoError(t, err).Required()

		out, err := g.GenerateJSON(context.Background(), "system", "diary text")
		gt.NoError(t, err)
		gt.Value(t, out).Equal(`{"facts":[]}`)
		gt.Value(t, received).Equal("diary text")
	})

	t.Run("session error is wrapped", func(t *testing.T) {
		client := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return nil, errors.New("quota exceeded")
			},
		}
		g, err := llm.NewGollem(client, 64)
		gt.NoError(t, err).Required()

		_, err = g.GenerateJSON(context.Background(), "s", "u")
		gt.Value(t, err).NotNil()
		gt.String(t, err.Error()).Contains("quota exceeded")
	})

	t.Run("empty response is an error", func(t *testing.T) {
		client := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return &gollem.Response{}, nil
					},
				}, nil
			},
		}
		g, err := llm.NewGollem(client, 64)
		gt.NoError(t, err).Required()

		_, err = g.GenerateJSON(context.Background(), "s", "u")
		gt.Value(t, err).NotNil()
	})
}

func TestGollemEmbed(t *testing.T) {
	t.Run("requests configured dimension", func(t *testing.T) {
		g, err := llm.NewGollem(&mockLLMClient{}, 8)
		gt.NoError(t, err).Required()

		vec, err := g.Embed(context.Background(), "hello")
		gt.NoError(t, err)
		gt.Array(t, vec).Length(8)
	})

	t.Run("no embedding is an error", func(t *testing.T) {
		client := &mockLLMClient{
			generateEmbeddingFn: func(ctx context.Context, dimension int, input []string) ([][]float64, error) {
				return nil, nil
			},
		}
		g, err := llm.NewGollem(client, 8)
		gt.NoError(t, err).Required()

		_, err = g.Embed(context.Background(), "hello")
		gt.Value(t, err).NotNil()
	})
}

func TestNewGenAI_RequiresAPIKey(t *testing.T) {
	_, err := llm.NewGenAI(context.Background(), "", "", "", 0)
	gt.Value(t, err).NotNil()
}

func TestGenAI_WithRealAPI(t *testing.T) {
	apiKey := os.Getenv("TEST_GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("TEST_GEMINI_API_KEY not set")
	}

	ctx := context.Background()
	client, err := llm.NewGenAI(ctx, apiKey, "", "", 0)
	gt.NoError(t, err).Required()

	t.Run("GenerateJSON returns JSON text", func(t *testing.T) {
		out, err := client.GenerateJSON(ctx, "Return JSON only.", `Return {"ok": true}`)
		gt.NoError(t, err).Required()
		gt.String(t, out).Contains("ok")
	})

	t.Run("Embed returns a vector", func(t *testing.T) {
		vec, err := client.Embed(ctx, "I had a calm morning.")
		gt.NoError(t, err).Required()
		gt.Number(t, len(vec)).Greater(0)
	})
}
