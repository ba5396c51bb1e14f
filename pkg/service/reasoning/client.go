package reasoning

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

// DefaultTimeout bounds one remote reasoning call
const DefaultTimeout = 6000 * time.Millisecond

// Client extracts observation records with a remote language model and falls
// back to the heuristic analyzer whenever the remote path fails.
type Client struct {
	generator interfaces.Generator
	fallback  *heuristic.Analyzer
	timeout   time.Duration
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithGenerator sets the remote model. Without it every call uses the fallback.
func WithGenerator(g interfaces.Generator) Option {
	return func(c *Client) {
		c.generator = g
	}
}

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithFallback replaces the heuristic analyzer
func WithFallback(a *heuristic.Analyzer) Option {
	return func(c *Client) {
		c.fallback = a
	}
}

// New creates a reasoning Client
func New(opts ...Option) *Client {
	c := &Client{
		fallback: heuristic.New(),
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Remote reports whether a remote model is configured
func (c *Client) Remote() bool {
	return c.generator != nil
}

// Fallback returns the heuristic record for text
func (c *Client) Fallback(text string) *model.Analysis {
	return c.fallback.Analyze(text)
}

// Analyze always returns a record. Remote failures (transport, status,
// timeout, malformed JSON) are logged and replaced by the heuristic result.
func (c *Client) Analyze(ctx context.Context, text string) *model.Analysis {
	if c.generator == nil {
		return c.Fallback(text)
	}

	analysis, err := c.AnalyzeRemote(ctx, text)
	if err != nil {
		logging.From(ctx).Warn("remote analysis failed, using heuristic fallback", "error", err)
		return c.Fallback(text)
	}
	return analysis
}

// AnalyzeRemote calls the remote model only and reports its failure
func (c *Client) AnalyzeRemote(ctx context.Context, text string) (*model.Analysis, error) {
	if c.generator == nil {
		return nil, goerr.New("remote reasoning is not configured")
	}

	raw, err := timeout.Run(ctx, c.timeout, "analysis_timeout", func(ctx context.Context) (string, error) {
		return c.generator.GenerateJSON(ctx, analysisSystemPrompt(), analysisUserPrompt(text))
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate analysis")
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

// Summarize asks the remote model for a period narrative. Callers fall back
// to a template on error.
func (c *Client) Summarize(ctx context.Context, input *model.SummaryInput) (*model.Summary, error) {
	if c.generator == nil {
		return nil, goerr.New("remote reasoning is not configured")
	}

	raw, err := timeout.Run(ctx, c.timeout, "summary_timeout", func(ctx context.Context) (string, error) {
		return c.generator.GenerateJSON(ctx, summarySystemPrompt(), summaryUserPrompt(input))
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate summary")
	}

	return parseSummary(raw)
}
