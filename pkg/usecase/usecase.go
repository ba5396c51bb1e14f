package usecase

import (
	"time"

	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
	"github.com/soos-lab/reflectd/pkg/domain/model"
	"github.com/soos-lab/reflectd/pkg/service/embedding"
	"github.com/soos-lab/reflectd/pkg/service/reasoning"
	"github.com/soos-lab/reflectd/pkg/service/similarity"
)

// Timeouts bounds each stage of the analysis pipeline. Zero fields take the
// value from DefaultTimeouts.
type Timeouts struct {
	Analysis  time.Duration
	Embedding time.Duration
	Write     time.Duration
	Similar   time.Duration
	Meta      time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		Analysis:  reasoning.DefaultTimeout,
		Embedding: embedding.DefaultTimeout,
		Write:     1500 * time.Millisecond,
		Similar:   similarity.DefaultTimeout,
		Meta:      1000 * time.Millisecond,
	}
}

func (t Timeouts) withDefaults() Timeouts {
	d := DefaultTimeouts()
	if t.Analysis <= 0 {
		t.Analysis = d.Analysis
	}
	if t.Embedding <= 0 {
		t.Embedding = d.Embedding
	}
	if t.Write <= 0 {
		t.Write = d.Write
	}
	if t.Similar <= 0 {
		t.Similar = d.Similar
	}
	if t.Meta <= 0 {
		t.Meta = d.Meta
	}
	return t
}

type UseCases struct {
	repo      interfaces.Repository
	reasoning *reasoning.Client
	embedding *embedding.Client
	timeouts  Timeouts
	version   string
	limit     int
	template  *SummaryTemplate

	Analysis *AnalysisUseCase
	Summary  *SummaryUseCase
}

type Option func(*UseCases)

// WithReasoning sets the reasoning client. Defaults to a heuristic-only client.
func WithReasoning(c *reasoning.Client) Option {
	return func(uc *UseCases) {
		uc.reasoning = c
	}
}

// WithEmbedding sets the embedding client. Defaults to a hash-only client.
func WithEmbedding(c *embedding.Client) Option {
	return func(uc *UseCases) {
		uc.embedding = c
	}
}

func WithTimeouts(t Timeouts) Option {
	return func(uc *UseCases) {
		uc.timeouts = t
	}
}

// WithAnalysisVersion sets the schema version tag stamped on every record
func WithAnalysisVersion(version string) Option {
	return func(uc *UseCases) {
		uc.version = version
	}
}

// WithSimilarLimit sets the number of similar entries returned by Analyze and
// by Similar when the caller passes no limit
func WithSimilarLimit(limit int) Option {
	return func(uc *UseCases) {
		uc.limit = limit
	}
}

// WithSummaryTemplate replaces the wording of the deterministic summary
func WithSummaryTemplate(tmpl *SummaryTemplate) Option {
	return func(uc *UseCases) {
		uc.template = tmpl
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:    repo,
		version: model.DefaultAnalysisVersion,
		limit:   model.DefaultSimilarLimit,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.timeouts = uc.timeouts.withDefaults()
	if uc.reasoning == nil {
		uc.reasoning = reasoning.New()
	}
	if uc.embedding == nil {
		uc.embedding = embedding.New()
	}
	if uc.template == nil {
		uc.template = DefaultSummaryTemplate()
	}
	if uc.version == "" {
		uc.version = model.DefaultAnalysisVersion
	}
	if uc.limit <= 0 {
		uc.limit = model.DefaultSimilarLimit
	}

	uc.Analysis = NewAnalysisUseCase(repo, uc.reasoning, uc.embedding,
		similarity.New(repo.Embedding(), similarity.WithTimeout(uc.timeouts.Similar)),
		uc.timeouts, uc.version, uc.limit)
	uc.Summary = NewSummaryUseCase(uc.reasoning, uc.template)

	return uc
}
