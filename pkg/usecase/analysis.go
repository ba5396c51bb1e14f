package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
	"github.com/soos-lab/reflectd/pkg/domain/model"
	"github.com/soos-lab/reflectd/pkg/service/embedding"
	"github.com/soos-lab/reflectd/pkg/service/reasoning"
	"github.com/soos-lab/reflectd/pkg/service/similarity"
	"github.com/soos-lab/reflectd/pkg/utils/async"
	"github.com/soos-lab/reflectd/pkg/utils/logging"
	"github.com/soos-lab/reflectd/pkg/utils/timeout"
	"golang.org/x/sync/errgroup"
)

// AnalyzeResult is the outcome of one analysis run. Computation never fails;
// the saved flags report whether each record reached storage.
type AnalyzeResult struct {
	Analysis       *model.Analysis      `json:"analysis"`
	Embedding      []float64            `json:"embedding"`
	Similar        []model.SimilarEntry `json:"similar"`
	AnalysisSaved  bool                 `json:"analysis_saved"`
	EmbeddingSaved bool                 `json:"embedding_saved"`
	AnalysisError  *string              `json:"analysis_error"`
	EmbeddingError *string              `json:"embedding_error"`
}

type AnalysisUseCase struct {
	repo      interfaces.Repository
	reasoning *reasoning.Client
	embedding *embedding.Client
	query     *similarity.Query
	timeouts  Timeouts
	version   string
	limit     int
}

func NewAnalysisUseCase(repo interfaces.Repository, rc *reasoning.Client, ec *embedding.Client, query *similarity.Query, timeouts Timeouts, version string, limit int) *AnalysisUseCase {
	return &AnalysisUseCase{
		repo:      repo,
		reasoning: rc,
		embedding: ec,
		query:     query,
		timeouts:  timeouts.withDefaults(),
		version:   version,
		limit:     limit,
	}
}

func validateEntry(entry *model.Entry) error {
	if err := entry.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidRequest, err.Error())
	}
	return nil
}

// Analyze runs reasoning and embedding concurrently, persists both records
// independently and ranks similar entries of the same user. Only invalid
// input returns an error.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, entry *model.Entry) (*AnalyzeResult, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	logger := logging.From(ctx).With(EntryIDKey, entry.ID)
	ctx = logging.With(ctx, logger)

	var (
		analysis *model.Analysis
		vector   []float64
		fanout   errgroup.Group
	)

	fanout.Go(func() error {
		a, err := timeout.Run(ctx, uc.timeouts.Analysis, "analysis_timeout", func(ctx context.Context) (*model.Analysis, error) {
			return uc.reasoning.Analyze(ctx, entry.Text), nil
		})
		if err != nil {
			logger.Warn("analysis did not finish in time, using heuristic", "error", err)
			a = uc.reasoning.Fallback(entry.Text)
		}
		analysis = a
		return nil
	})

	fanout.Go(func() error {
		v, err := timeout.Run(ctx, uc.timeouts.Embedding, "embedding_timeout", func(ctx context.Context) ([]float64, error) {
			return uc.embedding.Embed(ctx, entry.Text), nil
		})
		if err != nil {
			logger.Warn("embedding did not finish in time, using hash", "error", err)
			v = uc.embedding.Fallback(entry.Text)
		}
		vector = v
		return nil
	})

	// both tasks return nil
	_ = fanout.Wait()

	record := uc.buildRecord(entry, analysis)
	result := &AnalyzeResult{
		Analysis:  record,
		Embedding: vector,
	}

	uc.persist(ctx, result, &model.Embedding{
		EntryID:   entry.ID,
		UserID:    entry.UserID,
		Vector:    vector,
		CreatedAt: time.Now().UTC(),
	})

	entryID, version := entry.ID, uc.version
	async.Dispatch(ctx, func(ctx context.Context) error {
		return timeout.Do(ctx, uc.timeouts.Meta, "meta_write_timeout", func(ctx context.Context) error {
			return uc.repo.Entry().MarkAnalyzed(ctx, entryID, version)
		})
	})

	similar, err := uc.query.Find(ctx, entry.UserID, entry.ID, vector, uc.limit)
	if err != nil {
		logger.Warn("similarity query failed, returning no similar entries", "error", err)
		similar = []model.SimilarEntry{}
	}
	result.Similar = similar

	return result, nil
}

// persist writes the analysis and embedding records concurrently. Each write
// is bounded and its outcome recorded in result regardless of the other.
func (uc *AnalysisUseCase) persist(ctx context.Context, result *AnalyzeResult, emb *model.Embedding) {
	var (
		analysisErr  error
		embeddingErr error
		writes       errgroup.Group
	)

	writes.Go(func() error {
		analysisErr = timeout.Do(ctx, uc.timeouts.Write, "analysis_write_timeout", func(ctx context.Context) error {
			return uc.repo.Analysis().Put(ctx, result.Analysis)
		})
		return nil
	})

	writes.Go(func() error {
		embeddingErr = timeout.Do(ctx, uc.timeouts.Write, "embedding_write_timeout", func(ctx context.Context) error {
			return uc.repo.Embedding().Put(ctx, emb)
		})
		return nil
	})

	_ = writes.Wait()

	logger := logging.From(ctx)
	result.AnalysisSaved = analysisErr == nil
	if analysisErr != nil {
		logger.Warn("failed to save analysis", "error", analysisErr)
		msg := analysisErr.Error()
		result.AnalysisError = &msg
	}

	result.EmbeddingSaved = embeddingErr == nil
	if embeddingErr != nil {
		logger.Warn("failed to save embedding", "error", embeddingErr)
		msg := embeddingErr.Error()
		result.EmbeddingError = &msg
	}
}

// AnalyzeLite runs only the deterministic analyzer and hash embedding. It
// performs no remote call and no storage access.
func (uc *AnalysisUseCase) AnalyzeLite(ctx context.Context, entry *model.Entry) (*AnalyzeResult, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	return &AnalyzeResult{
		Analysis:  uc.buildRecord(entry, uc.reasoning.Fallback(entry.Text)),
		Embedding: uc.embedding.Fallback(entry.Text),
		Similar:   []model.SimilarEntry{},
	}, nil
}

// Similar ranks entries of userID against the stored embedding of entryID.
// An entry without a stored embedding has no similar entries.
func (uc *AnalysisUseCase) Similar(ctx context.Context, userID, entryID string, limit int) ([]model.SimilarEntry, error) {
	if userID == "" || entryID == "" {
		return nil, goerr.Wrap(ErrInvalidRequest, "entry_id and user_id are required")
	}
	if limit <= 0 {
		limit = uc.limit
	}

	emb, err := uc.repo.Embedding().Get(ctx, entryID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return []model.SimilarEntry{}, nil
		}
		return nil, goerr.Wrap(err, "failed to get embedding", goerr.V(EntryIDKey, entryID))
	}

	similar, err := uc.query.Find(ctx, userID, entryID, emb.Vector, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find similar entries",
			goerr.V(EntryIDKey, entryID),
			goerr.V(UserIDKey, userID),
		)
	}
	return similar, nil
}

func (uc *AnalysisUseCase) buildRecord(entry *model.Entry, analysis *model.Analysis) *model.Analysis {
	record := *analysis
	record.EntryID = entry.ID
	record.UserID = entry.UserID
	record.Version = uc.version
	record.CreatedAt = entry.CreatedAt
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	return record.Normalize()
}
