package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
	"github.com/soos-lab/reflectd/pkg/domain/model"
	"github.com/soos-lab/reflectd/pkg/domain/types"
)

func runAnalysisRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put then Get returns the record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		entryID := uniqueID("entry")
		createdAt := time.Now().UTC().Truncate(time.Second)
		analysis := &model.Analysis{
			EntryID:            entryID,
			UserID:             "user-1",
			Version:            model.DefaultAnalysisVersion,
			Facts:              []string{"Went to the office"},
			Story:              []string{"Nobody cares about my work"},
			Emotions:           []model.EmotionObservation{{Label: types.EmotionSadness, Intensity: 60, Certainty: 0.7, Valence: types.ValenceNegative, Arousal: types.ArousalLow}},
			Patterns:           []model.PatternObservation{{PatternID: types.PatternOvergeneralization, Label: "Overgeneralization", Confidence: 0.6, EvidenceQuotes: []string{"Nobody cares"}}},
			Triggers:           []string{"office"},
			ObservationComment: "It may be that one event is read as a rule.",
			CreatedAt:          createdAt,
		}

		if err := repo.Analysis().Put(ctx, analysis); err != nil {
			t.Fatalf("failed to put analysis: %v", err)
		}

		got, err := repo.Analysis().Get(ctx, entryID)
		if err != nil {
			t.Fatalf("failed to get analysis: %v", err)
		}

		if got.UserID != "user-1" {
			t.Errorf("expected UserID=user-1, got %s", got.UserID)
		}
		if got.Version != model.DefaultAnalysisVersion {
			t.Errorf("expected Version=%s, got %s", model.DefaultAnalysisVersion, got.Version)
		}
		if len(got.Emotions) != 1 || got.Emotions[0].Certainty != 0.7 {
			t.Errorf("unexpected emotions: %+v", got.Emotions)
		}
		if len(got.Patterns) != 1 || got.Patterns[0].PatternID != types.PatternOvergeneralization {
			t.Errorf("unexpected patterns: %+v", got.Patterns)
		}
		if !got.CreatedAt.Equal(createdAt) {
			t.Errorf("expected CreatedAt=%v, got %v", createdAt, got.CreatedAt)
		}
	})

	t.Run("Put overwrites by entry ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		entryID := uniqueID("entry")
		first := (&model.Analysis{EntryID: entryID, UserID: "user-1", Facts: []string{"a", "b"}}).Normalize()
		second := (&model.Analysis{EntryID: entryID, UserID: "user-1", Facts: []string{"c"}}).Normalize()

		if err := repo.Analysis().Put(ctx, first); err != nil {
			t.Fatalf("failed to put first analysis: %v", err)
		}
		if err := repo.Analysis().Put(ctx, second); err != nil {
			t.Fatalf("failed to put second analysis: %v", err)
		}

		got, err := repo.Analysis().Get(ctx, entryID)
		if err != nil {
			t.Fatalf("failed to get analysis: %v", err)
		}
		if len(got.Facts) != 1 || got.Facts[0] != "c" {
			t.Errorf("expected Facts=[c], got %v", got.Facts)
		}
	})

	t.Run("Get returns ErrNotFound for unknown entry", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Analysis().Get(context.Background(), uniqueID("missing"))
		if !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Put rejects empty entry ID", func(t *testing.T) {
		repo := newRepo(t)
		if err := repo.Analysis().Put(context.Background(), &model.Analysis{UserID: "user-1"}); err == nil {
			t.Error("expected error for empty entry ID")
		}
	})
}

func TestMemoryAnalysisRepository(t *testing.T) {
	runAnalysisRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreAnalysisRepository(t *testing.T) {
	runAnalysisRepositoryTest(t, newFirestoreRepository)
}
