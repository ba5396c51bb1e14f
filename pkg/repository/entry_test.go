package repository_test

import (
	"context"
	"testing"

	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
	"github.com/soos-lab/reflectd/pkg/repository/memory"
)

func runEntryRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("MarkAnalyzed is repeatable", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		entryID := uniqueID("entry")

		for i := 0; i < 2; i++ {
			if err := repo.Entry().MarkAnalyzed(ctx, entryID, "soos-v1"); err != nil {
				t.Fatalf("failed to mark analyzed: %v", err)
			}
		}
	})
}

func TestMemoryEntryRepository(t *testing.T) {
	runEntryRepositoryTest(t, newMemoryRepository)

	t.Run("metadata is readable", func(t *testing.T) {
		repo := memory.New()
		if err := repo.Entry().MarkAnalyzed(context.Background(), "e1", "soos-v2"); err != nil {
			t.Fatalf("failed to mark analyzed: %v", err)
		}
		meta, ok := repo.EntryMeta("e1")
		if !ok {
			t.Fatal("expected metadata for e1")
		}
		if meta.AnalysisStatus != "complete" || meta.AnalysisVersion != "soos-v2" {
			t.Errorf("unexpected metadata: %+v", meta)
		}
	})
}

func TestFirestoreEntryRepository(t *testing.T) {
	runEntryRepositoryTest(t, newFirestoreRepository)
}
