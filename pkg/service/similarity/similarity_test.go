package similarity_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/soos-lab/reflectd/pkg/domain/model"
	"github.com/soos-lab/reflectd/pkg/repository/memory"
	"github.com/soos-lab/reflectd/pkg/service/heuristic"
	"github.com/soos-lab/reflectd/pkg/service/similarity"
	"github.com/soos-lab/reflectd/pkg/utils/timeout"
)

func TestCosine(t *testing.T) {
	t.Run("self similarity is one", func(t *testing.T) {
		v := heuristic.Embed("Quiet morning with coffee.", 64)
		gt.Bool(t, math.Abs(similarity.Cosine(v, v)-1) < 1e-9).True()
	})

	t.Run("symmetric", func(t *testing.T) {
		a := []float64{1, 2, 3}
		b := []float64{-2, 0.5, 4}
		gt.Value(t, similarity.Cosine(a, b)).Equal(similarity.Cosine(b, a))
	})

	t.Run("not assumed normalized", func(t *testing.T) {
		gt.Bool(t, math.Abs(similarity.Cosine([]float64{3, 4}, []float64{6, 8})-1) < 1e-9).True()
	})

	t.Run("zero norm yields zero", func(t *testing.T) {
		gt.Value(t, similarity.Cosine([]float64{0, 0}, []float64{1, 1})).Equal(0.0)
	})

	t.Run("orthogonal", func(t *testing.T) {
		gt.Value(t, similarity.Cosine([]float64{1, 0}, []float64{0, 1})).Equal(0.0)
	})
}

func TestRank(t *testing.T) {
	query := []float64{1, 0, 0}
	candidates := []*model.Embedding{
		{EntryID: "c", Vector: []float64{0, 1, 0}},
		{EntryID: "a", Vector: []float64{1, 0, 0}},
		{EntryID: "self", Vector: []float64{1, 0, 0}},
		{EntryID: "broken", Vector: nil},
		{EntryID: "short", Vector: []float64{1, 0}},
		{EntryID: "b", Vector: []float64{1, 1, 0}},
		nil,
	}

	t.Run("orders by score and truncates", func(t *testing.T) {
		got := similarity.Rank(query, candidates, "self", 2)
		gt.Array(t, got).Length(2).Required()
		gt.Value(t, got[0].EntryID).Equal("a")
		gt.Value(t, got[1].EntryID).Equal("b")
		gt.Number(t, got[0].Score).Greater(got[1].Score)
	})

	t.Run("skips excluded and malformed", func(t *testing.T) {
		got := similarity.Rank(query, candidates, "self", 10)
		gt.Array(t, got).Length(3).Required()
		for _, s := range got {
			gt.Value(t, s.EntryID).NotEqual("self")
			gt.Value(t, s.EntryID).NotEqual("broken")
			gt.Value(t, s.EntryID).NotEqual("short")
		}
		gt.Value(t, got[2].EntryID).Equal("c")
	})

	t.Run("ties keep candidate order", func(t *testing.T) {
		got := similarity.Rank(query, []*model.Embedding{
			{EntryID: "first", Vector: []float64{2, 0, 0}},
			{EntryID: "second", Vector: []float64{1, 0, 0}},
		}, "", 3)
		gt.Array(t, got).Length(2).Required()
		gt.Value(t, got[0].EntryID).Equal("first")
		gt.Value(t, got[1].EntryID).Equal("second")
	})

	t.Run("empty corpus", func(t *testing.T) {
		got := similarity.Rank(query, nil, "self", 3)
		gt.Bool(t, got != nil).True()
		gt.Array(t, got).Length(0)
	})
}

type slowRepository struct {
	*memory.Memory
	release chan struct{}
	err     error
}

func (r *slowRepository) Put(ctx context.Context, e *model.Embedding) error {
	return r.Memory.Embedding().Put(ctx, e)
}

func (r *slowRepository) Get(ctx context.Context, entryID string) (*model.Embedding, error) {
	return r.Memory.Embedding().Get(ctx, entryID)
}

func (r *slowRepository) ListByUser(ctx context.Context, userID string) ([]*model.Embedding, error) {
	if r.release != nil {
		<-r.release
	}
	if r.err != nil {
		return nil, r.err
	}
	return r.Memory.Embedding().ListByUser(ctx, userID)
}

func TestQueryFind(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	for _, e := range []*model.Embedding{
		{EntryID: "e1", UserID: "u1", Vector: []float64{1, 0}},
		{EntryID: "e2", UserID: "u1", Vector: []float64{0.9, 0.1}},
		{EntryID: "e3", UserID: "u1", Vector: []float64{0, 1}},
		{EntryID: "other", UserID: "u2", Vector: []float64{1, 0}},
	} {
		gt.NoError(t, repo.Embedding().Put(ctx, e)).Required()
	}

	t.Run("scopes to user and excludes query entry", func(t *testing.T) {
		q := similarity.New(repo.Embedding())
		got, err := q.Find(ctx, "u1", "e1", []float64{1, 0}, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, got).Length(2).Required()
		gt.Value(t, got[0].EntryID).Equal("e2")
		gt.Value(t, got[1].EntryID).Equal("e3")
	})

	t.Run("unknown user yields empty", func(t *testing.T) {
		q := similarity.New(repo.Embedding())
		got, err := q.Find(ctx, "nobody", "x", []float64{1, 0}, 3)
		gt.NoError(t, err).Required()
		gt.Array(t, got).Length(0)
	})

	t.Run("retrieval failure propagates", func(t *testing.T) {
		q := similarity.New(&slowRepository{Memory: repo, err: errors.New("unavailable")})
		_, err := q.Find(ctx, "u1", "e1", []float64{1, 0}, 3)
		gt.Value(t, err).NotNil()
	})

	t.Run("retrieval timeout propagates", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		q := similarity.New(&slowRepository{Memory: repo, release: release},
			similarity.WithTimeout(20*time.Millisecond))
		started := time.Now()
		_, err := q.Find(ctx, "u1", "e1", []float64{1, 0}, 3)
		gt.Bool(t, errors.Is(err, timeout.ErrTimeout)).True()
		gt.Bool(t, time.Since(started) < time.Second).True()
	})
}
