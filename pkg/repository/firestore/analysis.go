package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
	"github.com/soos-lab/reflectd/pkg/domain/model"
	"github.com/soos-lab/reflectd/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// analysisDoc is the Firestore document representation of model.Analysis.
// Field names follow the snake_case layout shared with the web client.
type analysisDoc struct {
	EntryID            string       `firestore:"entry_id"`
	UserID             string       `firestore:"user_id"`
	Version            string       `firestore:"analysis_version"`
	Facts              []string     `firestore:"facts"`
	Story              []string     `firestore:"story"`
	Emotions           []emotionDoc `firestore:"emotions"`
	Patterns           []patternDoc `firestore:"patterns"`
	Triggers           []string     `firestore:"triggers"`
	ObservationComment string       `firestore:"observation_comment"`
	CreatedAt          time.Time    `firestore:"created_at"`
	UpdatedAt          time.Time    `firestore:"updated_at"`
}

type emotionDoc struct {
	Label     string  `firestore:"label"`
	Intensity float64 `firestore:"intensity_0_100"`
	Certainty float64 `firestore:"certainty_0_1"`
	Valence   string  `firestore:"valence"`
	Arousal   string  `firestore:"arousal"`
}

type patternDoc struct {
	PatternID      string   `firestore:"pattern_id"`
	Label          string   `firestore:"label"`
	Confidence     float64  `firestore:"confidence_0_1"`
	EvidenceQuotes []string `firestore:"evidence_quotes"`
}

func toAnalysisDoc(a *model.Analysis) *analysisDoc {
	doc := &analysisDoc{
		EntryID:            a.EntryID,
		UserID:             a.UserID,
		Version:            a.Version,
		Facts:              a.Facts,
		Story:              a.Story,
		Triggers:           a.Triggers,
		ObservationComment: a.ObservationComment,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          time.Now().UTC(),
		Emotions:           make([]emotionDoc, len(a.Emotions)),
		Patterns:           make([]patternDoc, len(a.Patterns)),
	}
	for i, e := range a.Emotions {
		doc.Emotions[i] = emotionDoc{
			Label:     string(e.Label),
			Intensity: e.Intensity,
			Certainty: e.Certainty,
			Valence:   string(e.Valence),
			Arousal:   string(e.Arousal),
		}
	}
	for i, p := range a.Patterns {
		doc.Patterns[i] = patternDoc{
			PatternID:      string(p.PatternID),
			Label:          p.Label,
			Confidence:     p.Confidence,
			EvidenceQuotes: p.EvidenceQuotes,
		}
	}
	return doc
}

func fromAnalysisDoc(d *analysisDoc) *model.Analysis {
	a := &model.Analysis{
		EntryID:            d.EntryID,
		UserID:             d.UserID,
		Version:            d.Version,
		Facts:              d.Facts,
		Story:              d.Story,
		Triggers:           d.Triggers,
		ObservationComment: d.ObservationComment,
		CreatedAt:          d.CreatedAt,
		Emotions:           make([]model.EmotionObservation, len(d.Emotions)),
		Patterns:           make([]model.PatternObservation, len(d.Patterns)),
	}
	for i, e := range d.Emotions {
		a.Emotions[i] = model.EmotionObservation{
			Label:     types.EmotionLabel(e.Label),
			Intensity: e.Intensity,
			Certainty: e.Certainty,
			Valence:   types.Valence(e.Valence),
			Arousal:   types.Arousal(e.Arousal),
		}
	}
	for i, p := range d.Patterns {
		a.Patterns[i] = model.PatternObservation{
			PatternID:      types.PatternID(p.PatternID),
			Label:          p.Label,
			Confidence:     p.Confidence,
			EvidenceQuotes: p.EvidenceQuotes,
		}
	}
	return a.Normalize()
}

type analysisRepository struct {
	client     *firestore.Client
	collection string
}

func newAnalysisRepository(client *firestore.Client) *analysisRepository {
	return &analysisRepository{client: client, collection: CollectionAnalysis}
}

func (r *analysisRepository) Put(ctx context.Context, analysis *model.Analysis) error {
	if analysis.EntryID == "" {
		return goerr.New("entry ID is required for analysis")
	}

	docRef := r.client.Collection(r.collection).Doc(analysis.EntryID)
	if _, err := docRef.Set(ctx, toAnalysisDoc(analysis)); err != nil {
		return goerr.Wrap(err, "failed to save analysis", goerr.V("entryID", analysis.EntryID))
	}
	return nil
}

func (r *analysisRepository) Get(ctx context.Context, entryID string) (*model.Analysis, error) {
	doc, err := r.client.Collection(r.collection).Doc(entryID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "analysis not found", goerr.V("entryID", entryID))
		}
		return nil, goerr.Wrap(err, "failed to get analysis", goerr.V("entryID", entryID))
	}

	var d analysisDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal analysis", goerr.V("entryID", entryID))
	}
	return fromAnalysisDoc(&d), nil
}
