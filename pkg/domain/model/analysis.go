package model

import (
	"math"
	"time"

	"github.com/soos-lab/reflectd/pkg/domain/types"
)

// DefaultAnalysisVersion is the schema version tag written with every analysis
const DefaultAnalysisVersion = "soos-v1"

// Analysis is the structured observation record extracted from one entry.
// It is upserted by EntryID; a retry overwrites the previous record.
type Analysis struct {
	EntryID            string               `json:"entry_id"`
	UserID             string               `json:"user_id"`
	Version            string               `json:"analysis_version"`
	Facts              []string             `json:"facts"`
	Story              []string             `json:"story"`
	Emotions           []EmotionObservation `json:"emotions"`
	Patterns           []PatternObservation `json:"patterns"`
	Triggers           []string             `json:"triggers"`
	ObservationComment string               `json:"observation_comment"`
	CreatedAt          time.Time            `json:"created_at"`
}

// EmotionObservation is one observed emotion. Certainty is always present.
type EmotionObservation struct {
	Label     types.EmotionLabel `json:"label"`
	Intensity float64            `json:"intensity_0_100"`
	Certainty float64            `json:"certainty_0_1"`
	Valence   types.Valence      `json:"valence"`
	Arousal   types.Arousal      `json:"arousal"`
}

// PatternObservation is one detected cognitive pattern. Confidence is always present.
type PatternObservation struct {
	PatternID      types.PatternID `json:"pattern_id"`
	Label          string          `json:"label"`
	Confidence     float64         `json:"confidence_0_1"`
	EvidenceQuotes []string        `json:"evidence_quotes"`
}

// Normalize replaces nil slices with empty ones and clamps numeric scores into
// their ranges so that callers can filter and rank on them without nil checks.
func (x *Analysis) Normalize() *Analysis {
	x.Facts = nonNil(x.Facts)
	x.Story = nonNil(x.Story)
	x.Triggers = nonNil(x.Triggers)
	if x.Emotions == nil {
		x.Emotions = []EmotionObservation{}
	}
	if x.Patterns == nil {
		x.Patterns = []PatternObservation{}
	}

	for i := range x.Emotions {
		x.Emotions[i].Intensity = clamp(x.Emotions[i].Intensity, 0, 100)
		x.Emotions[i].Certainty = clamp(x.Emotions[i].Certainty, 0, 1)
	}
	for i := range x.Patterns {
		p := &x.Patterns[i]
		p.Confidence = clamp(p.Confidence, 0, 1)
		p.EvidenceQuotes = nonNil(p.EvidenceQuotes)
		if p.Label == "" {
			if entry, ok := p.PatternID.Lookup(); ok {
				p.Label = entry.Label
			}
		}
	}
	return x
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
