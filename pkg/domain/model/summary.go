package model

import (
	"bytes"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// SummaryInput is a set of pre-aggregated counts for a period
type SummaryInput struct {
	PeriodLabel string       `json:"period_label"`
	TopEmotion  string       `json:"top_emotion"`
	TopPattern  string       `json:"top_pattern"`
	EmotionTop5 []LabelCount `json:"emotion_top5"`
	PatternTop5 []LabelCount `json:"pattern_top5"`
}

// Summary is a short narrative over a period with up to three themes
type Summary struct {
	Summary string   `json:"summary"`
	Themes  []string `json:"themes"`
}

// MaxSummaryThemes bounds Summary.Themes
const MaxSummaryThemes = 3

// LabelCount is a frequency entry. It accepts {"label":"x","count":1},
// {"name":"x","count":1}, ["x", 1] and "x" on input.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func (x *LabelCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &x.Label)

	case '[':
		var pair []json.RawMessage
		if err := json.Unmarshal(data, &pair); err != nil {
			return goerr.Wrap(err, "invalid label count pair")
		}
		if len(pair) > 0 {
			if err := json.Unmarshal(pair[0], &x.Label); err != nil {
				return goerr.Wrap(err, "invalid label in pair")
			}
		}
		if len(pair) > 1 {
			var n float64
			if err := json.Unmarshal(pair[1], &n); err != nil {
				return goerr.Wrap(err, "invalid count in pair")
			}
			x.Count = int(n)
		}
		return nil

	default:
		var obj struct {
			Label *string  `json:"label"`
			Name  *string  `json:"name"`
			Count *float64 `json:"count"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return goerr.Wrap(err, "invalid label count")
		}
		switch {
		case obj.Label != nil:
			x.Label = *obj.Label
		case obj.Name != nil:
			x.Label = *obj.Name
		}
		if obj.Count != nil {
			x.Count = int(*obj.Count)
		}
		return nil
	}
}
