package reasoning

import (
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/domain/model"
)

// stripCodeFence removes markdown code fence markers that models wrap JSON in
func stripCodeFence(raw string) string {
	s := strings.ReplaceAll(raw, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// decodeField unmarshals fields[key] into dst. A missing or mistyped field
// leaves dst untouched.
func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err == nil {
		*dst = v
	}
}

// parseAnalysis reads a model reply. Only a reply that is not a JSON object is
// an error; individual fields of the wrong shape become empty values.
func parseAnalysis(raw string) (*model.Analysis, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &fields); err != nil {
		return nil, goerr.Wrap(err, "failed to parse analysis response", goerr.V("response", raw))
	}

	a := &model.Analysis{}
	decodeField(fields, "facts", &a.Facts)
	decodeField(fields, "story", &a.Story)
	decodeField(fields, "emotions", &a.Emotions)
	decodeField(fields, "patterns", &a.Patterns)
	decodeField(fields, "triggers", &a.Triggers)
	decodeField(fields, "observation_comment", &a.ObservationComment)

	return a.Normalize(), nil
}

func parseSummary(raw string) (*model.Summary, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &fields); err != nil {
		return nil, goerr.Wrap(err, "failed to parse summary response", goerr.V("response", raw))
	}

	s := &model.Summary{}
	decodeField(fields, "summary", &s.Summary)
	decodeField(fields, "themes", &s.Themes)
	if s.Themes == nil {
		s.Themes = []string{}
	}
	if len(s.Themes) > model.MaxSummaryThemes {
		s.Themes = s.Themes[:model.MaxSummaryThemes]
	}
	return s, nil
}
