package reasoning

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/soos-lab/reflectd/pkg/domain/model"
	"github.com/soos-lab/reflectd/pkg/domain/types"
)

func analysisSystemPrompt() string {
	var sb strings.Builder

	sb.WriteString("You are a professional counselor. Extract structured observations from a diary entry.\n")
	sb.WriteString("No diagnosis or definitive labels. Use observational, hedged language (\"it may be\", \"possibly\").\n\n")
	sb.WriteString("Return JSON only with this schema:\n")
	sb.WriteString(`{
  "facts": ["..."],
  "story": ["..."],
  "emotions": [{"label":"joy","intensity_0_100":0,"certainty_0_1":0,"valence":"positive|negative|mixed","arousal":"low|medium|high"}],
  "patterns": [{"pattern_id":"inference_jump","label":"...","confidence_0_1":0,"evidence_quotes":["..."]}],
  "triggers": ["..."],
  "observation_comment": "..."
}`)
	sb.WriteString("\n\n## Constraints:\n\n")
	sb.WriteString("- No medical diagnosis.\n")
	sb.WriteString("- Avoid definitive language.\n")
	sb.WriteString("- Always include certainty_0_1 and confidence_0_1 fields, use low values when unsure.\n")
	sb.WriteString("- facts are observable events, story is the interpretation the writer adds.\n")
	sb.WriteString("- evidence_quotes must be verbatim quotes from the diary.\n")

	sb.WriteString("\n## Emotion labels:\n\n")
	labels := make([]string, 0, len(types.EmotionLabels()))
	for _, l := range types.EmotionLabels() {
		labels = append(labels, l.String())
	}
	sb.WriteString(strings.Join(labels, ", "))
	sb.WriteString("\n")

	sb.WriteString("\n## Cognitive pattern catalog:\n\n")
	for _, p := range types.Patterns() {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", p.ID, p.Label, p.Hint)
	}

	return sb.String()
}

func analysisUserPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Diary:\n\"\"\"\n")
	sb.WriteString(text)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}

func summarySystemPrompt() string {
	var sb strings.Builder
	sb.WriteString("Generate a short summary (1-2 lines) and 3 short themes from aggregated diary observation counts.\n")
	sb.WriteString("Avoid definitive language. Use observational language.\n")
	sb.WriteString("Return JSON only:\n")
	sb.WriteString(`{
  "summary": "...",
  "themes": ["...", "...", "..."]
}`)
	sb.WriteString("\n")
	return sb.String()
}

func summaryUserPrompt(input *model.SummaryInput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Period: %s\n", input.PeriodLabel)
	fmt.Fprintf(&sb, "Top emotion: %s\n", input.TopEmotion)
	fmt.Fprintf(&sb, "Top pattern: %s\n", input.TopPattern)
	fmt.Fprintf(&sb, "Top emotions: %s\n", marshalCounts(input.EmotionTop5))
	fmt.Fprintf(&sb, "Top patterns: %s\n", marshalCounts(input.PatternTop5))
	return sb.String()
}

func marshalCounts(counts []model.LabelCount) string {
	if counts == nil {
		counts = []model.LabelCount{}
	}
	data, err := json.Marshal(counts)
	if err != nil {
		return "[]"
	}
	return string(data)
}
