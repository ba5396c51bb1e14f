package reasoning_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/soos-lab/reflectd/pkg/domain/model"
	"github.com/soos-lab/reflectd/pkg/domain/types"
	"github.com/soos-lab/reflectd/pkg/service/heuristic"
	"github.com/soos-lab/reflectd/pkg/service/reasoning"
)

type mockGenerator struct {
	generateFn func(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	calls      int
}

func (m *mockGenerator) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.calls++
	return m.generateFn(ctx, systemPrompt, userPrompt)
}

const diary = "Presentation went badly. My manager frowned.\nI always ruin everything."

const remoteReply = "```json\n" + `{
  "facts": ["Presentation went badly", "My manager frowned"],
  "story": ["I always ruin everything"],
  "emotions": [{"label":"sadness","intensity_0_100":70,"certainty_0_1":0.6,"valence":"negative","arousal":"low"}],
  "patterns": [{"pattern_id":"overgeneralization","label":"Overgeneralization","confidence_0_1":0.7,"evidence_quotes":["I always ruin everything"]}],
  "triggers": ["presentation","manager"],
  "observation_comment": "It may be that one meeting is being read as a rule."
}` + "\n```"

func TestAnalyze(t *testing.T) {
	t.Run("uses remote result", func(t *testing.T) {
		gen := &mockGenerator{generateFn: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			gt.String(t, userPrompt).Contains("I always ruin everything")
			gt.String(t, systemPrompt).Contains("catastrophizing")
			return remoteReply, nil
		}}
		client := reasoning.New(reasoning.WithGenerator(gen))

		a := client.Analyze(context.Background(), diary)
		gt.Value(t, gen.calls).Equal(1)
		gt.Array(t, a.Facts).Length(2)
		gt.Value(t, a.Emotions[0].Label).Equal(types.EmotionSadness)
		gt.Value(t, a.Patterns[0].PatternID).Equal(types.PatternOvergeneralization)
		gt.Value(t, a.Patterns[0].Confidence).Equal(0.7)
	})

	t.Run("no generator uses heuristic", func(t *testing.T) {
		client := reasoning.New()
		gt.Bool(t, client.Remote()).False()
		gt.Value(t, client.Analyze(context.Background(), diary)).Equal(heuristic.New().Analyze(diary))
	})

	t.Run("remote error falls back", func(t *testing.T) {
		gen := &mockGenerator{generateFn: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return "", errors.New("status 503")
		}}
		a := reasoning.New(reasoning.WithGenerator(gen)).Analyze(context.Background(), diary)
		gt.Value(t, a).Equal(heuristic.New().Analyze(diary))
	})

	t.Run("malformed JSON falls back", func(t *testing.T) {
		gen := &mockGenerator{generateFn: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return "Sure! Here is your analysis: facts...", nil
		}}
		a := reasoning.New(reasoning.WithGenerator(gen)).Analyze(context.Background(), diary)
		gt.Value(t, a).Equal(heuristic.New().Analyze(diary))
	})

	t.Run("slow remote times out and falls back", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		gen := &mockGenerator{generateFn: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			<-release
			return remoteReply, nil
		}}
		client := reasoning.New(
			reasoning.WithGenerator(gen),
			reasoning.WithTimeout(20*time.Millisecond),
		)

		start := time.Now()
		a := client.Analyze(context.Background(), diary)
		gt.Bool(t, time.Since(start) < time.Second).True()
		gt.Value(t, a).Equal(heuristic.New().Analyze(diary))
	})

	t.Run("AnalyzeRemote reports failure", func(t *testing.T) {
		_, err := reasoning.New().AnalyzeRemote(context.Background(), diary)
		gt.Value(t, err).NotNil()
	})
}

func TestParseAnalysis(t *testing.T) {
	t.Run("missing fields become empty", func(t *testing.T) {
		a, err := reasoning.ParseAnalysis(`{"facts":["a"]}`)
		gt.NoError(t, err).Required()
		gt.Value(t, a.Facts).Equal([]string{"a"})
		gt.Value(t, a.Story).Equal([]string{})
		gt.Value(t, a.Emotions).Equal([]model.EmotionObservation{})
		gt.Value(t, a.Patterns).Equal([]model.PatternObservation{})
		gt.Value(t, a.Triggers).Equal([]string{})
		gt.Value(t, a.ObservationComment).Equal("")
	})

	t.Run("mistyped fields become empty", func(t *testing.T) {
		a, err := reasoning.ParseAnalysis(`{"facts":"not an array","story":null,"observation_comment":42,"triggers":["x"]}`)
		gt.NoError(t, err).Required()
		gt.Value(t, a.Facts).Equal([]string{})
		gt.Value(t, a.Story).Equal([]string{})
		gt.Value(t, a.ObservationComment).Equal("")
		gt.Value(t, a.Triggers).Equal([]string{"x"})
	})

	t.Run("missing confidence defaults to zero and label is filled", func(t *testing.T) {
		a, err := reasoning.ParseAnalysis(`{"patterns":[{"pattern_id":"mind_reading"}]}`)
		gt.NoError(t, err).Required()
		gt.Value(t, a.Patterns[0].Confidence).Equal(0.0)
		gt.Value(t, a.Patterns[0].Label).Equal("Mind reading")
		gt.Value(t, a.Patterns[0].EvidenceQuotes).Equal([]string{})
	})

	t.Run("non-object is an error", func(t *testing.T) {
		_, err := reasoning.ParseAnalysis(`[1,2,3]`)
		gt.Value(t, err).NotNil()
	})
}

func TestStripCodeFence(t *testing.T) {
	gt.Value(t, reasoning.StripCodeFence("```json\n{}\n```")).Equal("{}")
	gt.Value(t, reasoning.StripCodeFence("  {}  ")).Equal("{}")
}

func TestSummarize(t *testing.T) {
	input := &model.SummaryInput{
		PeriodLabel: "7 days",
		TopEmotion:  "sadness",
		TopPattern:  "overgeneralization",
		EmotionTop5: []model.LabelCount{{Label: "sadness", Count: 4}},
	}

	t.Run("parses themes and truncates to three", func(t *testing.T) {
		gen := &mockGenerator{generateFn: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			gt.String(t, userPrompt).Contains("Period: 7 days")
			gt.String(t, userPrompt).Contains(`{"label":"sadness","count":4}`)
			return `{"summary":"Sadness may have stood out.","themes":["a","b","c","d"]}`, nil
		}}
		s, err := reasoning.New(reasoning.WithGenerator(gen)).Summarize(context.Background(), input)
		gt.NoError(t, err).Required()
		gt.Value(t, s.Summary).Equal("Sadness may have stood out.")
		gt.Value(t, s.Themes).Equal([]string{"a", "b", "c"})
	})

	t.Run("not configured is an error", func(t *testing.T) {
		_, err := reasoning.New().Summarize(context.Background(), input)
		gt.Value(t, err).NotNil()
	})

	t.Run("prompt renders empty counts", func(t *testing.T) {
		p := reasoning.SummaryUserPrompt(&model.SummaryInput{PeriodLabel: "month"})
		gt.String(t, p).Contains("Top emotions: []")
	})
}

func TestAnalysisSystemPrompt(t *testing.T) {
	p := reasoning.AnalysisSystemPrompt()
	for _, pattern := range types.Patterns() {
		gt.String(t, p).Contains(string(pattern.ID))
	}
	for _, l := range types.EmotionLabels() {
		gt.String(t, p).Contains(string(l))
	}
	gt.String(t, p).Contains("confidence_0_1")
	gt.String(t, p).Contains("No medical diagnosis")
}
