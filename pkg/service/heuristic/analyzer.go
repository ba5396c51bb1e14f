package heuristic

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/soos-lab/reflectd/pkg/domain/model"
	"github.com/soos-lab/reflectd/pkg/domain/types"
)

// DefaultObservationComment is the hedged comment attached to heuristic results
const DefaultObservationComment = "Observation: several events may be getting folded into a single conclusion."

const (
	maxFacts    = 2
	maxStory    = 3
	maxTriggers = 5

	placeholderIntensity  = 45
	placeholderCertainty  = 0.3
	placeholderConfidence = 0.25
)

// sentence boundaries: newline, ASCII and ideographic full stop, exclamation marks
var sentenceSplitter = regexp.MustCompile(`[\n.。!！]`)

// Analyzer produces low-confidence observation records without any I/O.
// The zero value is ready to use.
type Analyzer struct {
	comment string
}

// Option configures Analyzer
type Option func(*Analyzer)

// WithObservationComment replaces the fixed hedge comment
func WithObservationComment(comment string) Option {
	return func(a *Analyzer) {
		a.comment = comment
	}
}

// New creates an Analyzer
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze splits text into sentences and fills a placeholder record: the first
// two sentences become facts, the next three story fragments, plus one neutral
// emotion, one inference-jump pattern and up to five trigger keywords. It
// never fails; empty text yields empty slices.
func (a *Analyzer) Analyze(text string) *model.Analysis {
	sentences := splitSentences(text)

	var evidence []string
	if len(sentences) > 0 {
		evidence = []string{sentences[0]}
	}

	pattern := model.PatternObservation{
		PatternID:      types.PatternInferenceJump,
		Confidence:     placeholderConfidence,
		EvidenceQuotes: evidence,
	}
	if p, ok := types.PatternInferenceJump.Lookup(); ok {
		pattern.Label = p.Label
	}

	comment := DefaultObservationComment
	if a != nil && a.comment != "" {
		comment = a.comment
	}

	analysis := &model.Analysis{
		Facts: window(sentences, 0, maxFacts),
		Story: window(sentences, maxFacts, maxFacts+maxStory),
		Emotions: []model.EmotionObservation{
			{
				Label:     types.EmotionJoy,
				Intensity: placeholderIntensity,
				Certainty: placeholderCertainty,
				Valence:   types.ValencePositive,
				Arousal:   types.ArousalMedium,
			},
		},
		Patterns:           []model.PatternObservation{pattern},
		Triggers:           extractTriggers(text),
		ObservationComment: comment,
	}
	return analysis.Normalize()
}

func splitSentences(text string) []string {
	var out []string
	for _, s := range sentenceSplitter.Split(strings.TrimSpace(text), -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func window(s []string, from, to int) []string {
	if from >= len(s) {
		return []string{}
	}
	if to > len(s) {
		to = len(s)
	}
	out := make([]string, to-from)
	copy(out, s[from:to])
	return out
}

// extractTriggers replaces punctuation with spaces, splits on whitespace and
// keeps the first five tokens longer than one character.
func extractTriggers(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)

	triggers := []string{}
	for _, token := range strings.Fields(cleaned) {
		if len([]rune(token)) <= 1 {
			continue
		}
		triggers = append(triggers, token)
		if len(triggers) == maxTriggers {
			break
		}
	}
	return triggers
}
