package usecase

import (
	"bytes"
	"context"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/domain/model"
	"github.com/soos-lab/reflectd/pkg/service/reasoning"
	"github.com/soos-lab/reflectd/pkg/utils/logging"
)

// SummaryTemplate holds the wording of the deterministic period summary.
// Summary, EmotionTheme and PatternTheme are text/template sources rendered
// with summaryData.
type SummaryTemplate struct {
	Summary           string `toml:"summary"`
	EmotionTheme      string `toml:"emotion_theme"`
	PatternTheme      string `toml:"pattern_theme"`
	EmotionThemeEmpty string `toml:"emotion_theme_empty"`
	PatternThemeEmpty string `toml:"pattern_theme_empty"`
	TriggerTheme      string `toml:"trigger_theme"`
	Placeholder       string `toml:"placeholder"`

	summary *template.Template
	emotion *template.Template
	pattern *template.Template
}

type summaryData struct {
	Period  string
	Emotion string
	Pattern string
}

func DefaultSummaryTemplate() *SummaryTemplate {
	tmpl := &SummaryTemplate{
		Summary:           "Over the last {{.Period}}, {{.Emotion}} stood out among emotions and {{.Pattern}} among patterns.",
		EmotionTheme:      "{{.Emotion}} fluctuations",
		PatternTheme:      "attention to {{.Pattern}}",
		EmotionThemeEmpty: "emotional fluctuations",
		PatternThemeEmpty: "thinking patterns",
		TriggerTheme:      "reaction triggers",
		Placeholder:       "not yet tallied",
	}
	if err := tmpl.Compile(); err != nil {
		panic(err)
	}
	return tmpl
}

// Compile parses the template sources. It must be called after the fields are
// set and before Render.
func (x *SummaryTemplate) Compile() error {
	var err error
	if x.summary, err = template.New("summary").Parse(x.Summary); err != nil {
		return goerr.Wrap(err, "invalid summary template", goerr.V("template", x.Summary))
	}
	if x.emotion, err = template.New("emotion_theme").Parse(x.EmotionTheme); err != nil {
		return goerr.Wrap(err, "invalid emotion theme template", goerr.V("template", x.EmotionTheme))
	}
	if x.pattern, err = template.New("pattern_theme").Parse(x.PatternTheme); err != nil {
		return goerr.Wrap(err, "invalid pattern theme template", goerr.V("template", x.PatternTheme))
	}
	return nil
}

func execute(t *template.Template, data summaryData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render template", goerr.V("name", t.Name()))
	}
	return buf.String(), nil
}

// Render builds the deterministic summary by interpolating the top labels
func (x *SummaryTemplate) Render(input *model.SummaryInput) (*model.Summary, error) {
	data := summaryData{
		Period:  input.PeriodLabel,
		Emotion: input.TopEmotion,
		Pattern: input.TopPattern,
	}
	if data.Emotion == "" {
		data.Emotion = x.Placeholder
	}
	if data.Pattern == "" {
		data.Pattern = x.Placeholder
	}

	summary, err := execute(x.summary, data)
	if err != nil {
		return nil, err
	}

	emotionTheme := x.EmotionThemeEmpty
	if input.TopEmotion != "" {
		if emotionTheme, err = execute(x.emotion, data); err != nil {
			return nil, err
		}
	}

	patternTheme := x.PatternThemeEmpty
	if input.TopPattern != "" {
		if patternTheme, err = execute(x.pattern, data); err != nil {
			return nil, err
		}
	}

	return &model.Summary{
		Summary: summary,
		Themes:  []string{emotionTheme, patternTheme, x.TriggerTheme},
	}, nil
}

type SummaryUseCase struct {
	reasoning *reasoning.Client
	template  *SummaryTemplate
}

func NewSummaryUseCase(rc *reasoning.Client, tmpl *SummaryTemplate) *SummaryUseCase {
	return &SummaryUseCase{
		reasoning: rc,
		template:  tmpl,
	}
}

// Summarize asks the remote model for a narrative when one is configured and
// falls back to the template on any failure
func (uc *SummaryUseCase) Summarize(ctx context.Context, input *model.SummaryInput) (*model.Summary, error) {
	if input == nil {
		input = &model.SummaryInput{}
	}

	if uc.reasoning.Remote() {
		summary, err := uc.reasoning.Summarize(ctx, input)
		if err == nil {
			return summary, nil
		}
		logging.From(ctx).Warn("remote summary failed, using template", "error", err)
	}

	summary, err := uc.template.Render(input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render summary", goerr.V("period", input.PeriodLabel))
	}
	return summary, nil
}
