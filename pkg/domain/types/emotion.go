package types

import "github.com/m-mizutani/goerr/v2"

// EmotionLabel is one of the eight primary emotions
type EmotionLabel string

const (
	EmotionJoy          EmotionLabel = "joy"
	EmotionTrust        EmotionLabel = "trust"
	EmotionFear         EmotionLabel = "fear"
	EmotionSurprise     EmotionLabel = "surprise"
	EmotionSadness      EmotionLabel = "sadness"
	EmotionDisgust      EmotionLabel = "disgust"
	EmotionAnger        EmotionLabel = "anger"
	EmotionAnticipation EmotionLabel = "anticipation"
)

// EmotionLabels returns all primary emotions in canonical order
func EmotionLabels() []EmotionLabel {
	return []EmotionLabel{
		EmotionJoy,
		EmotionTrust,
		EmotionFear,
		EmotionSurprise,
		EmotionSadness,
		EmotionDisgust,
		EmotionAnger,
		EmotionAnticipation,
	}
}

func (x EmotionLabel) String() string {
	return string(x)
}

// Validate checks that the label is one of the primary emotions
func (x EmotionLabel) Validate() error {
	for _, l := range EmotionLabels() {
		if x == l {
			return nil
		}
	}
	return goerr.New("unknown emotion label", goerr.V("label", string(x)))
}

// Valence is the pleasantness tag of an emotion observation
type Valence string

const (
	ValencePositive Valence = "positive"
	ValenceNegative Valence = "negative"
	ValenceMixed    Valence = "mixed"
)

// Validate checks the valence tag
func (x Valence) Validate() error {
	switch x {
	case ValencePositive, ValenceNegative, ValenceMixed:
		return nil
	}
	return goerr.New("unknown valence", goerr.V("valence", string(x)))
}

// Arousal is the activation tag of an emotion observation
type Arousal string

const (
	ArousalLow    Arousal = "low"
	ArousalMedium Arousal = "medium"
	ArousalHigh   Arousal = "high"
)

// Validate checks the arousal tag
func (x Arousal) Validate() error {
	switch x {
	case ArousalLow, ArousalMedium, ArousalHigh:
		return nil
	}
	return goerr.New("unknown arousal", goerr.V("arousal", string(x)))
}
