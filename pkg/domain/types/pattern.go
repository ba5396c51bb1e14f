package types

import "github.com/m-mizutani/goerr/v2"

// PatternID identifies a cognitive pattern in the catalog
type PatternID string

const (
	PatternAllOrNothing        PatternID = "all_or_nothing"
	PatternOvergeneralization  PatternID = "overgeneralization"
	PatternMentalFilter        PatternID = "mental_filter"
	PatternDiscountingPositive PatternID = "discounting_positive"
	PatternInferenceJump       PatternID = "inference_jump"
	PatternMindReading         PatternID = "mind_reading"
	PatternFortuneTelling      PatternID = "fortune_telling"
	PatternCatastrophizing     PatternID = "catastrophizing"
	PatternEmotionalReasoning  PatternID = "emotional_reasoning"
	PatternShouldStatements    PatternID = "should_statements"
	PatternLabeling            PatternID = "labeling"
	PatternPersonalization     PatternID = "personalization"
)

// Pattern is a catalog entry
type Pattern struct {
	ID    PatternID
	Label string
	Hint  string
}

var patternCatalog = []Pattern{
	{ID: PatternAllOrNothing, Label: "All-or-nothing thinking", Hint: "seeing things in black and white categories"},
	{ID: PatternOvergeneralization, Label: "Overgeneralization", Hint: "one event read as a never-ending pattern"},
	{ID: PatternMentalFilter, Label: "Mental filter", Hint: "dwelling on a single negative detail"},
	{ID: PatternDiscountingPositive, Label: "Discounting the positive", Hint: "positive experiences treated as not counting"},
	{ID: PatternInferenceJump, Label: "Inference jump", Hint: "reaching a conclusion without supporting facts"},
	{ID: PatternMindReading, Label: "Mind reading", Hint: "assuming what others think without checking"},
	{ID: PatternFortuneTelling, Label: "Fortune telling", Hint: "predicting that things will turn out badly"},
	{ID: PatternCatastrophizing, Label: "Catastrophizing", Hint: "magnifying the importance of a setback"},
	{ID: PatternEmotionalReasoning, Label: "Emotional reasoning", Hint: "treating a feeling as evidence of a fact"},
	{ID: PatternShouldStatements, Label: "Should statements", Hint: "rigid rules about how things must be"},
	{ID: PatternLabeling, Label: "Labeling", Hint: "attaching a global label to self or others"},
	{ID: PatternPersonalization, Label: "Personalization", Hint: "taking responsibility for things outside one's control"},
}

// Patterns returns a copy of the twelve-entry catalog
func Patterns() []Pattern {
	out := make([]Pattern, len(patternCatalog))
	copy(out, patternCatalog)
	return out
}

func (x PatternID) String() string {
	return string(x)
}

// Lookup returns the catalog entry for the ID
func (x PatternID) Lookup() (Pattern, bool) {
	for _, p := range patternCatalog {
		if p.ID == x {
			return p, true
		}
	}
	return Pattern{}, false
}

// Validate checks that the ID is in the catalog
func (x PatternID) Validate() error {
	if _, ok := x.Lookup(); !ok {
		return goerr.New("unknown cognitive pattern", goerr.V("pattern_id", string(x)))
	}
	return nil
}
