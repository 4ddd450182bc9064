// Package parser extracts the intent and slots of a sentence.
//
// The Deterministic parser matches sentences against the patterns of the training
// utterances; the Probabilistic parser classifies sentences with voting networks.
// Both return results in the JSON shape of the Snips NLU parse API.
package parser

const (
	// KindCustom is the value kind of custom entities
	KindCustom = "Custom"
	// KindNumber is the value kind of snips/number
	KindNumber = "Number"
)

// Range is the character range of a slot in the input, counted in runes
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Value is the resolved value of a slot
type Value struct {
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

// Slot is one extracted slot
type Slot struct {
	Range    Range  `json:"range"`
	RawValue string `json:"rawValue"`
	Value    Value  `json:"value"`
	Entity   string `json:"entity"`
	SlotName string `json:"slotName"`
}

// IntentResult is the classified intent with its probability
type IntentResult struct {
	IntentName  string  `json:"intentName"`
	Probability float64 `json:"probability"`
}

// Result is the parse of one input. Intent is nil when no intent was recognized.
type Result struct {
	Input  string        `json:"input"`
	Intent *IntentResult `json:"intent"`
	Slots  []Slot        `json:"slots"`
}

// Empty returns the result of an input with no recognized intent
func Empty(input string) Result {
	return Result{Input: input, Slots: []Slot{}}
}

// allowed builds the intent filter of a parse, nil allows every intent
func allowed(intents []string) map[string]bool {
	if len(intents) == 0 {
		return nil
	}
	var m = make(map[string]bool, len(intents))
	for _, name := range intents {
		m[name] = true
	}
	return m
}
