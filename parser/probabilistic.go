package parser

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/neurlang/nlu/net/voting"
)

// DefaultMinProbability is the least share of votes the best intent needs for Parse to
// return it
const DefaultMinProbability = 0.2

// Probabilistic classifies the intent of a sentence by the votes of its words, then
// tags its words with the slots of the intent.
type Probabilistic struct {
	gazetteer   *Gazetteer
	intents     []string
	slotNames   [][]string
	entities    []map[string]string
	classifier  *voting.Network
	fillers     []*voting.Network
	maxSlotSpan int
	minProb     float64
}

// NewProbabilistic assembles trained networks. The classifier labels intent i as i+1;
// fillers[i] labels slot j of intent i as j+1 and is nil for intents without slots.
func NewProbabilistic(g *Gazetteer, intents []string, slotNames [][]string, entities []map[string]string,
	classifier *voting.Network, fillers []*voting.Network, maxSlotSpan int, minProbability float64) (*Probabilistic, error) {
	if len(slotNames) != len(intents) || len(entities) != len(intents) || len(fillers) != len(intents) {
		return nil, errors.New("slot names, entities and fillers must be given for every intent")
	}
	if classifier == nil || int(classifier.Labels()) != len(intents)+1 {
		return nil, errors.Errorf("intent classifier must have %d labels", len(intents)+1)
	}
	for i, f := range fillers {
		if f != nil && int(f.Labels()) != len(slotNames[i])+1 {
			return nil, errors.Errorf("slot filler of %s must have %d labels", intents[i], len(slotNames[i])+1)
		}
	}
	if maxSlotSpan <= 0 {
		maxSlotSpan = DefaultMaxSlotSpan
	}
	if minProbability <= 0 {
		minProbability = DefaultMinProbability
	}
	return &Probabilistic{
		gazetteer:   g,
		intents:     intents,
		slotNames:   slotNames,
		entities:    entities,
		classifier:  classifier,
		fillers:     fillers,
		maxSlotSpan: maxSlotSpan,
		minProb:     minProbability,
	}, nil
}

// GetIntents returns the probability of every allowed intent, most probable first,
// ties by name. The probability of an intent is the share of the features of the
// input that voted for it, so the probabilities sum to at most one and features
// unseen in training count against every intent.
func (p *Probabilistic) GetIntents(input string, intents ...string) []IntentResult {
	return p.classify(newSentence(p.gazetteer, input), allowed(intents))
}

func (p *Probabilistic) classify(s *sentence, allow map[string]bool) []IntentResult {
	var features = s.intentFeatures()
	var votes = p.classifier.Infer(features)
	var out []IntentResult
	for i, name := range p.intents {
		if allow != nil && !allow[name] {
			continue
		}
		var prob float64
		if len(features) > 0 {
			prob = float64(votes[i+1]) / float64(len(features))
		}
		out = append(out, IntentResult{IntentName: name, Probability: prob})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Probability != out[j].Probability {
			return out[i].Probability > out[j].Probability
		}
		return out[i].IntentName < out[j].IntentName
	})
	return out
}

// Parse classifies the input among the allowed intents and extracts its slots.
// The intent is nil when the best intent has less than the minimum probability.
func (p *Probabilistic) Parse(input string, intents ...string) Result {
	var s = newSentence(p.gazetteer, input)
	var ranked = p.classify(s, allowed(intents))
	if len(ranked) == 0 || ranked[0].Probability < p.minProb {
		return Empty(input)
	}
	var best = ranked[0]
	return Result{
		Input:  input,
		Intent: &best,
		Slots:  p.slots(s, p.index(best.IntentName)),
	}
}

// GetSlots extracts the slots of the input, assuming it is of the intent
func (p *Probabilistic) GetSlots(input string, intent string) ([]Slot, error) {
	i := p.index(intent)
	if i < 0 {
		return nil, errors.Errorf("unknown intent %q", intent)
	}
	return p.slots(newSentence(p.gazetteer, input), i), nil
}

func (p *Probabilistic) index(intent string) int {
	for i, name := range p.intents {
		if name == intent {
			return i
		}
	}
	return -1
}

// slots tags every word, joins adjacent words of the same slot and keeps the spans
// whose value resolves.
func (p *Probabilistic) slots(s *sentence, intent int) []Slot {
	var out = []Slot{}
	var filler = p.fillers[intent]
	if filler == nil {
		return out
	}
	var labels = make([]uint16, len(s.words))
	for i := range s.words {
		labels[i], _ = filler.Infer(s.slotFeatures(i)).Best(0)
	}
	for i := 0; i < len(labels); {
		label := labels[i]
		end := i + 1
		for end < len(labels) && labels[end] == label && end-i < p.maxSlotSpan {
			end++
		}
		if label > 0 && int(label) <= len(p.slotNames[intent]) {
			name := p.slotNames[intent][label-1]
			entity := p.entities[intent][name]
			raw, rng := s.raw(i, end)
			if value, ok := p.gazetteer.Resolve(entity, raw); ok {
				out = append(out, Slot{Range: rng, RawValue: raw, Value: value, Entity: entity, SlotName: name})
			}
		}
		i = end
	}
	return out
}
