package parser

import (
	"sort"
	"strings"

	"github.com/neurlang/nlu/datasets/intents"
	"github.com/neurlang/nlu/tokenize"
)

// DefaultMaxSlotSpan is the default number of words a slot value may span
const DefaultMaxSlotSpan = 8

// element is a literal word, or a slot placeholder when slot is set
type element struct {
	word   string
	slot   string
	entity string
}

type pattern struct {
	intent   string
	elements []element
	literals int
	key      string
}

// Deterministic parses sentences that follow a training utterance word for word,
// with any resolvable value in place of its slots.
type Deterministic struct {
	gazetteer   *Gazetteer
	patterns    []pattern
	maxSlotSpan int
}

// NewDeterministic builds the patterns of all utterances of a formatted dataset.
// Patterns with more literal words are tried first, ties go by intent name.
// Utterances without literal words and with a slot of an automatically extensible
// entity would match any short input, they are left to the probabilistic parser.
func NewDeterministic(d *intents.Dataset, g *Gazetteer, maxSlotSpan int) *Deterministic {
	if maxSlotSpan <= 0 {
		maxSlotSpan = DefaultMaxSlotSpan
	}
	var p = &Deterministic{gazetteer: g, maxSlotSpan: maxSlotSpan}
	var seen = make(map[string]bool)
	for _, name := range d.IntentNames() {
		for _, u := range d.Intents[name].Utterances {
			var pat = pattern{intent: name}
			var keys []string
			var open bool
			for _, c := range u.Data {
				if c.IsSlot() {
					open = open || g.Extensible(c.Entity)
					pat.elements = append(pat.elements, element{slot: c.SlotName, entity: c.Entity})
					keys = append(keys, "["+c.SlotName+"]")
					continue
				}
				for _, w := range tokenize.Words(c.Text) {
					pat.elements = append(pat.elements, element{word: w.Normalized})
					pat.literals++
					keys = append(keys, w.Normalized)
				}
			}
			if len(pat.elements) == 0 || (pat.literals == 0 && open) {
				continue
			}
			pat.key = strings.Join(keys, " ")
			if seen[name+"\x00"+pat.key] {
				continue
			}
			seen[name+"\x00"+pat.key] = true
			p.patterns = append(p.patterns, pat)
		}
	}
	sort.SliceStable(p.patterns, func(i, j int) bool {
		a, b := p.patterns[i], p.patterns[j]
		if a.literals != b.literals {
			return a.literals > b.literals
		}
		if a.intent != b.intent {
			return a.intent < b.intent
		}
		return a.key < b.key
	})
	return p
}

// Len returns the number of patterns
func (p *Deterministic) Len() int {
	return len(p.patterns)
}

// Parse matches the input against the patterns of the allowed intents, all when
// none are given. ok is false when no pattern matches the whole input.
func (p *Deterministic) Parse(input string, intents ...string) (result Result, ok bool) {
	var allow = allowed(intents)
	var s = newSentence(p.gazetteer, input)
	if len(s.words) == 0 {
		return Empty(input), false
	}
	for _, pat := range p.patterns {
		if allow != nil && !allow[pat.intent] {
			continue
		}
		if slots, ok := p.match(s, pat.elements, 0, nil); ok {
			return Result{
				Input:  input,
				Intent: &IntentResult{IntentName: pat.intent, Probability: 1},
				Slots:  slots,
			}, true
		}
	}
	return Empty(input), false
}

// match matches elements against the words from position i on
func (p *Deterministic) match(s *sentence, elements []element, i int, slots []Slot) ([]Slot, bool) {
	if len(elements) == 0 {
		if i == len(s.words) {
			return append([]Slot{}, slots...), true
		}
		return nil, false
	}
	var e = elements[0]
	if e.slot == "" {
		if i < len(s.norm) && s.norm[i] == e.word {
			return p.match(s, elements[1:], i+1, slots)
		}
		return nil, false
	}
	for end := i + 1; end <= len(s.words) && end-i <= p.maxSlotSpan; end++ {
		raw, rng := s.raw(i, end)
		value, ok := p.gazetteer.Resolve(e.entity, raw)
		if !ok {
			continue
		}
		slot := Slot{Range: rng, RawValue: raw, Value: value, Entity: e.entity, SlotName: e.slot}
		if out, ok := p.match(s, elements[1:], end, append(slots[:len(slots):len(slots)], slot)); ok {
			return out, true
		}
	}
	return nil, false
}
