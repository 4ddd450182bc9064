package parser

import (
	"github.com/neurlang/nlu/datasets/intents"
	"github.com/neurlang/nlu/net/voting"
)

// IntentSamples returns one sample per utterance, labeled by the position of its
// intent in names plus one.
func IntentSamples(d *intents.Dataset, g *Gazetteer, names []string) (samples []voting.Sample) {
	for i, name := range names {
		for _, u := range d.Intents[name].Utterances {
			s := newSentence(g, u.Text())
			if len(s.words) == 0 {
				continue
			}
			samples = append(samples, voting.Sample{Features: s.intentFeatures(), Label: uint16(i + 1)})
		}
	}
	return
}

// SlotSamples returns one sample per word of every utterance of the intent, labeled
// by the position of its slot in slotNames plus one, or zero outside of slots.
func SlotSamples(d *intents.Dataset, g *Gazetteer, intent string, slotNames []string) (samples []voting.Sample) {
	var index = make(map[string]uint16, len(slotNames))
	for i, name := range slotNames {
		index[name] = uint16(i + 1)
	}
	for _, u := range d.Intents[intent].Utterances {
		type span struct {
			start, end int
			label      uint16
		}
		var spans []span
		var offset int
		for _, c := range u.Data {
			if c.IsSlot() {
				spans = append(spans, span{offset, offset + len(c.Text), index[c.SlotName]})
			}
			offset += len(c.Text)
		}
		s := newSentence(g, u.Text())
		for i, w := range s.words {
			var label uint16
			for _, sp := range spans {
				if w.Start >= sp.start && w.End <= sp.end {
					label = sp.label
				}
			}
			samples = append(samples, voting.Sample{Features: s.slotFeatures(i), Label: label})
		}
	}
	return
}
