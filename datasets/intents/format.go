package intents

import "github.com/neurlang/nlu/tokenize"

// Format validates the dataset and returns a copy ready for training: slot values
// seen in utterances become values of their custom entity, and synonyms are dropped
// from entities which don't use them.
func (d *Dataset) Format() (*Dataset, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var out = &Dataset{
		Language: d.Language,
		Intents:  make(map[string]Intent, len(d.Intents)),
		Entities: make(map[string]Entity, len(d.Entities)),
	}
	var known = make(map[string]map[string]struct{})
	for name, e := range d.Entities {
		var fe = e
		fe.Data = nil
		known[name] = make(map[string]struct{})
		for _, v := range e.Data {
			var fv = EntityValue{Value: v.Value}
			if e.UseSynonyms {
				fv.Synonyms = append([]string(nil), v.Synonyms...)
			}
			known[name][tokenize.Key(fv.Value)] = struct{}{}
			for _, s := range fv.Synonyms {
				known[name][tokenize.Key(s)] = struct{}{}
			}
			fe.Data = append(fe.Data, fv)
		}
		if fe.MatchingStrictness == 0 {
			fe.MatchingStrictness = 1
		}
		out.Entities[name] = fe
	}
	for _, name := range d.IntentNames() {
		var intent Intent
		for _, u := range d.Intents[name].Utterances {
			var fu = Utterance{Data: append([]Chunk(nil), u.Data...)}
			intent.Utterances = append(intent.Utterances, fu)
			for _, c := range u.Data {
				if !c.IsSlot() || IsBuiltin(c.Entity) {
					continue
				}
				key := tokenize.Key(c.Text)
				if _, ok := known[c.Entity][key]; ok {
					continue
				}
				known[c.Entity][key] = struct{}{}
				e := out.Entities[c.Entity]
				e.Data = append(e.Data, EntityValue{Value: c.Text})
				out.Entities[c.Entity] = e
			}
		}
		out.Intents[name] = intent
	}
	return out, nil
}
