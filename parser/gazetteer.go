package parser

import (
	"sort"
	"strings"

	"github.com/neurlang/nlu/datasets/intents"
	"github.com/neurlang/nlu/tokenize"
)

type entityIndex struct {
	values     map[string]string
	maxLen     int
	extensible bool
}

// Gazetteer resolves slot values and finds entity values in sentences
type Gazetteer struct {
	language string
	names    []string
	entities map[string]*entityIndex
}

// Match is an entity value found over the word tokens [Start, End)
type Match struct {
	Entity     string
	Start, End int
	Value      Value
}

// NewGazetteer indexes the values and synonyms of the custom entities of a formatted dataset
func NewGazetteer(d *intents.Dataset) *Gazetteer {
	var g = &Gazetteer{
		language: d.Language,
		entities: make(map[string]*entityIndex, len(d.Entities)),
	}
	for name, e := range d.Entities {
		var idx = &entityIndex{
			values:     make(map[string]string),
			extensible: e.AutomaticallyExtensible,
		}
		add := func(text, canonical string) {
			key := tokenize.Key(text)
			if key == "" {
				return
			}
			if _, dup := idx.values[key]; !dup {
				idx.values[key] = canonical
			}
			if n := strings.Count(key, " ") + 1; n > idx.maxLen {
				idx.maxLen = n
			}
		}
		for _, v := range e.Data {
			add(v.Value, v.Value)
		}
		for _, v := range e.Data {
			for _, s := range v.Synonyms {
				add(s, v.Value)
			}
		}
		g.entities[name] = idx
		g.names = append(g.names, name)
	}
	sort.Strings(g.names)
	return g
}

// Language returns the language numbers are parsed in
func (g *Gazetteer) Language() string {
	return g.language
}

// Extensible reports whether the entity accepts values outside of its data
func (g *Gazetteer) Extensible(entity string) bool {
	idx, ok := g.entities[entity]
	return ok && idx.extensible
}

// Resolve resolves the raw value of a slot of the entity. Values of custom entities
// resolve to their canonical value, unknown values only when the entity is
// automatically extensible.
func (g *Gazetteer) Resolve(entity, raw string) (Value, bool) {
	if entity == intents.BuiltinNumber {
		n, ok := tokenize.ParseWholeNumber(tokenize.Normalized(tokenize.Words(raw)), g.language)
		if !ok {
			return Value{}, false
		}
		return Value{Kind: KindNumber, Value: float64(n)}, true
	}
	idx, ok := g.entities[entity]
	if !ok {
		return Value{}, false
	}
	if canonical, ok := idx.values[tokenize.Key(raw)]; ok {
		return Value{Kind: KindCustom, Value: canonical}, true
	}
	if idx.extensible && strings.TrimSpace(raw) != "" {
		return Value{Kind: KindCustom, Value: strings.TrimSpace(raw)}, true
	}
	return Value{}, false
}

// Find returns the leftmost longest non overlapping entity values in the normalized words.
// Equally long values of different entities go to the first entity name.
func (g *Gazetteer) Find(words []string) (matches []Match) {
	for i := 0; i < len(words); {
		var best Match
		for _, name := range g.names {
			idx := g.entities[name]
			for l := idx.maxLen; l > best.End-best.Start && l > 0; l-- {
				if i+l > len(words) {
					continue
				}
				if canonical, ok := idx.values[strings.Join(words[i:i+l], " ")]; ok {
					best = Match{Entity: name, Start: i, End: i + l, Value: Value{Kind: KindCustom, Value: canonical}}
					break
				}
			}
		}
		if n, consumed, ok := tokenize.ParseNumber(words[i:], g.language); ok && consumed > best.End-best.Start {
			best = Match{Entity: intents.BuiltinNumber, Start: i, End: i + consumed, Value: Value{Kind: KindNumber, Value: float64(n)}}
		}
		if best.End > best.Start {
			matches = append(matches, best)
			i = best.End
		} else {
			i++
		}
	}
	return
}
