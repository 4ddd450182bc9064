// Package intents implements the intent and slot dataset, in the JSON format of
// the Snips NLU training API, plus generation of it from YAML sources.
//
// A dataset lists intents, each with utterances made of text chunks. A chunk that
// carries an entity and a slot name marks a slot value. Entities are either custom
// (declared under "entities" with values and synonyms) or builtin ("snips/number").
package intents
