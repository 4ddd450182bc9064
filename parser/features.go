package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/neurlang/nlu/tokenize"
)

const (
	sentenceStart = "<s>"
	sentenceEnd   = "</s>"
)

// sentence is a tokenized input with its gazetteer matches
type sentence struct {
	input    string
	words    []tokenize.Token
	norm     []string
	matches  []Match
	entityAt []string
}

func newSentence(g *Gazetteer, input string) *sentence {
	var s = &sentence{input: input, words: tokenize.Words(input)}
	s.norm = tokenize.Normalized(s.words)
	s.matches = g.Find(s.norm)
	s.entityAt = make([]string, len(s.words))
	for _, m := range s.matches {
		for i := m.Start; i < m.End; i++ {
			s.entityAt[i] = m.Entity
		}
	}
	return s
}

// raw returns the input text and character range of the words [from, to)
func (s *sentence) raw(from, to int) (string, Range) {
	start, end := s.words[from].Start, s.words[to-1].End
	r := Range{
		Start: utf8.RuneCountInString(s.input[:start]),
		End:   utf8.RuneCountInString(s.input[:end]),
	}
	return s.input[start:end], r
}

// intentFeatures are unigrams, bigrams and the entities found in the sentence
func (s *sentence) intentFeatures() (features []string) {
	for i, w := range s.norm {
		features = append(features, "u:"+w)
		if i > 0 {
			features = append(features, "b:"+s.norm[i-1]+"_"+w)
		}
	}
	for _, m := range s.matches {
		features = append(features, "e:"+m.Entity)
	}
	return
}

// slotFeatures describe the word i within its context
func (s *sentence) slotFeatures(i int) []string {
	var prev, next = sentenceStart, sentenceEnd
	if i > 0 {
		prev = s.norm[i-1]
	}
	if i+1 < len(s.norm) {
		next = s.norm[i+1]
	}
	var w = s.norm[i]
	var features = []string{
		"w:" + w,
		"p:" + prev,
		"n:" + next,
		"pw:" + prev + "_" + w,
		"wn:" + w + "_" + next,
		"s:" + shape(s.words[i].Value),
	}
	if e := s.entityAt[i]; e != "" {
		features = append(features, "e:"+e, "ep:"+e+"_"+prev)
	}
	return features
}

// shape abstracts the casing and digits of a word
func shape(word string) string {
	var upper, lower, digit bool
	var first rune
	for i, r := range word {
		if i == 0 {
			first = r
		}
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	switch {
	case digit && !upper && !lower:
		return "0"
	case digit:
		return "x0"
	case upper && !lower:
		return "XX"
	case upper && unicode.IsUpper(first):
		return "Xx"
	case upper:
		return "xX"
	}
	return "x"
}
