// Package tokenize splits utterances into normalized tokens with byte ranges.
package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is one word or punctuation mark of the input
type Token struct {
	Value      string
	Normalized string
	Start, End int // byte range into the input
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\''
}

// Tokenize splits s into word tokens (runs of letters and digits) and single
// punctuation tokens. Whitespace is dropped.
func Tokenize(s string) (tokens []Token) {
	var start = -1
	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, newToken(s, start, end))
			start = -1
		}
	}
	for i, r := range s {
		switch {
		case isWordRune(r):
			if start < 0 {
				start = i
			}
		case unicode.IsSpace(r):
			flush(i)
		default:
			flush(i)
			tokens = append(tokens, newToken(s, i, i+utf8.RuneLen(r)))
		}
	}
	flush(len(s))
	return
}

func newToken(s string, start, end int) Token {
	v := s[start:end]
	return Token{
		Value:      v,
		Normalized: Normalize(v),
		Start:      start,
		End:        end,
	}
}

// Normalize lower-cases s and trims surrounding apostrophes
func Normalize(s string) string {
	s = strings.ToLower(s)
	if t := strings.Trim(s, "'"); t != "" {
		return t
	}
	return s
}

// Normalized returns the normalized values of tokens
func Normalized(tokens []Token) []string {
	var out = make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Normalized
	}
	return out
}

// IsWord reports whether the token is a word rather than punctuation
func (t Token) IsWord() bool {
	r, _ := utf8.DecodeRuneInString(t.Value)
	return isWordRune(r)
}

// Words tokenizes s and keeps the word tokens only
func Words(s string) (words []Token) {
	for _, t := range Tokenize(s) {
		if t.IsWord() {
			words = append(words, t)
		}
	}
	return
}

// Key returns the normalized, space separated words of s, used to compare entity values.
func Key(s string) string {
	return strings.Join(Normalized(Words(s)), " ")
}

// IsDigits reports whether s is a non-empty run of ASCII digits
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
