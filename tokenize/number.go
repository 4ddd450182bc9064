package tokenize

import (
	"strconv"
	"strings"
	"sync"

	"github.com/neurlang/NumToWordsGo/NumToWords"
)

// MaxSpelledNumber is the largest number recognized when spelled out in words
const MaxSpelledNumber = 1000

// MaxNumberWords is the longest span of tokens tried as a spelled number
const MaxNumberWords = 6

// NumberWords spells n in the language as normalized word tokens.
// It returns nil when the language is not supported.
func NumberWords(n int, language string) []string {
	sentence, err := NumToWords.Convert(n, language)
	if err != nil {
		return nil
	}
	return Normalized(Words(strings.ReplaceAll(sentence, "-", " ")))
}

type numberIndex struct {
	once  sync.Once
	words map[string]int
}

var numberIndexes sync.Map

func spelledNumbers(language string) map[string]int {
	v, _ := numberIndexes.LoadOrStore(language, &numberIndex{})
	idx := v.(*numberIndex)
	idx.once.Do(func() {
		idx.words = make(map[string]int)
		for n := MaxSpelledNumber; n >= 0; n-- {
			if words := NumberWords(n, language); len(words) > 0 {
				idx.words[strings.Join(words, " ")] = n
			}
		}
	})
	return idx.words
}

// ParseNumber reads a number at the beginning of the normalized tokens, either a
// run of digits or the longest spelled out number. It returns the value and the
// number of tokens consumed.
func ParseNumber(tokens []string, language string) (value int, consumed int, ok bool) {
	if len(tokens) == 0 {
		return 0, 0, false
	}
	if IsDigits(tokens[0]) {
		n, err := strconv.Atoi(tokens[0])
		if err != nil {
			return 0, 0, false
		}
		return n, 1, true
	}
	var words = spelledNumbers(language)
	for l := MaxNumberWords; l > 0; l-- {
		if l > len(tokens) {
			continue
		}
		if n, found := words[strings.Join(tokens[:l], " ")]; found {
			return n, l, true
		}
	}
	return 0, 0, false
}

// ParseWholeNumber reads tokens as exactly one number
func ParseWholeNumber(tokens []string, language string) (int, bool) {
	n, consumed, ok := ParseNumber(tokens, language)
	if !ok || consumed != len(tokens) {
		return 0, false
	}
	return n, true
}
