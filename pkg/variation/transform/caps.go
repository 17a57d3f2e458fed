package transform

import (
	"math/rand/v2"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	capsUpper = iota
	capsFirst
	capsOne
	capsLower
)

// Caps changes the capitalization of a single randomly chosen word: all
// upper case, first letter upper case, one random letter upper case, or all
// lower case. Words shorter than two characters are left alone.
func Caps(text string, intensity int, rng *rand.Rand) string {
	if !Decide(intensity, rng) {
		return text
	}
	words := strings.Split(text, " ")
	i := rng.IntN(len(words))
	runes := []rune(words[i])
	if len(runes) < 2 {
		return text
	}

	switch rng.IntN(4) {
	case capsUpper:
		words[i] = cases.Upper(language.Und).String(words[i])
	case capsFirst:
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	case capsOne:
		j := rng.IntN(len(runes))
		runes[j] = unicode.ToUpper(runes[j])
		words[i] = string(runes)
	case capsLower:
		words[i] = cases.Lower(language.Und).String(words[i])
	}
	return strings.Join(words, " ")
}
