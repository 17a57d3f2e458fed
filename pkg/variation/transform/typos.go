package transform

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/textvary/pkg/variation/tables"
)

type typoEdit int

const (
	typoNone typoEdit = iota
	typoPattern
	typoDouble
)

// Typos injects at most one typo: a transposition from the pattern table
// replacing the first occurrence of its search string, or, when that does
// not apply, a doubled letter inside one word at half the base rate.
func Typos(text string, intensity int, rng *rand.Rand) string {
	out, _ := typo(text, intensity, rng)
	return out
}

func typo(text string, intensity int, rng *rand.Rand) (string, typoEdit) {
	if !Decide(intensity, rng) {
		return text, typoNone
	}

	p := tables.Typos[rng.IntN(len(tables.Typos))]
	if strings.Contains(text, p.Search) && Decide(intensity, rng) {
		return strings.Replace(text, p.Search, p.Replace, 1), typoPattern
	}

	if !chance(float64(clampLevel(intensity))/200, rng) {
		return text, typoNone
	}
	words := strings.Split(text, " ")
	var eligible []int
	for i, w := range words {
		if utf8.RuneCountInString(w) > 2 {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return text, typoNone
	}

	idx := eligible[rng.IntN(len(eligible))]
	runes := []rune(words[idx])
	pos := rng.IntN(len(runes) - 1)
	words[idx] = string(runes[:pos+1]) + string(runes[pos:])
	return strings.Join(words, " "), typoDouble
}
