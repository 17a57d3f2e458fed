package transform

import (
	"math/rand/v2"
	"slices"
	"strings"
	"unicode"

	"github.com/matzehuels/textvary/pkg/variation/tables"
)

// Letters replaces one or two randomly chosen characters of word with
// look-alike characters. The gate is drawn once per word, and candidates come
// only from the subtle head of each letter's table entry. Characters without a
// table entry stay as they are, so the rune length never changes.
func Letters(word string, intensity int, rng *rand.Rand) string {
	if !Decide(intensity, rng) {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}

	n := min(rng.IntN(2)+1, len(runes))
	positions := make([]int, 0, n)
	for len(positions) < n {
		pos := rng.IntN(len(runes))
		if !slices.Contains(positions, pos) {
			positions = append(positions, pos)
		}
	}

	for _, pos := range positions {
		candidates, ok := tables.Letters[unicode.ToLower(runes[pos])]
		if !ok {
			continue
		}
		runes[pos] = candidates[rng.IntN(min(tables.SubtleCandidates, len(candidates)))]
	}
	return string(runes)
}

// LettersText splits text on single spaces and runs [Letters] on each word.
func LettersText(text string, intensity int, rng *rand.Rand) string {
	words := strings.Split(text, " ")
	for i, w := range words {
		words[i] = Letters(w, intensity, rng)
	}
	return strings.Join(words, " ")
}
