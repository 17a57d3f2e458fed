package transform

import (
	"math/rand/v2"
	"strings"

	"github.com/matzehuels/textvary/pkg/variation/tables"
)

// punctuationChance is the draw a present mark must exceed to be rewritten.
const punctuationChance = 0.7

// Punctuation rewrites each tracked mark (! ? . ,) present in text with
// roughly 30% probability. A rewritten mark has every occurrence replaced by
// the same run. Marks are visited in table order and later marks see the
// edits of earlier ones.
func Punctuation(text string, intensity int, rng *rand.Rand) string {
	if !Decide(intensity, rng) {
		return text
	}
	for _, p := range tables.Punctuation {
		if !strings.Contains(text, p.Mark) || rng.Float64() <= punctuationChance {
			continue
		}
		text = strings.ReplaceAll(text, p.Mark, p.Runs[rng.IntN(len(p.Runs))])
	}
	return text
}
