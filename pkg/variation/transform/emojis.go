package transform

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/matzehuels/textvary/pkg/variation/tables"
)

// Placement thresholds for the emoji run.
const (
	appendBelow  = 0.7
	prependBelow = 0.9
)

// MaxEmojis returns ceil(intensity/33), the largest run Emojis can insert.
func MaxEmojis(intensity int) int {
	return (clampLevel(intensity) + 32) / 33
}

// Emojis inserts a run of up to [MaxEmojis] glyphs drawn with replacement
// from the pool. The run is usually appended, sometimes prepended, and
// occasionally placed between two interior words of texts longer than three
// words.
func Emojis(text string, intensity int, rng *rand.Rand) string {
	if !Decide(intensity, rng) {
		return text
	}
	n := rng.IntN(MaxEmojis(intensity) + 1)
	if n == 0 {
		return text
	}

	var run strings.Builder
	for range n {
		run.WriteString(tables.Emojis[rng.IntN(len(tables.Emojis))])
	}
	glyphs := run.String()

	switch p := rng.Float64(); {
	case p < appendBelow:
		return text + " " + glyphs
	case p < prependBelow:
		return glyphs + " " + text
	}

	words := strings.Split(text, " ")
	if len(words) <= 3 {
		return text + " " + glyphs
	}
	pos := rng.IntN(len(words)-2) + 1
	return strings.Join(slices.Insert(words, pos, glyphs), " ")
}
