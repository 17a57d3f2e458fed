package variation

import (
	"math/rand/v2"

	"github.com/matzehuels/textvary/pkg/variation/transform"
)

type pass struct {
	name  string
	level func(Intensities) int
	apply transform.Func
}

// passes is the fixed application order.
var passes = [...]pass{
	{"letters", func(in Intensities) int { return in.Letter }, transform.LettersText},
	{"words", func(in Intensities) int { return in.Word }, transform.Words},
	{"caps", func(in Intensities) int { return in.Caps }, transform.Caps},
	{"punctuation", func(in Intensities) int { return in.Punct }, transform.Punctuation},
	{"typos", func(in Intensities) int { return in.Typo }, transform.Typos},
	{"emojis", func(in Intensities) int { return in.Emoji }, transform.Emojis},
}

// PassOrder returns the pass names in the order [Compose] applies them.
func PassOrder() []string {
	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = p.name
	}
	return names
}

// Compose runs every pass over text in order. Blank text is returned as is.
func Compose(text string, in Intensities, rng *rand.Rand) string {
	if isBlank(text) {
		return text
	}
	in = in.Clamp()
	for _, p := range passes {
		text = p.apply(text, p.level(in), rng)
	}
	return text
}
