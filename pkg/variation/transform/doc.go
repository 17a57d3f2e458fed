// Package transform implements the six surface-level text passes.
//
// Every pass has the shape of [Func]: it takes a text, an intensity
// percentage in [0, 100] and a caller-owned random source, and returns the
// transformed text. Passes never fail. A table miss, a text too short for the
// pass, or a failed intensity gate all return the input unchanged.
//
// # Passes
//
//   - [Letters]: swaps one or two characters of a word for look-alikes
//   - [LettersText]: applies [Letters] to every space-separated word
//   - [Words]: replaces whole-word matches with euphemisms
//   - [Caps]: changes the capitalization of one word
//   - [Punctuation]: stretches or trims punctuation runs
//   - [Typos]: injects a single transposition or doubled letter
//   - [Emojis]: adds a short run of emoji glyphs
//
// # Randomness
//
// Passes draw exclusively from the *rand.Rand they are given. A rand.Rand is
// not safe for concurrent use, so each goroutine must bring its own. With the
// same seed and input a pass always produces the same output.
package transform
