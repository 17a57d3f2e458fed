// Package variation turns a dialogue into randomized surface variations.
//
// A dialogue is an original post plus an ordered list of labeled comments.
// [Generate] produces a requested number of independent [Result] values by
// running every non-blank text through [Compose], which applies the passes of
// package transform in a fixed order:
//
//	letters → words → caps → punctuation → typos → emojis
//
// Letter swaps run first and per word, so the euphemism pass sees text that
// may already contain look-alike characters. Emojis run last so inserted
// glyphs are never touched by another pass.
//
// # Intensities
//
// Each pass is driven by one percentage in [Intensities]. Values outside
// [0, 100] are clamped, and the variation count is clamped to
// [MinCount, MaxCount]. Nothing in this package rejects out-of-range numbers.
//
// # Randomness
//
// All randomness comes from the *rand.Rand passed by the caller. Two calls
// with equal seeds and inputs return equal results; callers wanting fresh
// output on every call seed from a random source. The tables are read-only,
// so concurrent calls with separate rand.Rand values need no coordination.
//
// # Errors
//
// The only error is NO_CONTENT, returned when the post and every comment are
// blank. Use [IsNoContent] to detect it.
package variation
