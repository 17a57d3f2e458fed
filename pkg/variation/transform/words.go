package transform

import (
	"math/rand/v2"
	"regexp"

	"github.com/matzehuels/textvary/pkg/variation/tables"
)

type wordRule struct {
	pattern *regexp.Regexp
	entry   tables.WordEntry
}

// wordRules holds one compiled whole-word, case-insensitive pattern per table
// entry, in table order.
var wordRules = compileWordRules(tables.Words)

func compileWordRules(entries []tables.WordEntry) []wordRule {
	rules := make([]wordRule, len(entries))
	for i, e := range entries {
		rules[i] = wordRule{
			pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(e.Key) + `\b`),
			entry:   e,
		}
	}
	return rules
}

// Words swaps table words for euphemisms.
//
// Two independent draws against the same intensity must both pass before a
// key is replaced: one gate for the whole call and one per matching key. The
// effective rate is therefore below the configured percentage. All matches of
// a key receive the same replacement within a call.
func Words(text string, intensity int, rng *rand.Rand) string {
	if !Decide(intensity, rng) {
		return text
	}
	for _, rule := range wordRules {
		if !rule.pattern.MatchString(text) {
			continue
		}
		if !Decide(intensity, rng) {
			continue
		}
		repl := rule.entry.Replacements[rng.IntN(len(rule.entry.Replacements))]
		text = rule.pattern.ReplaceAllLiteralString(text, repl)
	}
	return text
}
