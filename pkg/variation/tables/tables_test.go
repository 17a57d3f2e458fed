package tables

import (
	"strings"
	"testing"
)

func TestLettersHaveSubtleCandidates(t *testing.T) {
	for r, candidates := range Letters {
		if len(candidates) < SubtleCandidates {
			t.Errorf("letter %q has %d candidates, want at least %d", r, len(candidates), SubtleCandidates)
		}
	}
	if len(Letters) != 26 {
		t.Errorf("len(Letters) = %d, want 26", len(Letters))
	}
}

func TestWordKeysAreLowercaseAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, w := range Words {
		if w.Key != strings.ToLower(w.Key) {
			t.Errorf("key %q is not lowercase", w.Key)
		}
		if seen[w.Key] {
			t.Errorf("duplicate key %q", w.Key)
		}
		seen[w.Key] = true
		if len(w.Replacements) == 0 {
			t.Errorf("key %q has no replacements", w.Key)
		}
	}
}

func TestPunctuationOrder(t *testing.T) {
	want := []string{"!", "?", ".", ","}
	if len(Punctuation) != len(want) {
		t.Fatalf("len(Punctuation) = %d, want %d", len(Punctuation), len(want))
	}
	for i, p := range Punctuation {
		if p.Mark != want[i] {
			t.Errorf("Punctuation[%d].Mark = %q, want %q", i, p.Mark, want[i])
		}
	}
}

func TestIsEmoji(t *testing.T) {
	if !IsEmoji("🚀") {
		t.Error("IsEmoji(🚀) = false, want true")
	}
	if IsEmoji("a") {
		t.Error("IsEmoji(a) = true, want false")
	}
}

func TestSummary(t *testing.T) {
	s := Summary()
	if s.Emojis != 30 || s.Typos != 12 || s.Punctuation != 4 || s.Words != 20 {
		t.Errorf("Summary() = %+v", s)
	}
}
