package variation

import (
	"math/rand/v2"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/textvary/pkg/variation/tables"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func TestPassOrder(t *testing.T) {
	want := []string{"letters", "words", "caps", "punctuation", "typos", "emojis"}
	require.Equal(t, want, PassOrder())
}

func TestComposeZeroIntensities(t *testing.T) {
	texts := []string{
		"Hello world",
		"Free money! Deposit now, win big?",
		"  leading and trailing  ",
		"Ünïcödé text with аpple",
	}
	for _, text := range texts {
		for seed := range uint64(50) {
			require.Equal(t, text, Compose(text, Intensities{}, newRNG(seed)))
		}
	}
}

func TestComposeBlankPassthrough(t *testing.T) {
	full := Intensities{Letter: 100, Word: 100, Emoji: 100, Typo: 100, Caps: 100, Punct: 100}
	for _, text := range []string{"", "   ", "\n\t"} {
		require.Equal(t, text, Compose(text, full, newRNG(1)))
	}
}

func TestComposeClampsIntensities(t *testing.T) {
	text := "The casino bonus is free money, you bet!"
	over := Intensities{Letter: 500, Word: 500, Emoji: 500, Typo: 500, Caps: 500, Punct: 500}
	full := Intensities{Letter: 100, Word: 100, Emoji: 100, Typo: 100, Caps: 100, Punct: 100}
	for seed := range uint64(30) {
		require.Equal(t, Compose(text, full, newRNG(seed)), Compose(text, over, newRNG(seed)))
	}

	under := Intensities{Letter: -1, Word: -20, Emoji: -3, Typo: -4, Caps: -5, Punct: -100}
	require.Equal(t, text, Compose(text, under, newRNG(3)))
}

func TestComposeEmojiOnlyAddsPoolGlyphs(t *testing.T) {
	text := "short text"
	in := Intensities{Emoji: 100}
	for seed := range uint64(100) {
		got := Compose(text, in, newRNG(seed))
		if got == text {
			continue
		}
		extra := strings.TrimSpace(strings.Replace(got, text, "", 1))
		require.NotEmpty(t, extra)
		for _, r := range extra {
			require.True(t, tables.IsEmoji(string(r)))
		}
	}
}

func TestComposeLetterOnlyPreservesLength(t *testing.T) {
	text := "Every single word here gets a chance"
	for seed := range uint64(100) {
		got := Compose(text, Intensities{Letter: 100}, newRNG(seed))
		require.Equal(t, utf8.RuneCountInString(text), utf8.RuneCountInString(got))
		require.Equal(t, strings.Count(text, " "), strings.Count(got, " "))
	}
}

func TestGenerateNoContent(t *testing.T) {
	_, err := Generate("", nil, 5, DefaultIntensities(), newRNG(1))
	require.Error(t, err)
	require.True(t, IsNoContent(err))

	comments := []Comment{{ID: 1, Role: RolePoster, Text: "   "}, {ID: 2, Role: RoleResponder, Text: "\n"}}
	_, err = Generate(" \t ", comments, 5, DefaultIntensities(), newRNG(1))
	require.True(t, IsNoContent(err))
}

func TestGenerateFiltersBlankComments(t *testing.T) {
	comments := []Comment{{ID: 1, Role: RolePoster, Text: ""}}
	results, err := Generate("Hello world", comments, 3, Intensities{}, newRNG(1))
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		require.Equal(t, "Hello world", r.Post)
		require.Empty(t, r.Comments)
	}
}

func TestGenerateCount(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{1, 1},
		{5, 5},
		{50, 50},
		{0, 1},
		{-3, 1},
		{51, 50},
		{1000, 50},
	}
	for _, tt := range tests {
		results, err := Generate("Hi there", nil, tt.count, DefaultIntensities(), newRNG(9))
		require.NoError(t, err)
		require.Len(t, results, tt.want, "count %d", tt.count)
	}
}

func TestGeneratePreservesCommentOrderAndRoles(t *testing.T) {
	comments := []Comment{
		{ID: 1, Role: RolePoster, Text: "first"},
		{ID: 2, Role: RoleResponder, Text: ""},
		{ID: 3, Role: RoleResponder, Text: "third"},
		{ID: 4, Role: RolePoster, Text: "fourth one"},
	}
	results, err := Generate("", comments, 4, DefaultIntensities(), newRNG(5))
	require.NoError(t, err)
	for _, r := range results {
		require.Equal(t, "", r.Post)
		require.Len(t, r.Comments, 3)
		require.Equal(t, []int{1, 3, 4}, []int{r.Comments[0].ID, r.Comments[1].ID, r.Comments[2].ID})
		require.Equal(t, RolePoster, r.Comments[0].Role)
		require.Equal(t, RoleResponder, r.Comments[1].Role)
		require.Equal(t, RolePoster, r.Comments[2].Role)
	}
}

func TestGenerateDoesNotAliasInput(t *testing.T) {
	comments := []Comment{{ID: 1, Role: RolePoster, Text: "keep me"}}
	results, err := Generate("post", comments, 2, Intensities{}, newRNG(1))
	require.NoError(t, err)

	results[0].Comments[0].Text = "mutated"
	require.Equal(t, "keep me", comments[0].Text)
	require.Equal(t, "keep me", results[1].Comments[0].Text)
}

func TestGenerateReproducibleWithSeed(t *testing.T) {
	comments := []Comment{
		{ID: 1, Role: RoleResponder, Text: "Is this the real casino bonus?"},
		{ID: 2, Role: RolePoster, Text: "Yes! Free money, deposit and win."},
	}
	in := Intensities{Letter: 60, Word: 80, Emoji: 70, Typo: 50, Caps: 40, Punct: 60}

	a, err := Generate("Check out this fantastic opportunity!", comments, 10, in, newRNG(2024))
	require.NoError(t, err)
	b, err := Generate("Check out this fantastic opportunity!", comments, 10, in, newRNG(2024))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestGenerateVariationsDiffer(t *testing.T) {
	full := Intensities{Letter: 100, Word: 100, Emoji: 100, Typo: 100, Caps: 100, Punct: 100}
	results, err := Generate("This is the free bonus you were waiting for, really!", nil, 20, full, newRNG(77))
	require.NoError(t, err)

	distinct := make(map[string]bool)
	for _, r := range results {
		distinct[r.Post] = true
	}
	require.Greater(t, len(distinct), 1)
}

func TestGenerateNilRNG(t *testing.T) {
	results, err := Generate("Hello", nil, 2, DefaultIntensities(), nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"poster", RolePoster, false},
		{"Original", RolePoster, false},
		{" responder ", RoleResponder, false},
		{"moderator", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.input)
		if tt.wantErr {
			require.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}

func TestIntensitiesClamp(t *testing.T) {
	got := Intensities{Letter: -5, Word: 101, Emoji: 50, Typo: 0, Caps: 100, Punct: 999}.Clamp()
	require.Equal(t, Intensities{Letter: 0, Word: 100, Emoji: 50, Typo: 0, Caps: 100, Punct: 100}, got)
	require.True(t, Intensities{}.IsZero())
	require.False(t, DefaultIntensities().IsZero())
}

func TestNumberComments(t *testing.T) {
	in := []Comment{{ID: 2, Text: "a"}, {Text: "b"}, {Text: "c"}, {ID: 1, Text: "d"}}
	got := NumberComments(in)

	ids := make([]int, len(got))
	for i, c := range got {
		ids[i] = c.ID
	}
	require.Equal(t, []int{2, 3, 4, 1}, ids)
	require.Equal(t, "b", got[1].Text)
	require.Zero(t, in[1].ID, "input must not be modified")
	require.Empty(t, NumberComments(nil))
}
