package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/textvary/pkg/errors"
	"github.com/matzehuels/textvary/pkg/variation"
)

func TestReadJSON(t *testing.T) {
	in := `{
	  "post": "Free money!",
	  "comments": [
	    {"role": "responder", "text": "Is this real?"},
	    {"id": 7, "role": "Original", "text": "Yes."},
	    {"role": "reply", "text": "ok"}
	  ]
	}`
	d, err := ReadJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, "Free money!", d.Post)
	require.Len(t, d.Comments, 3)

	require.Equal(t, 1, d.Comments[0].ID)
	require.Equal(t, 7, d.Comments[1].ID)
	require.Equal(t, 2, d.Comments[2].ID)
	require.Equal(t, variation.RoleResponder, d.Comments[0].Role)
	require.Equal(t, variation.RolePoster, d.Comments[1].Role)
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"malformed", `{"post": `, errors.ErrCodeInvalidInput},
		{"unknown field", `{"pots": "typo"}`, errors.ErrCodeInvalidInput},
		{"bad role", `{"comments": [{"role": "moderator", "text": "x"}]}`, errors.ErrCodeInvalidRole},
		{"missing role", `{"comments": [{"text": "x"}]}`, errors.ErrCodeInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			require.True(t, errors.Is(err, tt.code), "error = %v", err)
		})
	}
}

func TestReadTOML(t *testing.T) {
	in := `
post = "Check out this fantastic opportunity!"

[[comments]]
role = "responder"
text = "Is this real?"

[[comments]]
id = 1
role = "poster"
text = "Totally free."
`
	d, err := ReadTOML(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, "Check out this fantastic opportunity!", d.Post)
	require.Len(t, d.Comments, 2)
	// ID 1 is taken by the second comment, so the first gets 2.
	require.Equal(t, 2, d.Comments[0].ID)
	require.Equal(t, 1, d.Comments[1].ID)
}

func TestReadTOMLUnknownKey(t *testing.T) {
	_, err := ReadTOML(strings.NewReader(`post = "x"` + "\n" + `extra = 1`))
	require.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "error = %v", err)
}

func TestImport(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "d.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"post": "hi"}`), 0644))
	d, err := Import(jsonPath)
	require.NoError(t, err)
	require.Equal(t, "hi", d.Post)

	tomlPath := filepath.Join(dir, "d.TOML")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`post = "hey"`), 0644))
	d, err = Import(tomlPath)
	require.NoError(t, err)
	require.Equal(t, "hey", d.Post)

	_, err = Import(filepath.Join(dir, "d.yaml"))
	require.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))

	_, err = Import(filepath.Join(dir, "missing.json"))
	require.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func testSet() Set {
	return Set{
		Seed: 42,
		Variations: []variation.Result{
			{
				Post: "Fr33 m0ney!!",
				Comments: []variation.Comment{
					{ID: 1, Role: variation.RoleResponder, Text: "Is this *real*?"},
					{ID: 3, Role: variation.RolePoster, Text: "yes <b>"},
				},
			},
			{Comments: []variation.Comment{{ID: 1, Role: variation.RoleResponder, Text: "ok"}}},
		},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, testSet()))
	want := "Variation #1\n" +
		"Original Post:\nFr33 m0ney!!\n" +
		"\nResponder (Comment #1):\nIs this *real*?\n" +
		"\nOriginal Poster (Comment #3):\nyes <b>\n" +
		"\nVariation #2\n" +
		"\nResponder (Comment #1):\nok\n"
	require.Equal(t, want, buf.String())
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	set := testSet()
	require.NoError(t, WriteJSON(&buf, set))
	require.Contains(t, buf.String(), "yes <b>")

	got, err := ReadSet(&buf)
	require.NoError(t, err)
	require.Equal(t, set, got)
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Set{}))
	require.Contains(t, buf.String(), `"variations": []`)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, testSet()))
	out := buf.String()
	require.Contains(t, out, "# Generated Variations (2)")
	require.Contains(t, out, "Seed: `42`")
	require.Contains(t, out, "## Variation #2")
	require.Contains(t, out, `> Is this \*real\*?`)
	require.Contains(t, out, "**Original Poster (Comment #3):**")
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, testSet()))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	require.Contains(t, out, "<h2>Variation #1</h2>")
	require.Contains(t, out, "<blockquote>")
	require.Contains(t, out, "Is this *real*?")
	require.NotContains(t, out, "<b>")
}

func TestEscapeLineBlockMarkers(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"- deposit now", `\- deposit now`},
		{"+ more", `\+ more`},
		{"  - indented", `  \- indented`},
		{"1. win", `1\. win`},
		{"12) claim", `12\) claim`},
		{"---", `\---`},
		{"===", `\===`},
		{"win 1. prize", "win 1. prize"},
		{"2.5 stars", "2.5 stars"},
		{"well-known", "well-known"},
		{"*bold*", `\*bold\*`},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, escapeLine(tt.in), tt.in)
	}
}

func TestWriteHTMLKeepsListMarkersLiteral(t *testing.T) {
	set := Set{Seed: 1, Variations: []variation.Result{{
		Post: "Offer:\n- deposit now\n1. win\n+ repeat",
	}}}
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, set))
	out := buf.String()
	for _, tag := range []string{"<ul>", "<ol>", "<li>", "<hr"} {
		require.NotContains(t, out, tag)
	}
	require.Contains(t, out, "- deposit now")
	require.Contains(t, out, "1. win")
	require.Contains(t, out, "+ repeat")
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "pdf", testSet())
	require.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
	for _, f := range Formats {
		require.NoError(t, Write(&bytes.Buffer{}, f, testSet()), f)
	}
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out"+Extension(FormatMarkdown))
	require.NoError(t, Export(path, FormatMarkdown, testSet()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "## Variation #1")
	require.Equal(t, ".txt", Extension(FormatText))
}
