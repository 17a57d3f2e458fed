package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/matzehuels/textvary/pkg/errors"
	"github.com/matzehuels/textvary/pkg/variation"
)

// Output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Formats lists the supported output formats in display order.
var Formats = []string{FormatText, FormatJSON, FormatMarkdown, FormatHTML}

// ValidateFormat checks that format is a supported output format.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, Formats)
}

// Extension returns the conventional file extension for format.
func Extension(format string) string {
	switch format {
	case FormatJSON:
		return ".json"
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	}
	return ".txt"
}

// Set is a generated variation set with the metadata needed to reproduce it.
type Set struct {
	RunID      string             `json:"run_id,omitempty"`
	Seed       uint64             `json:"seed"`
	CreatedAt  time.Time          `json:"created_at,omitzero"`
	Variations []variation.Result `json:"variations"`
}

// Write renders set to w in the given format.
func Write(w io.Writer, format string, set Set) error {
	switch format {
	case FormatText:
		return WriteText(w, set)
	case FormatJSON:
		return WriteJSON(w, set)
	case FormatMarkdown:
		return WriteMarkdown(w, set)
	case FormatHTML:
		return WriteHTML(w, set)
	}
	return ValidateFormat(format)
}

// Export writes set to the file at path.
func Export(path, format string, set Set) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, format, set); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteText writes numbered variations as plain text.
//
//	Variation #1
//	Original Post:
//	...
//
//	Responder (Comment #2):
//	...
func WriteText(w io.Writer, set Set) error {
	var b strings.Builder
	for i, v := range set.Variations {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Variation #%d\n", i+1)
		if v.Post != "" {
			fmt.Fprintf(&b, "Original Post:\n%s\n", v.Post)
		}
		for _, c := range v.Comments {
			fmt.Fprintf(&b, "\n%s:\n%s\n", CommentLabel(c), c.Text)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes set as indented JSON.
func WriteJSON(w io.Writer, set Set) error {
	if set.Variations == nil {
		set.Variations = []variation.Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadSet decodes a set written by [WriteJSON].
func ReadSet(r io.Reader) (Set, error) {
	var set Set
	if err := json.NewDecoder(r).Decode(&set); err != nil {
		return Set{}, fmt.Errorf("decode: %w", err)
	}
	return set, nil
}

// WriteMarkdown writes one section per variation with every text quoted.
func WriteMarkdown(w io.Writer, set Set) error {
	_, err := io.WriteString(w, markdown(set))
	return err
}

// WriteHTML renders the markdown form of set with goldmark and wraps it in a
// standalone HTML page.
func WriteHTML(w io.Writer, set Set) error {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(markdown(set)), &body); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	title := fmt.Sprintf("Generated Variations (%d)", len(set.Variations))
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// CommentLabel returns the display label of a comment, for example
// "Responder (Comment #2)".
func CommentLabel(c variation.Comment) string {
	return fmt.Sprintf("%s (Comment #%d)", c.Role.Label(), c.ID)
}

func markdown(set Set) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Generated Variations (%d)\n\n", len(set.Variations))
	if set.Seed != 0 {
		fmt.Fprintf(&b, "Seed: `%d`\n\n", set.Seed)
	}
	for i, v := range set.Variations {
		fmt.Fprintf(&b, "## Variation #%d\n\n", i+1)
		if v.Post != "" {
			b.WriteString("**Original Post:**\n\n")
			b.WriteString(quote(v.Post))
		}
		for _, c := range v.Comments {
			fmt.Fprintf(&b, "**%s:**\n\n", CommentLabel(c))
			b.WriteString(quote(c.Text))
		}
	}
	return b.String()
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
	"~", `\~`,
)

// Line-leading block markers: bullets, ordered items ("1. x", "1) x") and
// the "-"/"=" runs of thematic breaks and setext underlines.
var (
	bulletMarker  = regexp.MustCompile(`^([ \t]*)([-+=])`)
	orderedMarker = regexp.MustCompile(`^([ \t]*)(\d{1,9})([.)])([ \t]|$)`)
)

// escapeLine escapes inline markup and any block marker starting the line,
// so comment text stays literal inside the blockquote.
func escapeLine(line string) string {
	line = mdEscaper.Replace(line)
	line = bulletMarker.ReplaceAllString(line, `${1}\${2}`)
	return orderedMarker.ReplaceAllString(line, `${1}${2}\${3}${4}`)
}

// quote renders text as a markdown blockquote with markup escaped.
func quote(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("> ")
		b.WriteString(escapeLine(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}
