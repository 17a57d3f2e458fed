package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Input limits applied to untrusted dialogue input.
const (
	// DefaultMaxTextRunes bounds the length of a single post or comment.
	DefaultMaxTextRunes = 10000

	// DefaultMaxComments bounds the number of comments in one dialogue.
	DefaultMaxComments = 100
)

// ValidateText checks a post or comment body for safety.
//
// The validation rules are intentionally conservative:
//   - No null bytes
//   - No control characters other than tab, newline and carriage return
//   - No invalid UTF-8
//   - At most maxRunes characters (DefaultMaxTextRunes when maxRunes <= 0)
//
// Blank text is valid; the engine decides what to do with it.
func ValidateText(field, text string, maxRunes int) error {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxTextRunes
	}

	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "%s is not valid UTF-8", field)
	}

	if n := utf8.RuneCountInString(text); n > maxRunes {
		return New(ErrCodeInputTooLarge, "%s too long (%d characters, max %d)", field, n, maxRunes)
	}

	for _, r := range text {
		if r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", field)
		}
	}

	return nil
}

// ValidateCommentCount rejects dialogues with more than max comments
// (DefaultMaxComments when max <= 0).
func ValidateCommentCount(n, max int) error {
	if max <= 0 {
		max = DefaultMaxComments
	}
	if n > max {
		return New(ErrCodeInputTooLarge, "too many comments (%d, max %d)", n, max)
	}
	return nil
}

// ValidateRunID checks that id is a canonical UUID string.
func ValidateRunID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidRunID, "run id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidRunID, err, "invalid run id: %q", id)
	}
	return nil
}

// ValidateFormat checks that format is one of valid (case-sensitive).
func ValidateFormat(format string, valid []string) error {
	for _, v := range valid {
		if format == v {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(valid, ", "))
}
