package variation

import (
	"fmt"
	"strings"
)

// Variation count bounds.
const (
	MinCount     = 1
	MaxCount     = 50
	DefaultCount = 5
)

// Role labels who wrote a comment in the dialogue.
type Role string

const (
	RolePoster    Role = "poster"
	RoleResponder Role = "responder"
)

// ParseRole parses a role label. The legacy label "original" maps to
// [RolePoster].
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "poster", "original", "op":
		return RolePoster, nil
	case "responder", "reply":
		return RoleResponder, nil
	}
	return "", fmt.Errorf("unknown role %q (must be poster or responder)", s)
}

// Label returns the human-readable name of the role.
func (r Role) Label() string {
	if r == RolePoster {
		return "Original Poster"
	}
	return "Responder"
}

// Comment is one labeled entry of the dialogue.
type Comment struct {
	ID   int    `json:"id" toml:"id"`
	Role Role   `json:"role" toml:"role"`
	Text string `json:"text" toml:"text"`
}

// Dialogue is the input to a generation run.
type Dialogue struct {
	Post     string    `json:"post" toml:"post"`
	Comments []Comment `json:"comments" toml:"comments"`
}

// HasContent reports whether the post or any comment is non-blank.
func (d Dialogue) HasContent() bool {
	if !isBlank(d.Post) {
		return true
	}
	for _, c := range d.Comments {
		if !isBlank(c.Text) {
			return true
		}
	}
	return false
}

// Intensities holds one percentage per pass.
type Intensities struct {
	Letter int `json:"letter" toml:"letter"`
	Word   int `json:"word" toml:"word"`
	Emoji  int `json:"emoji" toml:"emoji"`
	Typo   int `json:"typo" toml:"typo"`
	Caps   int `json:"caps" toml:"caps"`
	Punct  int `json:"punct" toml:"punct"`
}

// DefaultIntensities are moderate levels that keep output readable.
func DefaultIntensities() Intensities {
	return Intensities{Letter: 20, Word: 20, Emoji: 40, Typo: 15, Caps: 10, Punct: 30}
}

// Clamp returns a copy with every level bounded to [0, 100].
func (in Intensities) Clamp() Intensities {
	return Intensities{
		Letter: clampLevel(in.Letter),
		Word:   clampLevel(in.Word),
		Emoji:  clampLevel(in.Emoji),
		Typo:   clampLevel(in.Typo),
		Caps:   clampLevel(in.Caps),
		Punct:  clampLevel(in.Punct),
	}
}

// IsZero reports whether every level is zero.
func (in Intensities) IsZero() bool {
	return in == Intensities{}
}

// Result is one generated variation of a dialogue.
type Result struct {
	Post     string    `json:"post"`
	Comments []Comment `json:"comments"`
}

// NumberComments returns a copy of comments in which every comment without an
// ID gets the lowest positive ID not already in use, in dialogue order.
// Explicit IDs are kept.
func NumberComments(comments []Comment) []Comment {
	used := make(map[int]bool, len(comments))
	for _, c := range comments {
		if c.ID != 0 {
			used[c.ID] = true
		}
	}

	out := make([]Comment, len(comments))
	next := 1
	for i, c := range comments {
		if c.ID == 0 {
			for used[next] {
				next++
			}
			c.ID = next
			used[next] = true
		}
		out[i] = c
	}
	return out
}

// ClampCount bounds a variation count to [MinCount, MaxCount].
func ClampCount(n int) int {
	return max(MinCount, min(n, MaxCount))
}

func clampLevel(v int) int {
	return max(0, min(v, 100))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
