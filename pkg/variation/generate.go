package variation

import (
	"math/rand/v2"

	"github.com/matzehuels/textvary/pkg/errors"
)

// Generate produces count independent variations of a dialogue.
//
// count is clamped to [MinCount, MaxCount] and the intensities to [0, 100].
// Blank comments are dropped from every result; the remaining comments keep
// their ID, role and order. A blank post yields an empty Post. If the post and
// all comments are blank, Generate returns a NO_CONTENT error.
//
// A nil rng is replaced by a randomly seeded source.
func Generate(post string, comments []Comment, count int, in Intensities, rng *rand.Rand) ([]Result, error) {
	if !(Dialogue{Post: post, Comments: comments}).HasContent() {
		return nil, errors.New(errors.ErrCodeNoContent, "enter text in the original post or at least one comment")
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	count = ClampCount(count)
	in = in.Clamp()

	results := make([]Result, count)
	for i := range results {
		results[i] = generateOne(post, comments, in, rng)
	}
	return results, nil
}

// GenerateDialogue is Generate for a [Dialogue] value.
func GenerateDialogue(d Dialogue, count int, in Intensities, rng *rand.Rand) ([]Result, error) {
	return Generate(d.Post, d.Comments, count, in, rng)
}

func generateOne(post string, comments []Comment, in Intensities, rng *rand.Rand) Result {
	var r Result
	if !isBlank(post) {
		r.Post = Compose(post, in, rng)
	}
	r.Comments = make([]Comment, 0, len(comments))
	for _, c := range comments {
		if isBlank(c.Text) {
			continue
		}
		r.Comments = append(r.Comments, Comment{
			ID:   c.ID,
			Role: c.Role,
			Text: Compose(c.Text, in, rng),
		})
	}
	return r
}

// IsNoContent reports whether err is the NO_CONTENT error from [Generate].
func IsNoContent(err error) bool {
	return errors.Is(err, errors.ErrCodeNoContent)
}
