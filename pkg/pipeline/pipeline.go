// Package pipeline runs variation generation for every textvary entry point.
//
// The CLI and the HTTP API both go through a [Runner] so that seeding,
// caching, validation and logging behave the same everywhere.
//
// # Seeds
//
// A run is fully determined by its dialogue, intensities, count and seed.
// When [Options.Seed] is zero the runner draws a fresh seed from crypto/rand
// and reports it in [Result.Seed]; passing that seed back reproduces the run.
// Only runs with an explicit seed are looked up in the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Post = "Check out this fantastic opportunity!"
//	opts.Seed = 42
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, v := range result.Variations {
//	    fmt.Println(v.Post)
//	}
package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/textvary/pkg/cache"
	"github.com/matzehuels/textvary/pkg/errors"
	"github.com/matzehuels/textvary/pkg/variation"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultCount is the number of variations generated when none is requested.
	DefaultCount = variation.DefaultCount

	// KeyTypeVariations labels variation set lookups in cache hooks.
	KeyTypeVariations = "variations"
)

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options contains all configuration for one variation run.
// This struct supports JSON serialization for API requests and stored runs.
type Options struct {
	Post     string                `json:"post"`
	Comments []variation.Comment   `json:"comments,omitempty"`
	Count    int                   `json:"count"`
	Levels   variation.Intensities `json:"levels"`
	Seed     uint64                `json:"seed,omitempty"`
	Refresh  bool                  `json:"refresh,omitempty"` // skip the cache lookup

	// Runtime options (not serialized)
	MaxTextRunes int         `json:"-"`
	MaxComments  int         `json:"-"`
	Logger       *log.Logger `json:"-"` // overrides Runner.Logger for this run

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// DefaultOptions returns options with the default count and intensities.
func DefaultOptions() Options {
	return Options{
		Count:  DefaultCount,
		Levels: variation.DefaultIntensities(),
	}
}

// Result contains the outputs of a run.
type Result struct {
	// Variations holds one entry per generated variation.
	Variations []variation.Result `json:"variations"`

	// Seed is the seed the run used, explicit or drawn.
	Seed uint64 `json:"seed"`

	// InputHash is the content hash of the dialogue.
	InputHash string `json:"input_hash"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks whether the result came from cache.
	CacheInfo CacheInfo `json:"cache"`
}

// Stats contains run statistics.
type Stats struct {
	Variations int           `json:"variations"`
	Comments   int           `json:"comments"` // non-blank comments per variation
	Duration   time.Duration `json:"duration"`
}

// CacheInfo tracks cache usage for a run.
type CacheInfo struct {
	Hit bool `json:"hit"`
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the dialogue and applies defaults.
//
// Roles are normalized through [variation.ParseRole], texts are checked with
// [errors.ValidateText], a zero Count becomes [DefaultCount] and every value
// is clamped to its valid range. Levels are taken as given; a zero level
// disables its pass. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if err := errors.ValidateCommentCount(len(o.Comments), o.MaxComments); err != nil {
		return err
	}
	if err := errors.ValidateText("post", o.Post, o.MaxTextRunes); err != nil {
		return err
	}

	comments := make([]variation.Comment, len(o.Comments))
	for i, c := range o.Comments {
		role, err := variation.ParseRole(string(c.Role))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRole, err, "comment %d", i+1)
		}
		if err := errors.ValidateText(fmt.Sprintf("comment %d", i+1), c.Text, o.MaxTextRunes); err != nil {
			return err
		}
		c.Role = role
		comments[i] = c
	}
	o.Comments = variation.NumberComments(comments)

	if o.Count == 0 {
		o.Count = DefaultCount
	}
	o.Count = variation.ClampCount(o.Count)
	o.Levels = o.Levels.Clamp()

	o.validated = true
	return nil
}

// Dialogue returns the dialogue the options describe.
func (o *Options) Dialogue() variation.Dialogue {
	return variation.Dialogue{Post: o.Post, Comments: o.Comments}
}

// VariationKeyOpts returns cache key options for a run with the given seed.
func (o *Options) VariationKeyOpts(seed uint64) cache.VariationKeyOpts {
	return cache.VariationKeyOpts{
		Count:  o.Count,
		Letter: o.Levels.Letter,
		Word:   o.Levels.Word,
		Emoji:  o.Levels.Emoji,
		Typo:   o.Levels.Typo,
		Caps:   o.Levels.Caps,
		Punct:  o.Levels.Punct,
		Seed:   seed,
	}
}

// =============================================================================
// Seeds
// =============================================================================

// NewSeed draws a non-zero seed from crypto/rand.
func NewSeed() uint64 {
	var b [8]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			return mrand.Uint64() | 1
		}
		if s := binary.LittleEndian.Uint64(b[:]); s != 0 {
			return s
		}
	}
}

// NewRNG returns the deterministic generator for seed.
func NewRNG(seed uint64) *mrand.Rand {
	return mrand.New(mrand.NewPCG(seed, seed^0xdeadbeef))
}
