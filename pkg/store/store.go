// Package store keeps a history of generated variation runs.
//
// A [Run] records everything needed to show or reproduce a generation: the
// input dialogue, count, intensities, the seed actually used, and the
// variations. Runs are identified by a random UUID.
//
// Backends:
//   - [MemoryStore]: in-process, for the API in development and for tests
//   - [FileStore]: one JSON file per run, for the CLI
//   - [MongoStore]: MongoDB collection, for shared deployments
//
// Wrap a store with [Instrument] to emit observability events.
//
// # Usage
//
//	s, err := store.NewFileStore("")  // Uses ~/.local/share/textvary/runs/
//	if err != nil {
//	    return err
//	}
//	run := store.NewRun(dialogue, count, levels, seed, variations)
//	if err := s.Save(ctx, run); err != nil {
//	    return err
//	}
//	recent, err := s.List(ctx, 10)
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/textvary/pkg/observability"
	"github.com/matzehuels/textvary/pkg/variation"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// DefaultListLimit is the number of runs List returns when limit <= 0.
const DefaultListLimit = 20

// Run is one stored generation.
type Run struct {
	ID         string                `json:"id"`
	CreatedAt  time.Time             `json:"created_at"`
	Seed       uint64                `json:"seed"`
	Count      int                   `json:"count"`
	Levels     variation.Intensities `json:"levels"`
	Input      variation.Dialogue    `json:"input"`
	Variations []variation.Result    `json:"variations"`
}

// NewRun creates a run with a fresh ID and the current time.
func NewRun(input variation.Dialogue, count int, levels variation.Intensities, seed uint64, variations []variation.Result) *Run {
	return &Run{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
		Seed:       seed,
		Count:      count,
		Levels:     levels,
		Input:      input,
		Variations: variations,
	}
}

// Clone returns a deep copy of r.
func (r *Run) Clone() *Run {
	if r == nil {
		return nil
	}
	c := *r
	c.Input.Comments = cloneComments(r.Input.Comments)
	if r.Variations != nil {
		c.Variations = make([]variation.Result, len(r.Variations))
		for i, v := range r.Variations {
			c.Variations[i] = variation.Result{Post: v.Post, Comments: cloneComments(v.Comments)}
		}
	}
	return &c
}

func cloneComments(cs []variation.Comment) []variation.Comment {
	if cs == nil {
		return nil
	}
	return append([]variation.Comment(nil), cs...)
}

// Store is the interface for run storage backends.
type Store interface {
	// Save stores a run, replacing any run with the same ID.
	Save(ctx context.Context, run *Run) error

	// Get retrieves a run by ID. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns up to limit runs, newest first.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Delete removes a run. Returns ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Instrumentation
// =============================================================================

type instrumented struct {
	Store
	backend string
}

// Instrument wraps s so every operation is reported to the registered
// observability store hooks under the given backend name.
func Instrument(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

func (s *instrumented) observe(ctx context.Context, op string, start time.Time, err error) {
	observability.Store().OnStoreOp(ctx, s.backend, op, time.Since(start), err)
}

func (s *instrumented) Save(ctx context.Context, run *Run) (err error) {
	defer func(start time.Time) { s.observe(ctx, "save", start, err) }(time.Now())
	return s.Store.Save(ctx, run)
}

func (s *instrumented) Get(ctx context.Context, id string) (run *Run, err error) {
	defer func(start time.Time) { s.observe(ctx, "get", start, err) }(time.Now())
	return s.Store.Get(ctx, id)
}

func (s *instrumented) List(ctx context.Context, limit int) (runs []*Run, err error) {
	defer func(start time.Time) { s.observe(ctx, "list", start, err) }(time.Now())
	return s.Store.List(ctx, limit)
}

func (s *instrumented) Delete(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { s.observe(ctx, "delete", start, err) }(time.Now())
	return s.Store.Delete(ctx, id)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
