package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/textvary/pkg/observability"
	"github.com/matzehuels/textvary/pkg/variation"
)

func testRun(createdAt time.Time) *Run {
	run := NewRun(
		variation.Dialogue{
			Post:     "Free money!",
			Comments: []variation.Comment{{ID: 1, Role: variation.RoleResponder, Text: "Really?"}},
		},
		2,
		variation.DefaultIntensities(),
		1<<63+5, // exercises the full uint64 range
		[]variation.Result{
			{Post: "Fr33 money!!", Comments: []variation.Comment{{ID: 1, Role: variation.RoleResponder, Text: "Rea1ly?"}}},
			{Post: "free m0ney!", Comments: []variation.Comment{{ID: 1, Role: variation.RoleResponder, Text: "REALLY?"}}},
		},
	)
	run.CreatedAt = createdAt
	return run
}

// runStoreContract checks the behavior every Store implementation shares.
func runStoreContract(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	_, err := s.Get(ctx, uuid.NewString())
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, uuid.NewString()), ErrNotFound)

	runs := []*Run{testRun(base), testRun(base.Add(time.Hour)), testRun(base.Add(2 * time.Hour))}
	for _, r := range runs {
		require.NoError(t, s.Save(ctx, r))
	}

	got, err := s.Get(ctx, runs[1].ID)
	require.NoError(t, err)
	require.Equal(t, runs[1].ID, got.ID)
	require.Equal(t, runs[1].Seed, got.Seed)
	require.True(t, runs[1].CreatedAt.Equal(got.CreatedAt))
	require.Equal(t, runs[1].Input, got.Input)
	require.Equal(t, runs[1].Variations, got.Variations)
	require.Equal(t, runs[1].Levels, got.Levels)

	list, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, runs[2].ID, list[0].ID)
	require.Equal(t, runs[0].ID, list[2].ID)

	list, err = s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Save replaces by ID.
	runs[0].Count = 9
	require.NoError(t, s.Save(ctx, runs[0]))
	got, err = s.Get(ctx, runs[0].ID)
	require.NoError(t, err)
	require.Equal(t, 9, got.Count)

	require.NoError(t, s.Delete(ctx, runs[0].ID))
	_, err = s.Get(ctx, runs[0].ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Close())
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	run := testRun(time.Now())
	require.NoError(t, s.Save(ctx, run))

	run.Variations[0].Post = "mutated after save"
	got, err := s.Get(ctx, run.ID)
	require.NoError(t, err)
	require.Equal(t, "Fr33 money!!", got.Variations[0].Post)

	got.Input.Comments[0].Text = "mutated after get"
	again, _ := s.Get(ctx, run.ID)
	require.Equal(t, "Really?", again.Input.Comments[0].Text)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	runStoreContract(t, s)
}

func TestFileStoreRejectsNonUUID(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(filepath.Join(dir, "runs"))
	require.NoError(t, err)

	run := testRun(time.Now())
	run.ID = "../escape"
	require.Error(t, s.Save(ctx, run))

	_, err = s.Get(ctx, "../../etc/passwd")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, "../runs"), ErrNotFound)
}

func TestFileStoreSkipsUnreadableFiles(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, testRun(time.Now())))
	require.NoError(t, os.WriteFile(filepath.Join(s.Path(), uuid.NewString()+".json"), []byte("{"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(s.Path(), "notes.txt"), []byte("x"), 0600))

	list, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	dir, err := DefaultDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/tmp/xdg", "textvary", "runs"), dir)
}

func TestNewRun(t *testing.T) {
	run := NewRun(variation.Dialogue{Post: "x"}, 3, variation.Intensities{}, 42, nil)
	_, err := uuid.Parse(run.ID)
	require.NoError(t, err)
	require.Equal(t, time.UTC, run.CreatedAt.Location())
	require.Equal(t, uint64(42), run.Seed)
	require.Nil(t, (*Run)(nil).Clone())
}

type recordingHooks struct {
	mu  sync.Mutex
	ops []string
}

func (h *recordingHooks) OnStoreOp(_ context.Context, backend, op string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	suffix := ""
	if err != nil {
		suffix = "!"
	}
	h.ops = append(h.ops, backend+":"+op+suffix)
}

func TestInstrument(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetStoreHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	s := Instrument(NewMemoryStore(), "memory")
	run := testRun(time.Now())

	require.NoError(t, s.Save(ctx, run))
	_, _ = s.Get(ctx, run.ID)
	_, _ = s.List(ctx, 5)
	_ = s.Delete(ctx, run.ID)
	_ = s.Delete(ctx, run.ID)

	require.Equal(t, []string{
		"memory:save", "memory:get", "memory:list", "memory:delete", "memory:delete!",
	}, hooks.ops)
}
