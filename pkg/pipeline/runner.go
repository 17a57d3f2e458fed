package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/textvary/pkg/cache"
	"github.com/matzehuels/textvary/pkg/errors"
	"github.com/matzehuels/textvary/pkg/observability"
	"github.com/matzehuels/textvary/pkg/variation"
)

// Runner encapsulates run execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cached results; zero uses cache.TTLVariations.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute validates opts and generates the variations, serving runs with an
// explicit seed from cache when possible.
func (r *Runner) Execute(ctx context.Context, opts Options) (result *Result, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	start := time.Now()
	hooks := observability.Generate()
	hooks.OnGenerateStart(ctx, opts.Count, nonBlank(opts.Comments))
	defer func() {
		hooks.OnGenerateComplete(ctx, opts.Count, time.Since(start), err)
	}()

	dialogue := opts.Dialogue()
	if !dialogue.HasContent() {
		return nil, errors.New(errors.ErrCodeNoContent, "enter text in the original post or at least one comment")
	}

	inputHash, err := cache.HashJSON(dialogue)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash dialogue")
	}

	explicit := opts.Seed != 0
	seed := opts.Seed
	if !explicit {
		seed = NewSeed()
	}

	result = &Result{Seed: seed, InputHash: inputHash}
	cacheKey := r.Keyer.VariationKey(inputHash, opts.VariationKeyOpts(seed))

	if explicit && !opts.Refresh {
		if variations, ok := r.lookup(ctx, logger, cacheKey); ok {
			result.Variations = variations
			result.CacheInfo.Hit = true
			result.Stats = r.stats(variations, start)
			logger.Debug("variations served from cache", "seed", seed, "count", len(variations))
			return result, nil
		}
	}

	variations, err := variation.GenerateDialogue(dialogue, opts.Count, opts.Levels, NewRNG(seed))
	if err != nil {
		return nil, err
	}
	result.Variations = variations
	result.Stats = r.stats(variations, start)

	if explicit {
		r.store(ctx, logger, cacheKey, variations)
	}

	logger.Info("generated variations",
		"count", len(variations),
		"comments", result.Stats.Comments,
		"seed", seed,
		"duration", result.Stats.Duration)

	return result, nil
}

// Generate is a convenience wrapper that returns only the variations.
func (r *Runner) Generate(ctx context.Context, opts Options) ([]variation.Result, error) {
	result, err := r.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}
	return result.Variations, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) lookup(ctx context.Context, logger *log.Logger, key string) ([]variation.Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache lookup failed", "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, KeyTypeVariations)
		return nil, false
	}

	var variations []variation.Result
	if err := json.Unmarshal(data, &variations); err != nil {
		// Unreadable entries are regenerated and overwritten.
		observability.Cache().OnCacheMiss(ctx, KeyTypeVariations)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, KeyTypeVariations)
	return variations, true
}

func (r *Runner) store(ctx context.Context, logger *log.Logger, key string, variations []variation.Result) {
	data, err := json.Marshal(variations)
	if err != nil {
		return
	}
	ttl := r.TTL
	if ttl <= 0 {
		ttl = cache.TTLVariations
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "error", fmt.Errorf("set %s: %w", key, err))
		return
	}
	observability.Cache().OnCacheSet(ctx, KeyTypeVariations, len(data))
}

func (r *Runner) stats(variations []variation.Result, start time.Time) Stats {
	s := Stats{Variations: len(variations), Duration: time.Since(start)}
	if len(variations) > 0 {
		s.Comments = len(variations[0].Comments)
	}
	return s
}

func nonBlank(comments []variation.Comment) int {
	n := 0
	for _, c := range comments {
		if strings.TrimSpace(c.Text) != "" {
			n++
		}
	}
	return n
}
