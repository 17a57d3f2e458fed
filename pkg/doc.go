// Package pkg provides the core libraries for textvary.
//
// # Overview
//
// Textvary rewrites a dialogue (a post and its comments) into many surface
// variations for testing moderation filters and spam classifiers. The pkg
// directory is organized into three areas:
//
//  1. [variation] - The engine: six transformation passes, the composer and
//     the generator, plus the substitution tables they draw from
//  2. [pipeline] - Orchestration: option validation, seed handling and the
//     result cache
//  3. Infrastructure: [cache], [store], [config], [io], [errors],
//     [observability] and [buildinfo]
//
// # Data Flow
//
//	Dialogue (JSON/TOML file, flags or API request)
//	         ↓
//	    [io] package (decode + normalize roles and IDs)
//	         ↓
//	    [pipeline] package (validate, resolve seed, consult cache)
//	         ↓
//	    [variation] package (letters → words → caps → punctuation → typos → emojis)
//	         ↓
//	    [store] package (optional run history)
//	         ↓
//	    text / JSON / Markdown / HTML output
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/textvary/pkg/pipeline"
//	)
//
//	opts := pipeline.DefaultOptions()
//	opts.Post = "Check out this fantastic opportunity!"
//	opts.Seed = 42
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), opts)
//	if err != nil {
//	    return err
//	}
//	for _, v := range result.Variations {
//	    fmt.Println(v.Post)
//	}
//
// The same seed, options and input always produce the same variations.
//
// [variation]: https://pkg.go.dev/github.com/matzehuels/textvary/pkg/variation
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/textvary/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/textvary/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/textvary/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/textvary/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/textvary/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/textvary/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/textvary/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/textvary/pkg/buildinfo
package pkg
