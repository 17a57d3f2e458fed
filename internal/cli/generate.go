package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/textvary/pkg/config"
	"github.com/matzehuels/textvary/pkg/errors"
	textio "github.com/matzehuels/textvary/pkg/io"
	"github.com/matzehuels/textvary/pkg/pipeline"
	"github.com/matzehuels/textvary/pkg/store"
	"github.com/matzehuels/textvary/pkg/variation"
)

// stdinArg reads a JSON dialogue from standard input.
const stdinArg = "-"

// generateOpts holds the command-line flags for the generate command.
// Numeric flags only override the config when set explicitly.
type generateOpts struct {
	post     string
	comments []string // role:text
	count    int
	levels   variation.Intensities
	seed     uint64
	format   string
	output   string
	noCache  bool
	refresh  bool
	save     bool
	browse   bool
}

// generateJob is one input dialogue and, once run, its variation set.
type generateJob struct {
	name   string
	input  variation.Dialogue
	opts   pipeline.Options
	result *pipeline.Result
	runID  string
}

func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [file...]",
		Short: "Generate variations of a post and its comments",
		Long: `Generate surface variations of a dialogue.

Input comes from .json or .toml dialogue files ("-" reads JSON from stdin)
or from --post and repeated --comment role:text flags. Several files are
processed concurrently and written in the order given.`,
		Example: `  textvary generate --post "Free money, deposit now!" -n 3
  textvary generate thread.json --seed 42 -f markdown -o thread.md
  textvary generate a.toml b.toml -o out/ --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			return c.runGenerate(cmd, cfg, args, &opts)
		},
	}

	opts.bind(cmd)
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return textio.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// bind registers the generate flags on cmd.
func (o *generateOpts) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.post, "post", "", "post text")
	f.StringArrayVar(&o.comments, "comment", nil, "comment as role:text (repeatable; roles: poster, responder)")
	f.IntVarP(&o.count, "count", "n", 0, fmt.Sprintf("number of variations (%d-%d)", variation.MinCount, variation.MaxCount))
	f.IntVar(&o.levels.Letter, "letter", 0, "letter substitution intensity (0-100)")
	f.IntVar(&o.levels.Word, "word", 0, "word substitution intensity (0-100)")
	f.IntVar(&o.levels.Emoji, "emoji", 0, "emoji injection intensity (0-100)")
	f.IntVar(&o.levels.Typo, "typo", 0, "typo injection intensity (0-100)")
	f.IntVar(&o.levels.Caps, "caps", 0, "capitalization intensity (0-100)")
	f.IntVar(&o.levels.Punct, "punct", 0, "punctuation intensity (0-100)")
	f.Uint64Var(&o.seed, "seed", 0, "random seed for reproducible output (0 draws one)")
	f.StringVarP(&o.format, "format", "f", "", "output format: "+strings.Join(textio.Formats, ", "))
	f.StringVarP(&o.output, "output", "o", "", "output file (single input) or directory (several inputs)")
	f.BoolVar(&o.noCache, "no-cache", false, "disable the result cache")
	f.BoolVar(&o.refresh, "refresh", false, "regenerate even when a cached result exists")
	f.BoolVar(&o.save, "save", false, "save the run to the run store")
	f.BoolVar(&o.browse, "browse", false, "browse the variations interactively")
}

func (c *CLI) runGenerate(cmd *cobra.Command, cfg config.Config, args []string, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	base, format, err := baseOptions(cmd, cfg, opts)
	if err != nil {
		return err
	}
	jobs, err := loadJobs(args, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var st store.Store
	if opts.save {
		if st, err = c.newStore(ctx, cfg); err != nil {
			return err
		}
		defer st.Close()
	}

	prog := newProgress(logger)
	g, gctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		job.opts = base
		job.opts.Post = job.input.Post
		job.opts.Comments = job.input.Comments
		job.opts.Logger = logger.With("input", job.name)
		g.Go(func() error {
			res, err := runner.Execute(gctx, job.opts)
			if err != nil {
				return fmt.Errorf("%s: %w", job.name, err)
			}
			job.result = res
			logger.Debug("generated", "input", job.name, "seed", res.Seed, "cached", res.CacheInfo.Hit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	total := 0
	for _, job := range jobs {
		total += len(job.result.Variations)
		if st == nil {
			continue
		}
		run := store.NewRun(job.opts.Dialogue(), job.result.Stats.Variations, job.opts.Levels, job.result.Seed, job.result.Variations)
		if err := st.Save(ctx, run); err != nil {
			return fmt.Errorf("save %s: %w", job.name, err)
		}
		job.runID = run.ID
		logger.Info("saved run", "input", job.name, "id", run.ID)
	}
	prog.done(fmt.Sprintf("Generated %d variations from %d input(s)", total, len(jobs)))

	if opts.browse {
		if err := browse(ctx, jobs); err != nil {
			return err
		}
		if opts.output == "" {
			return nil
		}
	}
	return writeJobs(jobs, format, opts.output)
}

// baseOptions merges the config with the explicitly set flags.
func baseOptions(cmd *cobra.Command, cfg config.Config, opts *generateOpts) (pipeline.Options, string, error) {
	flags := cmd.Flags()
	base := pipeline.DefaultOptions()
	base.Count = cfg.Generate.Count
	base.Levels = cfg.Levels
	base.Seed = cfg.Generate.Seed
	base.Refresh = opts.refresh

	if flags.Changed("count") {
		if opts.count < variation.MinCount || opts.count > variation.MaxCount {
			return base, "", errors.New(errors.ErrCodeInvalidInput,
				"--count must be between %d and %d", variation.MinCount, variation.MaxCount)
		}
		base.Count = opts.count
	}
	for _, lvl := range []struct {
		flag string
		src  int
		dst  *int
	}{
		{"letter", opts.levels.Letter, &base.Levels.Letter},
		{"word", opts.levels.Word, &base.Levels.Word},
		{"emoji", opts.levels.Emoji, &base.Levels.Emoji},
		{"typo", opts.levels.Typo, &base.Levels.Typo},
		{"caps", opts.levels.Caps, &base.Levels.Caps},
		{"punct", opts.levels.Punct, &base.Levels.Punct},
	} {
		if !flags.Changed(lvl.flag) {
			continue
		}
		if lvl.src < 0 || lvl.src > 100 {
			return base, "", errors.New(errors.ErrCodeInvalidInput, "--%s must be between 0 and 100", lvl.flag)
		}
		*lvl.dst = lvl.src
	}
	if flags.Changed("seed") {
		base.Seed = opts.seed
	}

	format := cfg.Generate.Format
	if opts.format != "" {
		format = opts.format
	}
	if err := textio.ValidateFormat(format); err != nil {
		return base, "", err
	}
	return base, format, nil
}

// loadJobs reads every input. Files and --post/--comment are exclusive.
func loadJobs(args []string, opts *generateOpts) ([]*generateJob, error) {
	inline := opts.post != "" || len(opts.comments) > 0
	switch {
	case inline && len(args) > 0:
		return nil, errors.New(errors.ErrCodeInvalidInput, "pass either dialogue files or --post/--comment, not both")
	case inline:
		d, err := inlineDialogue(opts.post, opts.comments)
		if err != nil {
			return nil, err
		}
		return []*generateJob{{name: "input", input: d}}, nil
	case len(args) == 0:
		return nil, errors.New(errors.ErrCodeInvalidInput, "no input: pass a dialogue file or --post")
	}

	jobs := make([]*generateJob, len(args))
	for i, path := range args {
		var (
			d   variation.Dialogue
			err error
		)
		if path == stdinArg {
			d, err = textio.ReadJSON(os.Stdin)
		} else {
			d, err = textio.Import(path)
		}
		if err != nil {
			return nil, err
		}
		jobs[i] = &generateJob{name: path, input: d}
	}
	return jobs, nil
}

// inlineDialogue builds a dialogue from --post and --comment role:text values.
func inlineDialogue(post string, comments []string) (variation.Dialogue, error) {
	d := variation.Dialogue{Post: post}
	for i, raw := range comments {
		role, text, ok := strings.Cut(raw, ":")
		if !ok {
			return variation.Dialogue{}, errors.New(errors.ErrCodeInvalidInput, "comment %d: want role:text, got %q", i+1, raw)
		}
		d.Comments = append(d.Comments, variation.Comment{Role: variation.Role(role), Text: text})
	}
	return textio.Normalize(d)
}

// writeJobs writes each variation set to stdout, to output (one input) or
// into the output directory (several inputs).
func writeJobs(jobs []*generateJob, format, output string) error {
	if output == "" {
		for i, job := range jobs {
			if i > 0 {
				fmt.Println()
			}
			if err := textio.Write(os.Stdout, format, job.set()); err != nil {
				return err
			}
		}
		return nil
	}

	if len(jobs) == 1 {
		if err := textio.Export(output, format, jobs[0].set()); err != nil {
			return err
		}
		printSuccess("Wrote %d variations", len(jobs[0].result.Variations))
		printFile(output)
		return nil
	}

	if err := os.MkdirAll(output, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	printSuccess("Wrote %d variation sets", len(jobs))
	for _, job := range jobs {
		path := filepath.Join(output, outputName(job.name)+textio.Extension(format))
		if err := textio.Export(path, format, job.set()); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// outputName derives an output file stem from an input path.
func outputName(input string) string {
	if input == stdinArg {
		return "stdin"
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (j *generateJob) set() textio.Set {
	return textio.Set{
		RunID:      j.runID,
		Seed:       j.result.Seed,
		Variations: j.result.Variations,
	}
}

// browse opens the interactive browser over every generated set.
func browse(ctx context.Context, jobs []*generateJob) error {
	sets := make([]browseSet, len(jobs))
	for i, job := range jobs {
		sets[i] = browseSet{name: job.name, set: job.set()}
	}
	return runBrowser(ctx, sets)
}
