package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/textvary/pkg/errors"
	textio "github.com/matzehuels/textvary/pkg/io"
	"github.com/matzehuels/textvary/pkg/store"
)

// runsCommand creates the run history command.
func (c *CLI) runsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved runs",
		Long:  `Inspect runs saved with "generate --save" or the API. Runs live in the configured store (file, mongo or memory).`,
	}

	cmd.AddCommand(c.runsListCommand())
	cmd.AddCommand(c.runsShowCommand())
	cmd.AddCommand(c.runsDeleteCommand())

	return cmd
}

// withStore opens the configured store for the duration of fn.
func (c *CLI) withStore(cmd *cobra.Command, fn func(store.Store) error) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	st, err := c.newStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func (c *CLI) runsListCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--limit must be positive")
			}
			return c.withStore(cmd, func(st store.Store) error {
				runs, err := st.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					printInfo("No saved runs")
					printNextStep("Save one with", "textvary generate --save")
					return nil
				}
				fmt.Println(runsTable(runs))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", store.DefaultListLimit, "maximum number of runs")
	return cmd
}

func (c *CLI) runsShowCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the variations of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateRunID(args[0]); err != nil {
				return err
			}
			if err := textio.ValidateFormat(format); err != nil {
				return err
			}
			return c.withStore(cmd, func(st store.Store) error {
				run, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("run %s: %w", args[0], err)
				}
				if format == textio.FormatText {
					printKeyValue("Run", run.ID)
					printKeyValue("Created", run.CreatedAt.Local().Format(time.DateTime))
					printKeyValue("Seed", strconv.FormatUint(run.Seed, 10))
					printKeyValue("Levels", formatLevels(run.Levels))
					fmt.Println()
				}
				return textio.Write(os.Stdout, format, textio.Set{
					RunID:      run.ID,
					Seed:       run.Seed,
					CreatedAt:  run.CreatedAt,
					Variations: run.Variations,
				})
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", textio.FormatText, "output format")
	return cmd
}

func (c *CLI) runsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete saved runs",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := errors.ValidateRunID(id); err != nil {
					return err
				}
			}
			return c.withStore(cmd, func(st store.Store) error {
				failed := 0
				for _, id := range args {
					if err := st.Delete(cmd.Context(), id); err != nil {
						printError("%s: %v", id, err)
						failed++
						continue
					}
					printSuccess("Deleted %s", id)
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d runs not deleted", failed, len(args))
				}
				return nil
			})
		},
	}
}
