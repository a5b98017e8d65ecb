package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"field-accessor/internal/gen"
	"field-accessor/internal/logging"
)

// ErrOutOfDate is returned by check when generated files differ from disk.
var ErrOutOfDate = errors.New("generated files are out of date")

func newCheckCmd(e *env) *cobra.Command {
	var (
		flags   sourceFlags
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "check [packages]",
		Short: "Check that generated files are up to date",
		Long: `Regenerate in memory and compare with the files on disk.

Prints a diff for every file that changed, is missing, or is no longer
generated, and exits non-zero if there is any.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runCheck(cmd, flags, args, !noColor && !color.NoColor)
		},
	}

	addSourceFlags(cmd, &flags)
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored diff output")

	return cmd
}

func (e *env) runCheck(cmd *cobra.Command, flags sourceFlags, args []string, colorize bool) error {
	targets, err := e.targets(flags, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	total := 0

	for _, t := range targets {
		files, err := e.generator(t).GeneratePackage(t.pkg)
		if err != nil {
			return err
		}

		drifts, err := gen.Compare(files, t.dir, t.existing)
		if err != nil {
			return err
		}

		e.log.Infow("checked package",
			logging.FieldPackage, t.pkg.Name,
			logging.FieldCount, len(files),
			"drifts", len(drifts))

		for _, d := range drifts {
			fmt.Fprintln(out, d.Summary())
			fmt.Fprint(out, d.Diff(colorize))
		}

		total += len(drifts)
	}

	if total > 0 {
		return errors.WithHint(errors.Wrapf(ErrOutOfDate, "%d file(s)", total), "run field-accessor gen")
	}

	return nil
}
