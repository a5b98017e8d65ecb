package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"field-accessor/internal/gen"
	"field-accessor/internal/logging"
)

func newGenCmd(e *env) *cobra.Command {
	var flags sourceFlags

	cmd := &cobra.Command{
		Use:   "gen [packages]",
		Short: "Generate field access code",
		Long: `Generate one <record>_fieldaccess.go file per selected record.

Without --output, files are written next to the records and previously
generated files whose record is gone are removed.

Examples:
  field-accessor gen                          # package in the current directory
  field-accessor gen ./... -t Dog             # Dog plus every marked record
  field-accessor gen --schema dog.yaml --package kennel -o ./kennel`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runGen(cmd, flags, args)
		},
	}

	addSourceFlags(cmd, &flags)

	return cmd
}

func addSourceFlags(cmd *cobra.Command, flags *sourceFlags) {
	f := cmd.Flags()
	f.StringSliceVarP(&flags.types, "type", "t", nil, "record names to generate in addition to marked ones")
	f.StringVarP(&flags.output, "output", "o", "", "output directory (default: the package directory)")
	f.StringVar(&flags.schemaPath, "schema", "", "generate from a YAML description file instead of Go source")
	f.StringVar(&flags.pkgName, "package", "", "package name of the generated code (with --schema)")
}

func (e *env) runGen(cmd *cobra.Command, flags sourceFlags, args []string) error {
	targets, err := e.targets(flags, args)
	if err != nil {
		return err
	}

	for _, t := range targets {
		files, err := e.generator(t).GeneratePackage(t.pkg)
		if err != nil {
			return err
		}

		if err := gen.WriteFiles(files, t.dir); err != nil {
			return err
		}

		removed, err := removeStale(files, t)
		if err != nil {
			return err
		}

		e.log.Infow("generated package",
			logging.FieldPackage, t.pkg.Name,
			logging.FieldCount, len(files),
			"removed", removed)

		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(t.dir, f.Filename))
		}
	}

	return nil
}

// removeStale deletes generated files in the package directory that the
// current run no longer produces.
func removeStale(files []gen.GeneratedFile, t target) (int, error) {
	drifts, err := gen.Compare(files, t.dir, t.existing)
	if err != nil {
		return 0, err
	}

	removed := 0

	for _, d := range drifts {
		if d.Kind != gen.DriftStale {
			continue
		}

		if err := os.Remove(d.Path); err != nil {
			return removed, errors.Wrapf(err, "removing %s", d.Path)
		}

		removed++
	}

	return removed, nil
}
