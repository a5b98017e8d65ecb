package commands

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"field-accessor/internal/analyze"
	"field-accessor/internal/logging"
	"field-accessor/internal/manifest"
)

func newInspectCmd(e *env) *cobra.Command {
	var (
		types  []string
		output string
	)

	cmd := &cobra.Command{
		Use:   "inspect [packages]",
		Short: "Print the records of a package as a YAML description file",
		Long: `Print the records field-accessor would generate for, in the description
file format read by "gen --schema".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return errors.Wrapf(err, "creating %s", output)
				}

				w = f

				if err := e.runInspect(w, types, args); err != nil {
					_ = f.Close()
					return err
				}

				return errors.Wrapf(f.Close(), "closing %s", output)
			}

			return e.runInspect(w, types, args)
		},
	}

	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "record names to include in addition to marked ones")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

func (e *env) runInspect(w io.Writer, types, patterns []string) error {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	loader := analyze.NewLoader(analyze.Config{
		TagKey: e.cfg.TagKey,
		Marker: e.cfg.Marker,
		Types:  types,
	}, logging.Component("analyze"))

	pkgs, err := loader.Load(patterns...)
	if err != nil {
		return err
	}

	if len(pkgs) != 1 {
		return errors.WithHint(errors.Newf("%s matches %d packages", strings.Join(patterns, " "), len(pkgs)),
			"a description file covers exactly one package")
	}

	p := pkgs[0]
	e.report(p.Name, p.Diagnostics)

	data, err := manifest.Marshal(manifest.FromPackage(p))
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return errors.Wrap(err, "writing description")
}
