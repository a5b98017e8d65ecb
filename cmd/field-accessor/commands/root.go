// Package commands holds the cobra commands of field-accessor.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"field-accessor/internal/config"
	"field-accessor/internal/logging"
)

// env is the state shared by every command, resolved before each run.
type env struct {
	configPath string
	verbose    int
	jsonLogs   bool

	cfg *config.Config
	log *zap.SugaredLogger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "field-accessor",
		Short: "Generate by-name field access for Go structs",
		Long: `field-accessor generates, for every marked struct, accessors that read
and write fields by a runtime name, grouped by field type, plus a field enum,
a type enum, a field value union and a metadata descriptor.

Mark a struct with a "//fieldaccessor:generate" doc comment, or name it
with --type. Rename a field's access key with the struct tag access:"key" and
exclude a field with access:"-".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&e.configPath, "config", "", "config file (default: .field-accessor.yaml searched upward)")
	flags.CountVarP(&e.verbose, "verbose", "v", "increase log verbosity (-v info, -vv debug)")
	flags.BoolVar(&e.jsonLogs, "json-logs", false, "emit logs as JSON")

	root.AddCommand(newGenCmd(e), newCheckCmd(e), newInspectCmd(e))

	return root
}

// setup resolves configuration and initializes logging.
func (e *env) setup(cmd *cobra.Command) error {
	v := config.New(e.configPath, "")

	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logging.Initialize(cfg.Verbosity, cfg.JSONLogs)

	e.cfg = cfg
	e.log = logging.Component("cli")

	if cfg.Source != "" {
		e.log.Debugw("using config file", logging.FieldFile, cfg.Source)
	}

	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for key, flag := range map[string]string{
		config.KeyVerbosity: "verbose",
		config.KeyJSONLogs:  "json-logs",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}

	return nil
}
