// Package config loads field-accessor settings with viper.
//
// Sources, lowest precedence first: built-in defaults, a project file
// (.field-accessor.yaml or .field-accessor.toml, searched from the working
// directory upward, or given explicitly), FIELD_ACCESSOR_* environment
// variables, then command-line flags bound by the caller.
//
// Only tool behaviour is configurable. What gets generated for a record
// depends on the record alone.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "FIELD_ACCESSOR"

// FileNames are the project config files searched for, in preference order.
var FileNames = []string{".field-accessor.yaml", ".field-accessor.yml", ".field-accessor.toml"}

// Keys.
const (
	KeyTagKey       = "tag_key"
	KeyMarker       = "marker"
	KeyOutputSuffix = "output_suffix"
	KeyComments     = "comments"
	KeyVerbosity    = "verbosity"
	KeyJSONLogs     = "json_logs"
)

// Config is the resolved tool configuration.
type Config struct {
	TagKey       string `mapstructure:"tag_key"`       // struct tag key for access names
	Marker       string `mapstructure:"marker"`        // doc comment directive selecting records
	OutputSuffix string `mapstructure:"output_suffix"` // generated file name suffix
	Comments     bool   `mapstructure:"comments"`      // doc comments in generated code
	Verbosity    int    `mapstructure:"verbosity"`
	JSONLogs     bool   `mapstructure:"json_logs"`

	// Source is the config file that was read, empty when none.
	Source string `mapstructure:"-"`
}

// SetDefaults configures default values for all options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTagKey, "access")
	v.SetDefault(KeyMarker, "fieldaccessor:generate")
	v.SetDefault(KeyOutputSuffix, "_fieldaccess.go")
	v.SetDefault(KeyComments, true)
	v.SetDefault(KeyVerbosity, 0)
	v.SetDefault(KeyJSONLogs, false)
}

// New returns a viper instance with defaults and environment binding.
// path names the config file explicitly; when empty, the project file is
// searched for from dir upward.
func New(path, dir string) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path == "" {
		path = FindProjectConfig(dir)
	}

	if path != "" {
		v.SetConfigFile(path)
	}

	return v
}

// Load reads the config file set on v, if any, and returns the resolved
// configuration.
func Load(v *viper.Viper) (*Config, error) {
	source := v.ConfigFileUsed()

	if source != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", source)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values the generator cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.TagKey == "" || strings.ContainsAny(c.TagKey, " \t:\"`"):
		return errors.Newf("invalid %s %q", KeyTagKey, c.TagKey)
	case strings.TrimSpace(c.Marker) == "":
		return errors.Newf("%s must not be empty", KeyMarker)
	case !strings.HasSuffix(c.OutputSuffix, ".go") || strings.HasSuffix(c.OutputSuffix, "_test.go"):
		return errors.WithHint(
			errors.Newf("invalid %s %q", KeyOutputSuffix, c.OutputSuffix),
			"the suffix must end in .go and must not produce test files")
	case strings.ContainsRune(c.OutputSuffix, filepath.Separator):
		return errors.Newf("%s must not contain a path separator", KeyOutputSuffix)
	}

	return nil
}

// FindProjectConfig walks up from dir looking for a project config file.
// Returns the empty string when none is found.
func FindProjectConfig(dir string) string {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}

		dir = wd
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}

		dir = parent
	}
}
