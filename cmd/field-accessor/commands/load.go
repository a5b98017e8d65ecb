package commands

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"field-accessor/internal/analyze"
	"field-accessor/internal/diagnostic"
	"field-accessor/internal/gen"
	"field-accessor/internal/logging"
	"field-accessor/internal/manifest"
)

// target is one package to generate, with the directory its files go to.
type target struct {
	pkg *analyze.Package
	dir string
	// existing lists generated files already in dir; empty when dir is not
	// the package directory.
	existing []string
}

// sourceFlags select what to generate.
type sourceFlags struct {
	types      []string
	output     string
	schemaPath string
	pkgName    string
}

// targets resolves the packages named by patterns, or the description file
// named by --schema.
func (e *env) targets(flags sourceFlags, patterns []string) ([]target, error) {
	if flags.schemaPath != "" {
		return e.schemaTarget(flags)
	}

	if flags.pkgName != "" {
		return nil, errors.New("--package is only valid with --schema")
	}

	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	loader := analyze.NewLoader(analyze.Config{
		TagKey: e.cfg.TagKey,
		Marker: e.cfg.Marker,
		Types:  flags.types,
	}, logging.Component("analyze"))

	pkgs, err := loader.Load(patterns...)
	if err != nil {
		return nil, err
	}

	if flags.output != "" && len(pkgs) > 1 {
		return nil, errors.WithHint(
			errors.Newf("--output given for %d packages", len(pkgs)),
			"run once per package when writing to a separate directory")
	}

	var out []target

	for _, p := range pkgs {
		e.report(p.Name, p.Diagnostics)

		t := target{pkg: p, dir: p.Dir}
		if flags.output != "" && !sameDir(flags.output, p.Dir) {
			t.dir = flags.output
		} else {
			t.existing = p.Generated
		}

		if len(p.Records) == 0 {
			if len(t.existing) == 0 {
				e.log.Warnw("no records found", logging.FieldPackage, p.Path)
				continue
			}

			// Still a target so that its leftover generated files are removed.
			e.log.Infow("no records left", logging.FieldPackage, p.Path, logging.FieldCount, len(t.existing))
		}

		out = append(out, t)
	}

	if len(out) == 0 {
		return nil, errors.WithHintf(errors.New("no records to generate"),
			"mark a struct with a //%s doc comment or name it with --type", e.cfg.Marker)
	}

	return out, nil
}

func (e *env) schemaTarget(flags sourceFlags) ([]target, error) {
	if len(flags.types) > 0 {
		return nil, errors.New("--type is not valid with --schema")
	}

	f, err := manifest.LoadFile(flags.schemaPath)
	if err != nil {
		return nil, err
	}

	if flags.pkgName != "" {
		f.Package = flags.pkgName
	}

	diags := manifest.Validate(f)
	e.report(f.Package, diags)

	if diags.HasErrors() {
		return nil, errors.Wrapf(diags.Error(), "invalid description file %s", flags.schemaPath)
	}

	dir := flags.output
	if dir == "" {
		dir = "."
	}

	return []target{{pkg: f.ToPackage(), dir: dir}}, nil
}

// generator returns a generator configured for one target.
func (e *env) generator(t target) *gen.Generator {
	return gen.NewGenerator(gen.GeneratorConfig{
		OutputDir:        t.dir,
		GenerateComments: e.cfg.Comments,
		FileSuffix:       e.cfg.OutputSuffix,
	}, logging.Component("gen"))
}

// report logs non-error diagnostics. Errors are returned by the caller.
func (e *env) report(pkg string, diags diagnostic.Diagnostics) {
	for _, d := range diags.Warnings {
		e.log.Warnw(d.Message, logging.FieldPackage, pkg, logging.FieldRecord, d.Record, "code", d.Code, "pos", d.Pos)
	}

	for _, d := range diags.Infos {
		e.log.Infow(d.Message, logging.FieldPackage, pkg, logging.FieldRecord, d.Record, "code", d.Code, "pos", d.Pos)
	}
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)

	if errA != nil || errB != nil {
		return false
	}

	if absA == absB {
		return true
	}

	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)

	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}
