package gen

import (
	"bytes"
	"go/format"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"field-accessor/internal/analyze"
	"field-accessor/internal/common"
	"field-accessor/internal/schema"
	"field-accessor/internal/typetag"
)

// DefaultFileSuffix is appended to the snake-cased record name.
const DefaultFileSuffix = "_fieldaccess.go"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is used when a Request does not name its package.
	PackageName string
	// OutputDir is where the unformatted sidecar goes when formatting fails.
	// Empty disables the sidecar.
	OutputDir string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
	// FileSuffix is appended to the snake-cased record name.
	FileSuffix string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		GenerateComments: true,
		FileSuffix:       DefaultFileSuffix,
	}
}

// Generator turns validated record schemas into Go source.
type Generator struct {
	config GeneratorConfig
	log    *zap.SugaredLogger
}

// NewGenerator creates a new Generator with the given configuration.
// A nil logger discards output.
func NewGenerator(config GeneratorConfig, log *zap.SugaredLogger) *Generator {
	if config.FileSuffix == "" {
		config.FileSuffix = DefaultFileSuffix
	}

	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Generator{config: config, log: log}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "dog_fieldaccess.go").
	Filename string
	// Record is the record the file was generated for.
	Record string
	// Content is the formatted Go source code.
	Content []byte
}

// Request is one package worth of records.
type Request struct {
	PackageName string
	// Declared lists package-level identifiers outside generated files.
	Declared []string
	Records  []*schema.Schema
}

// GeneratePackage validates every record of a loaded package and generates
// them. Shape errors across all records are reported together.
func (g *Generator) GeneratePackage(p *analyze.Package) ([]GeneratedFile, error) {
	schemas, diags := schema.ExtractAll(p.Records)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags.Error(), "package %s", p.Name)
	}

	return g.Generate(Request{
		PackageName: p.Name,
		Declared:    p.Declared,
		Records:     schemas,
	})
}

// Generate generates one file per record. Nothing is returned unless every
// record succeeds.
func (g *Generator) Generate(req Request) ([]GeneratedFile, error) {
	pkgName := req.PackageName
	if pkgName == "" {
		pkgName = g.config.PackageName
	}

	if pkgName == "" {
		return nil, errors.New("package name is required")
	}

	declared := make(map[string]bool, len(req.Declared)+len(req.Records))
	for _, name := range req.Declared {
		declared[name] = true
	}

	for _, s := range req.Records {
		declared[s.Name] = true
	}

	reg := newRegistry(declared)
	files := make([]GeneratedFile, 0, len(req.Records))

	for _, s := range req.Records {
		data, err := g.buildRecordData(pkgName, s, declared)
		if err != nil {
			return nil, errors.Wrapf(err, "generating %s", s.Name)
		}

		if err := reg.claim(s, data); err != nil {
			return nil, err
		}

		file, err := g.render(data)
		if err != nil {
			return nil, errors.Wrapf(err, "generating %s", s.Name)
		}

		g.log.Debugw("generated record",
			"record", s.Name,
			"file", file.Filename,
			"count", s.FieldCount(),
			"groups", len(data.Types),
			"swaps", len(data.Swaps))

		files = append(files, *file)
	}

	return files, nil
}

// Filename returns the output file name for a record.
func (g *Generator) Filename(record string) string {
	return common.ToSnakeCase(record) + g.config.FileSuffix
}

// recordData holds everything the file template needs for one record.
type recordData struct {
	Header      string
	PackageName string
	Filename    string
	Comments    bool
	Imports     []importSpec
	Fmt         string // local name of "fmt"
	N           recordNames
	Fields      []fieldData
	Types       []typeData
	Swaps       []swapData
}

// buildRecordData derives every generated name and section for a record.
func (g *Generator) buildRecordData(pkgName string, s *schema.Schema, declared map[string]bool) (*recordData, error) {
	tags, err := typetag.DeriveAll(s.DistinctTypes())
	if err != nil {
		return nil, err
	}

	imports, err := assembleImports(s, declared)
	if err != nil {
		return nil, err
	}

	data := &recordData{
		Header:      common.GeneratedHeader,
		PackageName: pkgName,
		Filename:    g.Filename(s.Name),
		Comments:    g.config.GenerateComments,
		Imports:     imports.specs,
		Fmt:         imports.fmt,
		N:           newRecordNames(s.Name),
	}

	data.Fields = buildFields(data.N, s, tags, imports)
	data.Types = buildGroups(data.N, s, tags, data.Fields)
	data.Swaps = buildSwaps(s, data.Fields)

	return data, nil
}

// render executes the template and formats the result.
func (g *Generator) render(data *recordData) (*GeneratedFile, error) {
	var buf bytes.Buffer

	if err := fileTemplate.ExecuteTemplate(&buf, "file", data); err != nil {
		return nil, errors.Wrap(err, "executing template")
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, data.Filename, buf.Bytes())
		}

		return nil, errors.Wrap(err, "formatting code")
	}

	return &GeneratedFile{
		Filename: data.Filename,
		Record:   data.N.Record,
		Content:  formatted,
	}, nil
}
