package analyze

import (
	"go/ast"
	"go/token"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"field-accessor/internal/common"
	"field-accessor/internal/diagnostic"
	"field-accessor/internal/schema"
	"field-accessor/internal/suggest"
)

// LoadMode specifies what information to load from packages.
// Types are deliberately not requested.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax

// Config controls record selection.
type Config struct {
	// Dir is the working directory for pattern resolution.
	Dir string
	// TagKey is the struct tag key holding access names.
	TagKey string
	// Marker selects a type when it appears as a doc comment line.
	Marker string
	// Types names records to load regardless of the marker.
	Types []string
}

// Loader loads packages and describes their records.
type Loader struct {
	config Config
	log    *zap.SugaredLogger
}

// NewLoader creates a Loader. A nil logger discards output.
func NewLoader(config Config, log *zap.SugaredLogger) *Loader {
	if config.TagKey == "" {
		config.TagKey = DefaultTagKey
	}

	if config.Marker == "" {
		config.Marker = DefaultMarker
	}

	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Loader{config: config, log: log}
}

// Load loads the packages matching patterns.
// Every name in Config.Types must be found in at least one package.
func (l *Loader) Load(patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  l.config.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load packages")
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Newf("package errors: %v", errs)
	}

	result := make([]*Package, 0, len(pkgs))
	found := make(map[string]bool)

	var declared []string

	for _, pkg := range pkgs {
		p := l.processPackage(pkg)

		for _, r := range p.Records {
			found[r.Name] = true
		}

		declared = append(declared, p.Declared...)

		l.log.Debugw("loaded package",
			"package", p.Path,
			"count", len(p.Records),
			"skipped", len(p.Generated))

		result = append(result, p)
	}

	if err := l.resolveImportNames(result); err != nil {
		return nil, err
	}

	var missing []string

	for _, name := range l.config.Types {
		if !found[name] {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		err := errors.WithHint(
			errors.Newf("type(s) not found: %s", strings.Join(missing, ", ")),
			"the type must be declared at package level in a non-generated file")

		for _, name := range missing {
			if alts := suggest.Closest(name, declared, 3); len(alts) > 0 {
				err = errors.WithHintf(err, "did you mean %s instead of %s?", strings.Join(alts, " or "), name)
			}
		}

		return nil, err
	}

	return result, nil
}

// resolveImportNames records the declared name of every package imported
// without an alias by a record's file, so that a qualifier such as isatty
// resolves against "github.com/mattn/go-isatty".
func (l *Loader) resolveImportNames(pkgs []*Package) error {
	var paths []string

	for _, p := range pkgs {
		for _, r := range p.Records {
			for _, imp := range r.Imports {
				if imp.Alias == "" && !slices.Contains(paths, imp.Path) {
					paths = append(paths, imp.Path)
				}
			}
		}
	}

	if len(paths) == 0 {
		return nil
	}

	deps, err := packages.Load(&packages.Config{Mode: packages.NeedName, Dir: l.config.Dir}, paths...)
	if err != nil {
		return errors.Wrap(err, "failed to resolve imported package names")
	}

	names := make(map[string]string, len(deps))

	for _, d := range deps {
		if d.Name != "" && d.Name != common.PkgAlias(d.PkgPath) {
			names[d.PkgPath] = d.Name
		}
	}

	for _, p := range pkgs {
		for _, r := range p.Records {
			for i, imp := range r.Imports {
				if imp.Alias == "" {
					r.Imports[i].Name = names[imp.Path]
				}
			}
		}
	}

	l.log.Debugw("resolved import names", "count", len(paths), "renamed", len(names))

	return nil
}

// fileInfo is the per-file state needed to describe records.
type fileInfo struct {
	name    string
	imports []schema.Import
}

// processPackage extracts records from a loaded package.
func (l *Loader) processPackage(pkg *packages.Package) *Package {
	p := &Package{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	files := pkg.CompiledGoFiles
	if len(files) == 0 {
		files = pkg.GoFiles
	}

	if len(files) > 0 {
		p.Dir = filepath.Dir(files[0])
	}

	methods := make(map[string][]string)
	declared := make(map[string]bool)

	type candidate struct {
		spec *ast.TypeSpec
		doc  *ast.CommentGroup
		file fileInfo
	}

	var candidates []candidate

	for i, file := range pkg.Syntax {
		name := pkg.Fset.Position(file.Package).Filename
		if name == "" && i < len(files) {
			name = files[i]
		}

		if IsGenerated(file) {
			p.Generated = append(p.Generated, name)
			continue
		}

		p.Files = append(p.Files, name)
		info := fileInfo{name: name, imports: fileImports(file)}

		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if d.Recv == nil {
					declared[d.Name.Name] = true
					continue
				}

				if recv := receiverName(d.Recv); recv != "" {
					methods[recv] = append(methods[recv], d.Name.Name)
				}
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					switch s := spec.(type) {
					case *ast.TypeSpec:
						declared[s.Name.Name] = true

						doc := s.Doc
						if doc == nil && len(d.Specs) == 1 {
							doc = d.Doc
						}

						candidates = append(candidates, candidate{spec: s, doc: doc, file: info})
					case *ast.ValueSpec:
						for _, n := range s.Names {
							declared[n.Name] = true
						}
					}
				}
			}
		}
	}

	for _, c := range candidates {
		if !l.selected(c.spec.Name.Name, c.doc) {
			continue
		}

		desc := l.describe(pkg.Fset, c.spec, c.file, &p.Diagnostics)
		desc.Methods = slices.Clone(methods[desc.Name])
		slices.Sort(desc.Methods)

		l.log.Infow("found record",
			"package", p.Path,
			"record", desc.Name,
			"shape", desc.Shape.String(),
			"count", len(desc.Fields))

		p.Records = append(p.Records, desc)
	}

	delete(declared, "_")

	for name := range declared {
		p.Declared = append(p.Declared, name)
	}

	slices.Sort(p.Declared)

	return p
}

// selected reports whether a type should be described.
func (l *Loader) selected(name string, doc *ast.CommentGroup) bool {
	if slices.Contains(l.config.Types, name) {
		return true
	}

	return HasMarker(doc, l.config.Marker)
}

// describe builds the parser-neutral description of one type.
func (l *Loader) describe(
	fset *token.FileSet,
	spec *ast.TypeSpec,
	file fileInfo,
	diags *diagnostic.Diagnostics,
) schema.RecordDescription {
	desc := schema.RecordDescription{
		Name:    spec.Name.Name,
		Imports: file.imports,
		Pos:     position(fset, spec.Pos()),
	}

	if spec.TypeParams != nil {
		for _, field := range spec.TypeParams.List {
			for _, n := range field.Names {
				desc.TypeParams = append(desc.TypeParams, n.Name)
			}
		}
	}

	st, ok := spec.Type.(*ast.StructType)

	switch {
	case spec.Assign.IsValid():
		// Aliases have no fields or methods of their own.
		desc.Shape = schema.ShapeOpaque
		return desc
	case ok:
	case isInterface(spec.Type):
		desc.Shape = schema.ShapeVariant
		return desc
	default:
		desc.Shape = schema.ShapeOpaque
		return desc
	}

	desc.Shape = schema.ShapeNamed

	for _, field := range st.Fields.List {
		var tag FieldTag
		if field.Tag != nil {
			raw, err := strconv.Unquote(field.Tag.Value)
			if err != nil {
				raw = field.Tag.Value
			}

			tag = ParseFieldTag(raw, l.config.TagKey)
		}

		if tag.Skip {
			for _, n := range fieldNames(field) {
				diags.Add(diagnostic.Diagnostic{
					Severity:  diagnostic.DiagnosticInfo,
					Code:      diagnostic.CodeExcludedField,
					Message:   "field excluded by struct tag",
					Record:    desc.Name,
					FieldPath: desc.Name + "." + n,
					Pos:       position(fset, field.Pos()),
				})
			}

			continue
		}

		typeText := schema.ExprString(field.Type)
		pos := position(fset, field.Pos())

		if len(field.Names) == 0 {
			desc.Shape = schema.ShapeUnnamed
			desc.Fields = append(desc.Fields, schema.FieldDescription{Type: typeText, Pos: pos})

			continue
		}

		for _, n := range field.Names {
			fd := schema.FieldDescription{Name: n.Name, Ident: n.Name, Type: typeText, Pos: position(fset, n.Pos())}

			if n.Name == "_" {
				desc.Shape = schema.ShapeUnnamed
				fd.Name, fd.Ident = "", ""
			} else if tag.Name != "" {
				fd.Name = tag.Name
			}

			desc.Fields = append(desc.Fields, fd)
		}
	}

	if len(desc.Fields) == 0 {
		desc.Shape = schema.ShapeUnit
	}

	return desc
}

// IsGenerated reports whether file was written by field-accessor.
func IsGenerated(file *ast.File) bool {
	for _, cg := range file.Comments {
		if cg.Pos() >= file.Package {
			break
		}

		for _, c := range cg.List {
			if c.Text == common.GeneratedHeader {
				return true
			}
		}
	}

	return false
}

// HasMarker reports whether doc holds a "//marker" directive line.
func HasMarker(doc *ast.CommentGroup, marker string) bool {
	if doc == nil {
		return false
	}

	for _, c := range doc.List {
		text := strings.TrimPrefix(c.Text, "//")
		if text == c.Text {
			continue
		}

		if strings.TrimSpace(text) == marker {
			return true
		}
	}

	return false
}

func fileImports(file *ast.File) []schema.Import {
	var imports []schema.Import

	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		imp := schema.Import{Path: path}

		if spec.Name != nil {
			// Blank and dot imports cannot qualify a field type.
			if spec.Name.Name == "_" || spec.Name.Name == "." {
				continue
			}

			imp.Alias = spec.Name.Name
		}

		imports = append(imports, imp)
	}

	return imports
}

// receiverName returns the base type name of a method receiver.
func receiverName(recv *ast.FieldList) string {
	if len(recv.List) == 0 {
		return ""
	}

	expr := recv.List[0].Type

	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}

// fieldNames returns the declared names of a field, or the embedded type
// for an embedded field.
func fieldNames(field *ast.Field) []string {
	if len(field.Names) == 0 {
		return []string{schema.ExprString(field.Type)}
	}

	names := make([]string, len(field.Names))
	for i, n := range field.Names {
		names[i] = n.Name
	}

	return names
}

func isInterface(expr ast.Expr) bool {
	for {
		switch e := expr.(type) {
		case *ast.ParenExpr:
			expr = e.X
		case *ast.InterfaceType:
			return true
		default:
			return false
		}
	}
}

func position(fset *token.FileSet, pos token.Pos) string {
	p := fset.Position(pos)
	p.Filename = filepath.Base(p.Filename)

	return schema.Pos(p)
}
