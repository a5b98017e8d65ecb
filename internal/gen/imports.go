package gen

import (
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"field-accessor/internal/schema"
)

// ErrMissingImport is wrapped when a field type names a package the
// declaring file does not import.
var ErrMissingImport = errors.New("missing import")

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet is the import block of one generated file together with the
// local names chosen for the standard library packages it uses.
type importSet struct {
	specs  []importSpec
	fmt    string
	slices string
	maps   string
}

// assembleImports resolves every package qualifier in the record's field
// types through the record's imports, then adds fmt and, when a union
// variant clones its value, slices and maps.
func assembleImports(s *schema.Schema, declared map[string]bool) (*importSet, error) {
	set := &importSet{}
	used := make(map[string]string) // qualifier -> path

	for _, f := range s.Fields {
		for _, q := range f.Type.PackageRefs() {
			if _, ok := used[q]; ok {
				continue
			}

			imp, ok := s.ImportFor(q)
			if !ok {
				err := errors.Wrapf(ErrMissingImport, "field %s: type %s refers to package %q", f.Name, f.Type, q)
				return nil, errors.WithHintf(err, "import the package that provides %q in the file declaring %s", q, s.Name)
			}

			used[q] = imp.Path

			spec := importSpec{Path: imp.Path}
			if q != path.Base(imp.Path) {
				spec.Alias = q
			}

			set.specs = append(set.specs, spec)
		}
	}

	cloneSlices, cloneMaps := false, false

	for _, f := range s.Fields {
		switch f.Type.CloneKind() {
		case schema.CloneSlice:
			cloneSlices = true
		case schema.CloneMap:
			cloneMaps = true
		case schema.CloneCopy:
		}
	}

	set.fmt = set.std("fmt", used, declared)

	if cloneSlices {
		set.slices = set.std("slices", used, declared)
	}

	if cloneMaps {
		set.maps = set.std("maps", used, declared)
	}

	slices.SortFunc(set.specs, func(a, b importSpec) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}

		return strings.Compare(a.Alias, b.Alias)
	})

	return set, nil
}

// std imports a standard library package and returns its local name. The
// package name is used unless a field type qualifier or a package-level
// declaration already holds it.
func (set *importSet) std(pkg string, used map[string]string, declared map[string]bool) string {
	if used[pkg] == pkg {
		return pkg
	}

	name := pkg
	for i := 1; used[name] != "" || declared[name]; i++ {
		name = "std" + pkg
		if i > 1 {
			name += strconv.Itoa(i)
		}
	}

	spec := importSpec{Path: pkg}
	if name != pkg {
		spec.Alias = name
	}

	used[name] = pkg
	set.specs = append(set.specs, spec)

	return name
}
