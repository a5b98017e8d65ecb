package manifest

import (
	"fmt"
	"go/token"

	"field-accessor/internal/diagnostic"
)

// Validate checks the file-level structure. Record shapes and field types
// are checked later by schema extraction.
func Validate(f *File) diagnostic.Diagnostics {
	var res diagnostic.Diagnostics

	if f == nil {
		res.AddError(diagnostic.CodeNoRecords, "description file is nil", "", "")
		return res
	}

	if f.Version != CurrentVersion {
		res.AddError(diagnostic.CodeInvalidVersion,
			fmt.Sprintf("unsupported version %q, expected %q", f.Version, CurrentVersion), "", "")
	}

	switch {
	case f.Package == "":
		res.AddError(diagnostic.CodeMissingPackage, "package name is required", "", "")
	case !token.IsIdentifier(f.Package):
		res.AddError(diagnostic.CodeInvalidName, fmt.Sprintf("package name %q is not an identifier", f.Package), "", "")
	}

	if len(f.Records) == 0 {
		res.AddWarning(diagnostic.CodeNoRecords, "no records described", "", "")
	}

	seen := make(map[string]bool, len(f.Records))

	for i, r := range f.Records {
		if r.Name == "" {
			res.AddError(diagnostic.CodeInvalidName, fmt.Sprintf("record #%d has no name", i), "", "")
			continue
		}

		if seen[r.Name] {
			res.AddError(diagnostic.CodeDuplicateRecord, fmt.Sprintf("record %q described twice", r.Name), r.Name, "")
		}

		seen[r.Name] = true

		for j, fd := range r.Fields {
			if fd.Type == "" {
				path := fmt.Sprintf("%s.%s", r.Name, fd.Name)
				if fd.Name == "" {
					path = fmt.Sprintf("%s.#%d", r.Name, j)
				}

				res.AddError(diagnostic.CodeInvalidType, "field type is required", r.Name, path)
			}
		}
	}

	return res
}
