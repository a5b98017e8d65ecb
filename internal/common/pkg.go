package common

import (
	"path"
	"strings"
)

// UnknownStr is the String() fallback for out-of-range enum values.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty. Major version suffixes are skipped,
// so "gopkg.in/yaml.v3" yields "yaml" and "example.com/mod/v2" yields "mod".
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorVersion(base) {
		base = path.Base(path.Dir(pkgPath))
	}

	if i := strings.Index(base, ".v"); i > 0 && isMajorVersion(base[i+1:]) {
		base = base[:i]
	}

	return strings.ReplaceAll(base, "-", "_")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// GeneratedHeader is the first line of every file field-accessor writes.
const GeneratedHeader = "// Code generated by field-accessor. DO NOT EDIT."
