package schema

import (
	"strings"

	"github.com/cockroachdb/errors"
)

//go:generate go tool stringer -type=ShapeKind -linecomment

// ShapeKind classifies the shape of a described type.
type ShapeKind int

const (
	ShapeNamed   ShapeKind = iota // named
	ShapeUnnamed                  // unnamed
	ShapeUnit                     // unit
	ShapeVariant                  // variant
	ShapeUnion                    // union
	ShapeOpaque                   // opaque
)

// ParseShapeKind parses the textual form produced by ShapeKind.String.
// The empty string parses as ShapeNamed.
func ParseShapeKind(s string) (ShapeKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ShapeNamed, nil
	}

	for k := ShapeNamed; k <= ShapeOpaque; k++ {
		if k.String() == s {
			return k, nil
		}
	}

	return ShapeOpaque, errors.Newf("unknown shape %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (i ShapeKind) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ShapeKind) UnmarshalText(text []byte) error {
	k, err := ParseShapeKind(string(text))
	if err != nil {
		return err
	}

	*i = k

	return nil
}
