package typetag

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"field-accessor/internal/schema"
)

// ErrTagCollision is wrapped by every CollisionError.
var ErrTagCollision = errors.New("type tag collision")

// CollisionError reports two distinct type expressions sharing a tag.
type CollisionError struct {
	Tag    string
	First  string
	Second string
}

// Error implements error.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("types %s and %s both map to tag %s", e.First, e.Second, e.Tag)
}

// Unwrap returns ErrTagCollision.
func (e *CollisionError) Unwrap() error {
	return ErrTagCollision
}

// Tag pairs a distinct type with its tag.
type Tag struct {
	Name string
	Type schema.TypeExpr
}

// Tags is an injective mapping from distinct types to tags.
type Tags struct {
	list   []Tag
	byType map[string]string
}

// DeriveAll tags every distinct type. It fails when two distinct types
// produce the same tag.
func DeriveAll(distinct []schema.TypeExpr) (*Tags, error) {
	tags := &Tags{byType: make(map[string]string, len(distinct))}
	owner := make(map[string]string, len(distinct))

	for _, t := range distinct {
		if _, ok := tags.byType[t.Text]; ok {
			continue
		}

		name := Derive(t)
		if prev, ok := owner[name]; ok {
			err := error(&CollisionError{Tag: name, First: prev, Second: t.Text})

			return nil, errors.WithHintf(err,
				"declare a named type for one of %s or %s so their tags differ", prev, t.Text)
		}

		owner[name] = t.Text
		tags.byType[t.Text] = name
		tags.list = append(tags.list, Tag{Name: name, Type: t})
	}

	return tags, nil
}

// Of returns the tag of a type, or "" if the type was not tagged.
func (t *Tags) Of(typ schema.TypeExpr) string {
	return t.byType[typ.Text]
}

// List returns the tags in distinct-type order.
func (t *Tags) List() []Tag {
	return t.list
}

// Len returns the number of tags.
func (t *Tags) Len() int {
	return len(t.list)
}
