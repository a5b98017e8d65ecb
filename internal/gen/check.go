package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines kept around each change.
const contextLines = 3

// DriftKind classifies a difference between generated output and disk.
type DriftKind int

const (
	DriftChanged DriftKind = iota // generated content differs
	DriftMissing                  // file not written yet
	DriftStale                    // file no longer produced
)

func (k DriftKind) String() string {
	switch k {
	case DriftChanged:
		return "changed"
	case DriftMissing:
		return "missing"
	case DriftStale:
		return "stale"
	default:
		return fmt.Sprintf("DriftKind(%d)", int(k))
	}
}

// Drift is a generated file that is out of date on disk.
type Drift struct {
	Kind     DriftKind
	Filename string
	Path     string
	Old      []byte // content on disk
	New      []byte // content that would be generated
}

// Compare reports every file in files whose content in dir differs, and
// every path in existing (previously generated files) that would no longer
// be produced.
func Compare(files []GeneratedFile, dir string, existing []string) ([]Drift, error) {
	var drifts []Drift

	produced := make(map[string]bool, len(files))

	for _, f := range files {
		path := filepath.Join(dir, f.Filename)
		produced[filepath.Clean(path)] = true

		old, err := os.ReadFile(path)

		switch {
		case os.IsNotExist(err):
			drifts = append(drifts, Drift{Kind: DriftMissing, Filename: f.Filename, Path: path, New: f.Content})
		case err != nil:
			return nil, errors.Wrapf(err, "reading %s", path)
		case !bytes.Equal(old, f.Content):
			drifts = append(drifts, Drift{Kind: DriftChanged, Filename: f.Filename, Path: path, Old: old, New: f.Content})
		}
	}

	stale := slices.Clone(existing)
	slices.Sort(stale)

	for _, path := range stale {
		if produced[filepath.Clean(path)] {
			continue
		}

		old, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}

		drifts = append(drifts, Drift{Kind: DriftStale, Filename: filepath.Base(path), Path: path, Old: old})
	}

	return drifts, nil
}

// Diff renders a line diff from the file on disk to the generated content,
// with unchanged runs trimmed to a few lines of context.
func (d Drift) Diff(colorize bool) string {
	del := paint(colorize, color.FgRed)
	add := paint(colorize, color.FgGreen)
	hunk := paint(colorize, color.FgCyan)

	var sb strings.Builder

	sb.WriteString(hunk(fmt.Sprintf("--- %s (on disk)", d.Path)) + "\n")
	sb.WriteString(hunk(fmt.Sprintf("+++ %s (generated)", d.Path)) + "\n")

	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(d.Old), string(d.New))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for i, diff := range diffs {
		text := splitLines(diff.Text)

		switch diff.Type {
		case diffpatch.DiffDelete:
			for _, l := range text {
				sb.WriteString(del("-"+l) + "\n")
			}
		case diffpatch.DiffInsert:
			for _, l := range text {
				sb.WriteString(add("+"+l) + "\n")
			}
		case diffpatch.DiffEqual:
			head, tail := contextLines, contextLines
			if i == 0 {
				head = 0
			}

			if i == len(diffs)-1 {
				tail = 0
			}

			if len(text) <= head+tail {
				for _, l := range text {
					sb.WriteString(" " + l + "\n")
				}

				continue
			}

			for _, l := range text[:head] {
				sb.WriteString(" " + l + "\n")
			}

			sb.WriteString(hunk(fmt.Sprintf("@@ %d unchanged lines @@", len(text)-head-tail)) + "\n")

			for _, l := range text[len(text)-tail:] {
				sb.WriteString(" " + l + "\n")
			}
		}
	}

	return sb.String()
}

// Summary is the one-line description of the drift.
func (d Drift) Summary() string {
	switch d.Kind {
	case DriftMissing:
		return fmt.Sprintf("%s: not generated yet", d.Path)
	case DriftStale:
		return fmt.Sprintf("%s: no longer generated", d.Path)
	default:
		return fmt.Sprintf("%s: out of date", d.Path)
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func paint(colorize bool, attr color.Attribute) func(a ...any) string {
	if !colorize {
		return fmt.Sprint
	}

	c := color.New(attr)
	c.EnableColor()

	return c.SprintFunc()
}
