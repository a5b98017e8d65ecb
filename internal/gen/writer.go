package gen

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist, and removes a stale
// unformatted sidecar left by an earlier failed run.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return errors.Wrapf(err, "writing file %s", file.Filename)
		}

		sidecar := filepath.Join(outputDir, debugName(file.Filename))
		if err := os.Remove(sidecar); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "removing %s", sidecar)
		}
	}

	return nil
}
