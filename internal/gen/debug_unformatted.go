package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. This is best-effort and should never make generation fail
// harder.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}
	// Keep it a .go file so editors can syntax highlight, but avoid colliding with
	// real output. The build constraint keeps it out of the package.
	p := filepath.Join(outDir, debugName(filename))

	return os.WriteFile(p, append([]byte("//go:build ignore\n\n"), content...), filePerm)
}

func debugName(filename string) string {
	return strings.TrimSuffix(filename, ".go") + ".unformatted.go"
}
