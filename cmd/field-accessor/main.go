// Command field-accessor generates by-name field access for Go structs.
//
// Mark a struct with a //fieldaccessor:generate doc comment and run
//
//	field-accessor gen ./...
//
// or add a //go:generate line to the package. See "field-accessor help".
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"field-accessor/cmd/field-accessor/commands"
	"field-accessor/internal/logging"
)

func main() {
	err := commands.NewRootCmd().Execute()

	logging.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		if hints := errors.FlattenHints(err); hints != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hints)
		}

		os.Exit(1)
	}
}
