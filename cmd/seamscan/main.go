// Command seamscan scans a book corpus for dialog-aware sentence
// boundaries and writes one sibling span file per source file.
package main

import (
	"fmt"
	"os"

	"github.com/seamscan/seamscan/internal/cliapp"
)

func main() {
	if err := cliapp.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "seamscan:", err)
		os.Exit(1)
	}
}
