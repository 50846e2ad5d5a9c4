// Command ragbooster learns per-corpus-item existence probabilities for a
// retrieval-augmented kNN classifier from a validation set of JSON-Lines
// questions, optionally grouping corpus items so every member of a group
// ends up with the same learned weight.
package main

import (
	"fmt"
	"os"

	"github.com/amsterdata/ragbooster/cmd/ragbooster/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
