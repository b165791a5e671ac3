// Package main provides the bcast kernel generator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/born-ml/bcast/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
