// Package cli wires the bcast command line: manifest validation and
// unrolled kernel source generation.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the CLI version reported by --version.
const Version = "v0.1.0-dev"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the bcast CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "bcast",
		Short:   "bcast - static-shape broadcast kernel generator",
		Long:    "Generates fully unrolled elementwise kernels from static operand shapes,\napplying NumPy-style broadcasting at generation time.",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Subcommands
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
