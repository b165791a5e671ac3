package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/born-ml/bcast/internal/emit"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Output string // output file path, empty for stdout
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <manifest.yaml>",
		Short: "Generate unrolled kernel sources from a manifest",
		Long: `Generate a Go source file of fully unrolled elementwise kernels.

Each kernel in the manifest is validated (broadcast shape combination,
result type deduction) and rendered as straight-line code with one
assignment per output element. Nothing is written unless every kernel
resolves.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (default: stdout)")

	return cmd
}

func runGenerate(opts *GenerateOptions, manifestPath string, cmd *cobra.Command) error {
	m, err := emit.Load(manifestPath)
	if err != nil {
		return err
	}

	if opts.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Loaded %d kernel(s) from %s\n", len(m.Kernels), manifestPath)
	}

	src, err := emit.Generate(m)
	if err != nil {
		return err
	}

	if opts.Output == "" {
		_, err = cmd.OutOrStdout().Write(src)
		return err
	}

	if err := os.WriteFile(opts.Output, src, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.Output, err)
	}
	if opts.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d bytes)\n", opts.Output, len(src))
	}
	return nil
}
