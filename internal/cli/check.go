package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/bcast/internal/emit"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <manifest.yaml>",
		Short: "Validate a kernel manifest without generating code",
		Long: `Validate a kernel manifest: runs broadcast shape combination and
result type deduction for every kernel and reports the resolved result
shapes, without emitting any source.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, manifestPath string, cmd *cobra.Command) error {
	m, err := emit.Load(manifestPath)
	if err != nil {
		return err
	}

	reports, err := emit.Check(m)
	if err != nil {
		return err
	}

	switch opts.Format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	default:
		for _, r := range reports {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> shape %v %s (%d elements)\n",
				r.Name, r.Op, r.ResultShape, r.TypeName, r.Elements)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d kernel(s) ok\n", len(reports))
		return nil
	}
}
