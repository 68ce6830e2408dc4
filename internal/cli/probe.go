package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func probeCmd(root *rootOptions) *cobra.Command {
	var (
		format  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "probe <instance>",
		Short: "Check that an instance looks like Hubzilla (no credentials)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(format); err != nil {
				return err
			}

			app, err := loadApp(root, timeout)
			if err != nil {
				return err
			}

			report, verr := app.verify.Probe(cmd.Context(), args[0])
			if err := printReport(cmd.OutOrStdout(), report, format); err != nil {
				return err
			}
			return verr
		},
	}

	cmd.Flags().StringVar(&format, "format", formatPretty, "Output format: pretty|json")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "HTTP timeout per request (overrides config)")
	return cmd
}
