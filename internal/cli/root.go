package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/crosspost/internal/infra/logger"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := &rootOptions{}
	err := newRootCmdWith(opts).ExecuteContext(ctx)
	opts.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		stop()
		os.Exit(1)
	}
}

type rootOptions struct {
	debug      bool
	configPath string
	logDir     string

	cleanup func() error
}

func (o *rootOptions) close() {
	if o.cleanup != nil {
		_ = o.cleanup()
		o.cleanup = nil
	}
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&rootOptions{})
}

func newRootCmdWith(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "crosspost",
		Short:         "crosspost verifies Hubzilla accounts for cross-posting",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			opts.close()
			cleanup, _ := logger.Setup(logger.Config{
				Dir:   opts.logDir,
				Debug: opts.debug,
			})
			opts.cleanup = cleanup
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to crosspost.yaml (optional; autodetected if omitted)")
	cmd.PersistentFlags().StringVar(&opts.logDir, "log-dir", "", "Directory for crosspost.log (default: user cache dir)")

	cmd.AddCommand(verifyCmd(opts))
	cmd.AddCommand(probeCmd(opts))
	cmd.AddCommand(initCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}
