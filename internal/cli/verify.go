package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/crosspost/internal/domain"
	"github.com/aalvaropc/crosspost/internal/infra/logger"
	"github.com/aalvaropc/crosspost/internal/infra/prompt"
	"github.com/aalvaropc/crosspost/internal/ui/tui"
	"github.com/aalvaropc/crosspost/internal/usecase"
)

type verifyOptions struct {
	instance      string
	channel       string
	passwordStdin bool
	useTUI        bool
	format        string
	timeout       time.Duration
}

func verifyCmd(root *rootOptions) *cobra.Command {
	opts := &verifyOptions{}

	cmd := &cobra.Command{
		Use:     "verify",
		Aliases: []string{"add"},
		Short:   "Verify a Hubzilla instance and channel credentials",
		Long: "Checks that the instance serves host-meta, that nodeinfo reports Hubzilla\n" +
			"(or is absent), and that the channel credentials are accepted by the API.\n" +
			"Missing values are prompted for; the password is never echoed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.instance, "instance", "i", "", "Instance domain (e.g. example.com)")
	cmd.Flags().StringVarP(&opts.channel, "channel", "c", "", "Channel name (what goes before @<instance>)")
	cmd.Flags().BoolVar(&opts.passwordStdin, "password-stdin", false, "Read the password from stdin (requires --instance and --channel)")
	cmd.Flags().BoolVar(&opts.useTUI, "tui", false, "Run the interactive terminal UI")
	cmd.Flags().StringVar(&opts.format, "format", formatPretty, "Output format: pretty|json")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout per request (overrides config)")

	return cmd
}

func runVerify(cmd *cobra.Command, root *rootOptions, opts *verifyOptions) error {
	if err := validFormat(opts.format); err != nil {
		return err
	}
	if opts.passwordStdin && (opts.instance == "" || opts.channel == "") {
		return &domain.OpError{
			Op:   "cli.verify",
			Kind: domain.KindInvalidInput,
			Err:  errors.New("--password-stdin requires --instance and --channel"),
		}
	}
	if opts.passwordStdin && opts.useTUI {
		return &domain.OpError{
			Op:   "cli.verify",
			Kind: domain.KindInvalidInput,
			Err:  errors.New("--password-stdin cannot be combined with --tui"),
		}
	}

	app, err := loadApp(root, opts.timeout)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if opts.useTUI {
		report, err := tui.Run(cmd.Context(), tui.Deps{
			Verifier: app.verify,
			Logger:   logger.L(),
			Instance: opts.instance,
			Channel:  opts.channel,
		})
		if len(report.Checks) > 0 {
			if perr := printReport(out, report, opts.format); perr != nil {
				return perr
			}
		}
		return err
	}

	in := usecase.VerifyInput{
		Instance: opts.instance,
		Channel:  opts.channel,
	}
	if opts.passwordStdin {
		secret, err := prompt.ReadSecret(cmd.InOrStdin())
		if err != nil {
			return &domain.OpError{Op: "cli.verify", Kind: domain.KindInvalidInput, Err: err}
		}
		in.Password = secret
	}

	// Prompts go to stderr in json mode so stdout stays parseable.
	var promptOut io.Writer = out
	if opts.format == formatJSON {
		promptOut = cmd.ErrOrStderr()
	} else {
		printBanner(out)
	}

	report, verr := app.verify.Execute(cmd.Context(), in, prompt.New(cmd.InOrStdin(), promptOut))

	if opts.format == formatPretty {
		fmt.Fprintln(out)
	}
	if err := printReport(out, report, opts.format); err != nil {
		return err
	}
	return verr
}
