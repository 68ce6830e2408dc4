package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/crosspost/internal/infra/config"
	"github.com/aalvaropc/crosspost/internal/usecase"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter crosspost.yaml with the default endpoints",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			uc := usecase.NewInitConfig(config.NewInitializer())
			path, created, err := uc.Execute(dir, force)
			if err != nil {
				return err
			}

			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists (use --force to overwrite)\n", path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing crosspost.yaml")
	return cmd
}
