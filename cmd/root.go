package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "symmbot",
	Short:         "Discord community bot: member counts, role menus and AI help",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context())
	},
}

// Execute runs the command line; the bot is the default command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
