// Package cmd holds the cartchef command line: the API server plus the
// operational subcommands that share its configuration.
package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the cartchef command tree. Running it without a
// subcommand starts the server.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "cartchef",
		Short:         "Cart panel and recipe suggestion API for the grocery storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newSeedCommand(),
		newSuggestCommand(),
	)
	return root
}

// Execute runs the command tree with args, writing command output to out
func Execute(ctx context.Context, args []string, out io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	return root.ExecuteContext(ctx)
}
