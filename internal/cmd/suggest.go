package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSuggestCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "suggest <product name>",
		Short: "Ask the model for a recipe using one product",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()
			a.openRedis(ctx)

			s := a.suggestionService(ctx).Suggest(ctx, strings.Join(args, " "))
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), s.Text)
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the extracted suggestion as JSON")
	return cmd
}
