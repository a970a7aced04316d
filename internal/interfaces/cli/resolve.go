package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "resolve <area name>",
		Short: "Resolve a typed area name against the known LGA universe",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			query := strings.Join(args, " ")
			result, err := cliCtx.Client.Resolve(ctx, query, limit)
			if err != nil {
				return err
			}

			if strings.EqualFold(cliCtx.OutputFormat, "json") {
				return printResult(cmd, result)
			}
			if result.Degraded {
				fmt.Fprintln(cmd.OutOrStdout(), "Warning: area data is degraded; matches may be incomplete")
			}
			if len(result.Matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches")
				return nil
			}
			for i, m := range result.Matches {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, m)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of matches (server default when 0)")
	return cmd
}
