package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Shallyquinn/Chatbot/pkg/client"
)

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the assistant a family planning question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			outcome, err := cliCtx.Client.Converse(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			if strings.EqualFold(cliCtx.OutputFormat, "json") {
				return printResult(cmd, outcome)
			}

			switch outcome.Kind {
			case client.KindAnswer:
				fmt.Fprintln(cmd.OutOrStdout(), outcome.Reply)
			case client.KindNoAnswer:
				fmt.Fprintln(cmd.OutOrStdout(), "The assistant has no answer for that question.")
			case client.KindComplete:
				fmt.Fprintln(cmd.OutOrStdout(), "The assistant considers this conversation complete.")
			case client.KindUnavailable:
				fmt.Fprintln(cmd.OutOrStdout(), outcome.Reply)
			default:
				return fmt.Errorf("unexpected outcome kind %q", outcome.Kind)
			}
			return nil
		},
	}
}
