package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newClinicsCmd() *cobra.Command {
	var area, locality string

	cmd := &cobra.Command{
		Use:   "clinics",
		Short: "List clinics for an area and locality",
		RunE: func(cmd *cobra.Command, args []string) error {
			if area == "" || locality == "" {
				return fmt.Errorf("both --area and --locality are required")
			}

			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			result, err := cliCtx.Client.Clinics(ctx, area, locality)
			if err != nil {
				return err
			}

			if strings.EqualFold(cliCtx.OutputFormat, "json") {
				return printResult(cmd, result)
			}
			if len(result.Clinics) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No clinics found in %s, %s\n", locality, area)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), result.ReferralText)
			return nil
		},
	}

	cmd.Flags().StringVar(&area, "area", "", "LGA name (exact, case-insensitive)")
	cmd.Flags().StringVar(&locality, "locality", "", "locality within the area")
	return cmd
}

func newLocalitiesCmd() *cobra.Command {
	var area string

	cmd := &cobra.Command{
		Use:   "localities",
		Short: "List the localities known for an area",
		RunE: func(cmd *cobra.Command, args []string) error {
			if area == "" {
				return fmt.Errorf("--area is required")
			}

			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			result, err := cliCtx.Client.Localities(ctx, area)
			if err != nil {
				return err
			}

			if strings.EqualFold(cliCtx.OutputFormat, "json") {
				return printResult(cmd, result)
			}
			if len(result.Localities) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No localities found for %s\n", area)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), result.LocalitiesText)
			return nil
		},
	}

	cmd.Flags().StringVar(&area, "area", "", "LGA name (exact, case-insensitive)")
	return cmd
}
