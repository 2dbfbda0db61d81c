package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bizledger/internal/cli"
	"bizledger/internal/report"
)

func reportCmd() *cobra.Command {
	var (
		month      string
		prev, next bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the monthly report",
		Long: `Show totals, profit margin, category split and daily series for one month.

Without --month the newest month with records is shown. --prev and --next
step to the neighbouring month that has records.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if prev && next {
				return errors.New("--prev and --next are mutually exclusive")
			}
			current, err := resolveMonth(month)
			if err != nil {
				return err
			}

			if prev || next {
				dir := report.Next
				if prev {
					dir = report.Prev
				}
				months := app.reporter.Months()
				if !report.CanStep(months, current, dir) {
					fmt.Fprintln(cmd.ErrOrStderr(), cli.WarningStyle.Render(fmt.Sprintf("no %s month with records from %s", dir, current)))
				}
				current = report.Step(months, current, dir)
			}

			cli.RenderReport(cmd.OutOrStdout(), app.reporter.Monthly(current))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to show (YYYY-MM)")
	cmd.Flags().BoolVar(&prev, "prev", false, "step to the previous month with records")
	cmd.Flags().BoolVar(&next, "next", false, "step to the next month with records")
	return cmd
}

func monthsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List months that have records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			months := app.reporter.Months()
			cli.RenderMonths(cmd.OutOrStdout(), months, report.DefaultMonth(months, report.FallbackMonth))
			return nil
		},
	}
}
