package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/nostrgamer/bitcoinbudget/internal/cli"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show budget totals and the unassigned pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := svc.BudgetSummary(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute summary: %w", err)
			}
			unassigned, err := svc.UnassignedBalance(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute unassigned balance: %w", err)
			}

			fmt.Println(cli.TitleStyle.Render("Budget summary"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "Total income\t%s sats\n", formatAmount(summary.TotalIncome))
			fmt.Fprintf(w, "Total expenses\t%s sats\n", formatAmount(summary.TotalExpenses))
			fmt.Fprintf(w, "On-budget balance\t%s sats\n", formatAmount(summary.OnBudgetBalance))
			fmt.Fprintf(w, "Unassigned\t%s sats\n", formatAmount(unassigned))
			return nil
		},
	}
}
