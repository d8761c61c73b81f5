package main

import (
	"fmt"
	"os"

	"github.com/nostrgamer/bitcoinbudget/internal/cli"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Rebuild cached balances from the transaction log",
		Long: `Recompute every category and account balance from the full transaction and
transfer log, overwriting any drifted values. Run this after a failed
operation left the database inconsistent.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var bar *progressbar.ProgressBar
			progress := func(done, total int) {
				if bar == nil {
					bar = progressbar.NewOptions(total,
						progressbar.OptionSetWriter(os.Stderr),
						progressbar.OptionShowCount(),
						progressbar.OptionSetWidth(40),
						progressbar.OptionSetDescription("Reconciling..."),
					)
				}
				_ = bar.Set(done)
			}

			catFixed, err := svc.RecalculateCategoryBalances(ctx, progress)
			if err != nil {
				return fmt.Errorf("category reconciliation failed: %w", err)
			}
			bar = nil
			acctFixed, err := svc.RecalculateAccountBalances(ctx, progress)
			if err != nil {
				return fmt.Errorf("account reconciliation failed: %w", err)
			}

			if catFixed == 0 && acctFixed == 0 {
				fmt.Println(cli.SuccessStyle.Render("✓ All balances consistent"))
				return nil
			}
			fmt.Println(cli.WarningStyle.Render(
				fmt.Sprintf("✓ Corrected %d category and %d account balances", catFixed, acctFixed)))
			return nil
		},
	}
}
