package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/nostrgamer/bitcoinbudget/internal/cli"
	"github.com/nostrgamer/bitcoinbudget/internal/model"
	"github.com/spf13/cobra"
)

func transferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move value between category envelopes",
		Long: `Move value between category envelopes. Use the id "unassigned" on either
side to allocate from or release back to the unassigned pool.`,
	}

	cmd.AddCommand(addTransferCmd())
	cmd.AddCommand(listTransfersCmd())
	cmd.AddCommand(deleteTransferCmd())

	return cmd
}

func addTransferCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <from-id> <to-id> <amount>",
		Short: "Create a category transfer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			transfer, err := svc.CreateTransfer(ctx, args[0], args[1], amount, description, time.Time{})
			if err != nil {
				return fmt.Errorf("transfer failed: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Transfer created (%s)", transfer.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "transfer description")
	return cmd
}

func listTransfersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List category transfers, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			transfers, err := svc.Transfers(ctx)
			if err != nil {
				return fmt.Errorf("failed to list transfers: %w", err)
			}

			if len(transfers) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transfers."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "ID\tDATE\tFROM\tTO\tAMOUNT\tDESCRIPTION")
			for _, tr := range transfers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					tr.ID, tr.Date.Format(dateLayout), renderPool(tr.FromCategoryID),
					renderPool(tr.ToCategoryID), formatAmount(tr.Amount), tr.Description)
			}
			return nil
		},
	}
}

func deleteTransferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transfer, reversing its balance effects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeleteTransfer(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete transfer: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Transfer deleted"))
			return nil
		},
	}
}

func renderPool(categoryID string) string {
	if categoryID == model.UnassignedCategoryID {
		return cli.SubtleStyle.Render("(unassigned)")
	}
	return categoryID
}
