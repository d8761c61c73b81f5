package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/nostrgamer/bitcoinbudget/internal/cli"
	"github.com/nostrgamer/bitcoinbudget/internal/model"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
		Long:  `List, add, edit, and delete transactions. Every mutation keeps category and account balances in lockstep with the transaction amount.`,
	}

	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(editTxCmd())
	cmd.AddCommand(deleteTxCmd())

	return cmd
}

func listTxCmd() *cobra.Command {
	var (
		accountID  string
		categoryID string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var txns []model.Transaction
			switch {
			case accountID != "":
				txns, err = svc.TransactionsByAccount(ctx, accountID)
			case categoryID != "":
				txns, err = svc.TransactionsByCategory(ctx, categoryID)
			default:
				txns, err = svc.Transactions(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			if len(txns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "ID\tDATE\tAMOUNT\tCATEGORY\tACCOUNT\tDESCRIPTION\tTAGS")
			for _, txn := range txns {
				category := txn.CategoryID
				if category == "" {
					category = cli.SubtleStyle.Render("(unassigned)")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					txn.ID, txn.Date.Format(dateLayout), formatAmount(txn.Amount),
					category, txn.AccountID, txn.Description, strings.Join(txn.Tags, ","))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "filter by account id")
	cmd.Flags().StringVar(&categoryID, "category", "", "filter by category id")
	return cmd
}

func addTxCmd() *cobra.Command {
	var (
		accountID   string
		categoryID  string
		description string
		dateStr     string
	)

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record a transaction",
		Long: `Record a transaction in sats. Positive amounts are inflows, negative are
outflows. Without --category the amount sits in the unassigned pool.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			date := time.Now()
			if dateStr != "" {
				if date, err = time.Parse(dateLayout, dateStr); err != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", dateStr)
				}
			}

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			txn := &model.Transaction{
				AccountID:   accountID,
				CategoryID:  categoryID,
				Amount:      amount,
				Description: description,
				Date:        date,
			}
			if err := svc.CreateTransaction(ctx, txn); err != nil {
				return fmt.Errorf("failed to create transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Transaction recorded (%s)", txn.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account id (required)")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id (omit for unassigned)")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&dateStr, "date", "", "date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func editTxCmd() *cobra.Command {
	var (
		amountStr   string
		accountID   string
		categoryID  string
		description string
		clearCat    bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a transaction",
		Long: `Edit a transaction. Changing the amount, account, or category reverses the
old balance effects and applies the new ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			txn, err := svc.GetTransaction(ctx, args[0])
			if err != nil {
				return err
			}

			if amountStr != "" {
				if txn.Amount, err = parseAmount(amountStr); err != nil {
					return err
				}
			}
			if accountID != "" {
				txn.AccountID = accountID
			}
			if clearCat {
				txn.CategoryID = ""
			} else if categoryID != "" {
				txn.CategoryID = categoryID
			}
			if description != "" {
				txn.Description = description
			}

			if err := svc.UpdateTransaction(ctx, txn); err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Transaction updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&amountStr, "amount", "", "new amount")
	cmd.Flags().StringVar(&accountID, "account", "", "new account id")
	cmd.Flags().StringVar(&categoryID, "category", "", "new category id")
	cmd.Flags().BoolVar(&clearCat, "unassign", false, "move to the unassigned pool")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	return cmd
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Long:  `Delete a transaction, reversing its category and account balance effects.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeleteTransaction(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Transaction deleted"))
			return nil
		},
	}
}
