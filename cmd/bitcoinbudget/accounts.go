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

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
		Long:  `List, add, and update the accounts where value physically sits, and move value between them.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(addAccountCmd())
	cmd.AddCommand(closeAccountCmd())
	cmd.AddCommand(accountTransferCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			accts, err := svc.Accounts(ctx)
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			if len(accts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No accounts yet. Use 'bitcoinbudget accounts add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "ID\tNAME\tTYPE\tBALANCE\tON BUDGET\tCLOSED")
			for _, acct := range accts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					acct.ID, acct.Name, acct.Type, formatAmount(acct.Balance),
					boolMark(acct.IsOnBudget), boolMark(acct.IsClosed))
			}
			return nil
		},
	}
}

func addAccountCmd() *cobra.Command {
	var (
		accountType string
		opening     string
		offBudget   bool
		budgetID    string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			openingBalance := int64(0)
			if opening != "" {
				var err error
				if openingBalance, err = parseAmount(opening); err != nil {
					return err
				}
			}

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if budgetID == "" {
				budgets, err := svc.Budgets(ctx)
				if err != nil {
					return err
				}
				if len(budgets) == 0 {
					return fmt.Errorf("no budget found; run 'bitcoinbudget init' first")
				}
				budgetID = budgets[0].ID
			}

			acct, err := svc.CreateAccount(ctx, budgetID, args[0], model.AccountType(accountType), openingBalance, !offBudget)
			if err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Account %q created (%s)", acct.Name, acct.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountType, "type", string(model.AccountTypeChecking), "account type (checking, savings, cash, lightning, cold-storage)")
	cmd.Flags().StringVar(&opening, "balance", "", "opening balance (sats, or btc suffix)")
	cmd.Flags().BoolVar(&offBudget, "off-budget", false, "exclude this account's balance from budget totals")
	cmd.Flags().StringVar(&budgetID, "budget", "", "budget id (defaults to the first budget)")
	return cmd
}

func closeAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <id>",
		Short: "Mark an account closed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			acct, err := svc.GetAccount(ctx, args[0])
			if err != nil {
				return err
			}
			if _, err := svc.UpdateAccount(ctx, acct.ID, acct.Name, acct.Type, acct.IsOnBudget, true, acct.SortOrder); err != nil {
				return fmt.Errorf("failed to close account: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Account closed"))
			return nil
		},
	}
}

func accountTransferCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "transfer <from-id> <to-id> <amount>",
		Short: "Move value between two accounts",
		Long: `Move value between accounts. Rejected if the amount exceeds the source
account's balance. Recorded as two linked transactions that touch no
category envelope.`,
		Args: cobra.ExactArgs(3),
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

			correlationID, err := svc.TransferBetweenAccounts(ctx, args[0], args[1], amount, description, time.Time{})
			if err != nil {
				return fmt.Errorf("account transfer failed: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Transferred %s sats (%s)", args[2], correlationID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "transfer description")
	return cmd
}
