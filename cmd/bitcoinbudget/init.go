package main

import (
	"fmt"

	"github.com/nostrgamer/bitcoinbudget/internal/cli"
	"github.com/nostrgamer/bitcoinbudget/internal/ledger"
	"github.com/nostrgamer/bitcoinbudget/internal/store"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var budgetName string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new encrypted budget",
		Long:  `Create the database, set the encryption password, and create the default budget.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			password, err := promptPassword("Choose a password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			if err := store.InitVault(ctx, db, password); err != nil {
				return err
			}

			sess, err := store.OpenSession(ctx, db, password)
			if err != nil {
				return err
			}
			defer sess.Close()

			svc := ledger.New(db, sess)
			budget, err := svc.CreateBudget(ctx, budgetName)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Budget %q created (%s)", budget.Name, budget.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&budgetName, "name", "My Budget", "budget name")
	return cmd
}
