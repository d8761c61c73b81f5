package main

import (
	"fmt"
	"os"

	"github.com/nostrgamer/bitcoinbudget/internal/cli"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data as a JSON snapshot",
		Long: `Serialize every budget, account, category, transaction, and transfer to
JSON. The output is decrypted plaintext; guard the file accordingly.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := svc.ExportData(ctx)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			if output == "" || output == "-" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0600); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Exported to %s", output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all budget data",
		Long:  `Remove every budget, account, category, transaction, and transfer. The password and empty database remain.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !force {
				return fmt.Errorf("this deletes everything; pass --force to confirm")
			}

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.ClearAllData(ctx); err != nil {
				return fmt.Errorf("reset failed: %w", err)
			}

			fmt.Println(cli.WarningStyle.Render("✓ All data deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm deletion")
	return cmd
}
