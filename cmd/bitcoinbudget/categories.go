package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/nostrgamer/bitcoinbudget/internal/cli"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage budget envelopes",
		Long:  `List, add, update, archive, and delete the category envelopes funds are allocated into.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(archiveCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			cats, err := svc.Categories(ctx)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			if len(cats) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories yet. Use 'bitcoinbudget categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "ID\tNAME\tAVAILABLE\tTARGET\tARCHIVED")
			for _, cat := range cats {
				if cat.IsArchived && !all {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					cat.ID, cat.Name, formatAmount(cat.CurrentAmount),
					formatAmount(cat.TargetAmount), boolMark(cat.IsArchived))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include archived categories")
	return cmd
}

func addCategoryCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			targetAmount := int64(0)
			if target != "" {
				var err error
				if targetAmount, err = parseAmount(target); err != nil {
					return err
				}
			}

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			cat, err := svc.CreateCategory(ctx, args[0], targetAmount)
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Category %q created (%s)", cat.Name, cat.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "target amount (sats, or btc suffix)")
	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		name   string
		target string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category's name or target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			cat, err := svc.GetCategory(ctx, args[0])
			if err != nil {
				return err
			}

			if name == "" {
				name = cat.Name
			}
			targetAmount := cat.TargetAmount
			if target != "" {
				if targetAmount, err = parseAmount(target); err != nil {
					return err
				}
			}

			if _, err := svc.UpdateCategory(ctx, cat.ID, name, targetAmount, cat.IsArchived); err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Category updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&target, "target", "", "new target amount")
	return cmd
}

func archiveCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a category",
		Long:  `Soft-delete a category. Its history and balance are kept; it stops showing in listings.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.ArchiveCategory(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to archive category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Category archived"))
			return nil
		},
	}
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Hard-delete a category",
		Long: `Remove a category record entirely. Transactions and transfers referencing
it are not adjusted; prefer 'archive' unless you know you want this.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				return fmt.Errorf("hard delete does not cascade; pass --force to confirm")
			}

			svc, cleanup, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeleteCategory(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}

			fmt.Println(cli.WarningStyle.Render("✓ Category deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm hard delete")
	return cmd
}
