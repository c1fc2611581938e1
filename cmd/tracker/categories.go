package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/cli"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage transaction categories",
		Long:  `List and add the categories transactions are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.GetCategories(ctx, userID)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'tracker categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "ID\tName\tType\tKeywords")
			for _, cat := range categories {
				keywords := strings.Join(cat.Keywords, ", ")
				if keywords == "" {
					keywords = cli.SubtleStyle.Render("(none)")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", cat.ID, cat.Name, cat.Type, keywords)
			}

			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 1, "user ID")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var (
		userID       int64
		categoryType string
		keywords     []string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long: `Create a new category. Keywords are optional match terms the keyword
signal generator scans message text for.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ct := model.CategoryType(categoryType)
			if ct != model.CategoryTypeIncome && ct != model.CategoryTypeExpense {
				return fmt.Errorf("type must be income or expense, got %q", categoryType)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := store.CreateCategory(ctx, userID, args[0], ct, keywords)
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Created category %q (ID %d)", cat.Name, cat.ID)))
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 1, "user ID")
	cmd.Flags().StringVar(&categoryType, "type", "expense", "category type (income, expense)")
	cmd.Flags().StringSliceVar(&keywords, "keyword", nil, "match term for the keyword generator (repeatable)")

	return cmd
}
