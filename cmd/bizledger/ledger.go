package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"bizledger/internal/cli"
	"bizledger/internal/core"
	"bizledger/internal/finance"
)

func vendorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "Manage vendors",
	}
	cmd.AddCommand(vendorsListCmd())
	cmd.AddCommand(vendorsAddCmd())
	cmd.AddCommand(vendorsUpdateCmd())
	cmd.AddCommand(vendorsDeleteCmd())
	return cmd
}

func vendorsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List vendors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli.RenderVendors(cmd.OutOrStdout(), app.stores.Finance.Snapshot().Vendors)
			return nil
		},
	}
}

func vendorsAddCmd() *cobra.Command {
	var category, contact string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a vendor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := core.Vendor{
				Name:        strings.TrimSpace(args[0]),
				Category:    category,
				ContactInfo: contact,
			}
			if err := v.Validate(); err != nil {
				return err
			}
			v, err := app.stores.Finance.AddVendor(v)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render("added vendor "+v.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", finance.VendorClassifications[0],
		"vendor classification ("+strings.Join(finance.VendorClassifications, ", ")+")")
	cmd.Flags().StringVar(&contact, "contact", "", "contact information")
	return cmd
}

func vendorsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a vendor",
		Long:  `Update a vendor. Renaming also rewrites the vendor name cached on its expenses.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch core.VendorPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = core.Ptr(flagString(cmd, "name"))
			}
			if flags.Changed("category") {
				patch.Category = core.Ptr(flagString(cmd, "category"))
			}
			if flags.Changed("contact") {
				patch.ContactInfo = core.Ptr(flagString(cmd, "contact"))
			}
			current, ok := app.stores.Finance.Vendor(args[0])
			if !ok {
				return fmt.Errorf("vendor %s not found", args[0])
			}
			if err := patch.Apply(current).Validate(); err != nil {
				return err
			}
			return app.stores.Finance.UpdateVendor(args[0], patch)
		},
	}
	cmd.Flags().String("name", "", "new name")
	cmd.Flags().String("category", "", "new classification")
	cmd.Flags().String("contact", "", "new contact information")
	return cmd
}

func vendorsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a vendor",
		Long:  `Delete a vendor. Expenses that reference it keep their cached vendor name.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if _, ok := app.stores.Finance.Vendor(args[0]); !ok {
				return fmt.Errorf("vendor %s not found", args[0])
			}
			return app.stores.Finance.DeleteVendor(args[0])
		},
	}
}

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Manage expenses",
	}
	cmd.AddCommand(expensesListCmd())
	cmd.AddCommand(expensesAddCmd())
	cmd.AddCommand(expensesUpdateCmd())
	cmd.AddCommand(expensesDeleteCmd())
	return cmd
}

func expensesListCmd() *cobra.Command {
	var filter finance.ExpenseFilter
	var month string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			expenses := finance.FilterExpenses(app.stores.Finance.Snapshot().Expenses, filter)
			if month != "" {
				key, err := core.ParseMonthKey(month)
				if err != nil {
					return err
				}
				expenses = slices.DeleteFunc(expenses, func(e core.Expense) bool { return !key.Contains(e.Date) })
			}
			cli.RenderExpenses(cmd.OutOrStdout(), finance.SortExpensesNewestFirst(expenses))
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "", "only this category")
	cmd.Flags().StringVar(&filter.VendorName, "vendor", "", "only this vendor name")
	cmd.Flags().StringVar(&month, "month", "", "only this month (YYYY-MM)")
	return cmd
}

type recordFlags struct {
	date, amount, category, description string
}

func (f *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount in won")
	cmd.Flags().StringVar(&f.category, "category", "", "category")
	cmd.Flags().StringVar(&f.description, "desc", "", "description")
}

func (f *recordFlags) parse() (core.Date, core.Money, error) {
	date, err := core.ParseDate(f.date)
	if err != nil {
		return core.Date{}, 0, err
	}
	amount, err := core.ParseAmount(f.amount)
	if err != nil {
		return core.Date{}, 0, err
	}
	return date, amount, nil
}

func expensesAddCmd() *cobra.Command {
	var (
		rf                   recordFlags
		vendorID, vendorName string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, amount, err := rf.parse()
			if err != nil {
				return err
			}
			snap := app.stores.Finance.Snapshot()
			if !slices.Contains(snap.ExpenseCategories, rf.category) {
				return fmt.Errorf("%w: %q", finance.ErrUnknownCategory, rf.category)
			}
			e := core.Expense{
				Date:        date,
				Amount:      amount,
				Category:    rf.category,
				VendorID:    vendorID,
				VendorName:  vendorName,
				Description: rf.description,
			}
			if err := e.Validate(); err != nil {
				return err
			}
			e, err = app.stores.Finance.AddExpense(e)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render("added expense "+e.ID))
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().StringVar(&vendorID, "vendor-id", "", "vendor id (category "+core.VendorCategory+" only)")
	cmd.Flags().StringVar(&vendorName, "vendor-name", "", "vendor name when the vendor is not registered")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func expensesUpdateCmd() *cobra.Command {
	var rf recordFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, ok := app.stores.Finance.Expense(args[0])
			if !ok {
				return fmt.Errorf("expense %s not found", args[0])
			}
			var patch core.ExpensePatch
			flags := cmd.Flags()
			if flags.Changed("date") {
				d, err := core.ParseDate(rf.date)
				if err != nil {
					return err
				}
				patch.Date = &d
			}
			if flags.Changed("amount") {
				a, err := core.ParseAmount(rf.amount)
				if err != nil {
					return err
				}
				patch.Amount = &a
			}
			if flags.Changed("category") {
				patch.Category = &rf.category
			}
			if flags.Changed("desc") {
				patch.Description = &rf.description
			}
			if flags.Changed("vendor-id") {
				patch.VendorID = core.Ptr(flagString(cmd, "vendor-id"))
			}
			if flags.Changed("vendor-name") {
				patch.VendorName = core.Ptr(flagString(cmd, "vendor-name"))
			}
			if err := patch.Apply(current).Validate(); err != nil {
				return err
			}
			return app.stores.Finance.UpdateExpense(args[0], patch)
		},
	}
	rf.register(cmd)
	cmd.Flags().String("vendor-id", "", "vendor id")
	cmd.Flags().String("vendor-name", "", "vendor name")
	return cmd
}

func expensesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if _, ok := app.stores.Finance.Expense(args[0]); !ok {
				return fmt.Errorf("expense %s not found", args[0])
			}
			return app.stores.Finance.DeleteExpense(args[0])
		},
	}
}

func revenuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revenues",
		Short: "Manage revenues",
	}
	cmd.AddCommand(revenuesListCmd())
	cmd.AddCommand(revenuesAddCmd())
	cmd.AddCommand(revenuesUpdateCmd())
	cmd.AddCommand(revenuesDeleteCmd())
	return cmd
}

func revenuesListCmd() *cobra.Command {
	var category, month string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List revenues, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			revenues := app.stores.Finance.Snapshot().Revenues
			var key core.MonthKey
			if month != "" {
				k, err := core.ParseMonthKey(month)
				if err != nil {
					return err
				}
				key = k
			}
			revenues = slices.DeleteFunc(revenues, func(r core.Revenue) bool {
				if category != "" && r.Category != category {
					return true
				}
				return !key.IsZero() && !key.Contains(r.Date)
			})
			cli.RenderRevenues(cmd.OutOrStdout(), finance.SortRevenuesNewestFirst(revenues))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only this category")
	cmd.Flags().StringVar(&month, "month", "", "only this month (YYYY-MM)")
	return cmd
}

func revenuesAddCmd() *cobra.Command {
	var rf recordFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a revenue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, amount, err := rf.parse()
			if err != nil {
				return err
			}
			if !slices.Contains(app.stores.Finance.Snapshot().RevenueCategories, rf.category) {
				return fmt.Errorf("%w: %q", finance.ErrUnknownCategory, rf.category)
			}
			r := core.Revenue{
				Date:        date,
				Amount:      amount,
				Category:    rf.category,
				Description: rf.description,
			}
			if err := r.Validate(); err != nil {
				return err
			}
			r, err = app.stores.Finance.AddRevenue(r)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render("added revenue "+r.ID))
			return nil
		},
	}
	rf.register(cmd)
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func revenuesUpdateCmd() *cobra.Command {
	var rf recordFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a revenue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, ok := app.stores.Finance.Revenue(args[0])
			if !ok {
				return fmt.Errorf("revenue %s not found", args[0])
			}
			var patch core.RevenuePatch
			flags := cmd.Flags()
			if flags.Changed("date") {
				d, err := core.ParseDate(rf.date)
				if err != nil {
					return err
				}
				patch.Date = &d
			}
			if flags.Changed("amount") {
				a, err := core.ParseAmount(rf.amount)
				if err != nil {
					return err
				}
				patch.Amount = &a
			}
			if flags.Changed("category") {
				patch.Category = &rf.category
			}
			if flags.Changed("desc") {
				patch.Description = &rf.description
			}
			if err := patch.Apply(current).Validate(); err != nil {
				return err
			}
			return app.stores.Finance.UpdateRevenue(args[0], patch)
		},
	}
	rf.register(cmd)
	return cmd
}

func revenuesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a revenue",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if _, ok := app.stores.Finance.Revenue(args[0]); !ok {
				return fmt.Errorf("revenue %s not found", args[0])
			}
			return app.stores.Finance.DeleteRevenue(args[0])
		},
	}
}

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense and revenue categories",
	}
	cmd.PersistentFlags().Bool("revenue", false, "act on revenue categories instead of expense categories")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap := app.stores.Finance.Snapshot()
			cli.RenderCategories(cmd.OutOrStdout(), snap.ExpenseCategories, snap.RevenueCategories)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return core.ErrEmptyCategory
			}
			if revenueFlag(cmd) {
				return app.stores.Finance.AddRevenueCategory(name)
			}
			return app.stores.Finance.AddExpenseCategory(name)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a category",
		Long: `Delete a category. The reserved vendor category and the last remaining
category cannot be deleted. Records keep the deleted category name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.stores.Finance.Snapshot()
			if revenueFlag(cmd) {
				if err := finance.CheckRevenueCategoryDeletable(snap, args[0]); err != nil {
					return err
				}
				return app.stores.Finance.DeleteRevenueCategory(args[0])
			}
			if err := finance.CheckExpenseCategoryDeletable(snap, args[0]); err != nil {
				return err
			}
			return app.stores.Finance.DeleteExpenseCategory(args[0])
		},
	})
	return cmd
}

func revenueFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("revenue")
	return v
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
