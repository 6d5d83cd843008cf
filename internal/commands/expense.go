package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cashplan-dev/cashplan/internal/id"
	"github.com/cashplan-dev/cashplan/internal/importer"
	"github.com/cashplan-dev/cashplan/internal/ledger"
	"github.com/cashplan-dev/cashplan/internal/model"
	"github.com/cashplan-dev/cashplan/internal/recur"
)

func newExpenseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Manage expenses",
	}
	cmd.AddCommand(newExpenseAddCommand())
	cmd.AddCommand(newExpenseListCommand())
	cmd.AddCommand(newExpenseEditCommand())
	cmd.AddCommand(newExpensePayCommand())
	cmd.AddCommand(newExpenseActualizeCommand())
	cmd.AddCommand(newExpenseDeleteCommand())
	cmd.AddCommand(newExpenseImportCommand())
	return cmd
}

func newExpenseAddCommand() *cobra.Command {
	var amount, due string
	var projected bool

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a one-off expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			amt, err := parseAmount(amount)
			if err != nil {
				return err
			}
			dueOn, err := parseDate(due)
			if err != nil {
				return err
			}

			e := model.Expense{
				ID:        id.New(),
				Name:      args[0],
				Amount:    amt,
				DueOn:     dueOn,
				Payments:  []model.Payment{},
				Projected: projected,
			}
			a.save(a.ledger().AddExpense(e), "expense: add "+args[0])
			fmt.Printf("Added expense %s (%s)\n", args[0], e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "expense amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&due, "due", "", "due date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("due")
	cmd.Flags().BoolVar(&projected, "projected", false, "mark as projected")

	return cmd
}

func newExpenseListCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, actual and upcoming recurring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			fromDate, toDate, err := resolveWindow(from, to, a.cfg.Windows.OverviewDays)
			if err != nil {
				return err
			}

			l := a.ledger()
			entries := recur.FilterExpenses(l.MergedExpenses(a.horizon(toDate)), fromDate, toDate)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDUE\tNAME\tAMOUNT\tPAID\tKIND")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.ID, model.DateKey(e.DueOn), e.Name, e.Amount.StringFixed(2), e.TotalPaid().StringFixed(2), e.Kind)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "window start YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&to, "to", "", "window end YYYY-MM-DD (default today + overview window)")

	return cmd
}

func newExpenseEditCommand() *cobra.Command {
	var name, amount, due string
	var applyToFuture bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an expense (promotes a recurring instance)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			change, err := buildExpenseChange(cmd, name, amount, due)
			if err != nil {
				return err
			}

			l, err := a.ledger().UpdateExpense(args[0], change, applyToFuture)
			if err != nil {
				return err
			}
			a.save(l, "expense: edit "+args[0])
			fmt.Printf("Updated expense %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&due, "due", "", "new due date")
	cmd.Flags().BoolVar(&applyToFuture, "apply-to-future", false, "also apply the change to the recurring rule")

	return cmd
}

func buildExpenseChange(cmd *cobra.Command, name, amount, due string) (ledger.ExpenseChange, error) {
	var change ledger.ExpenseChange
	if cmd.Flags().Changed("name") {
		change.Name = &name
	}
	if cmd.Flags().Changed("amount") {
		amt, err := parseAmount(amount)
		if err != nil {
			return change, err
		}
		change.Amount = &amt
	}
	if cmd.Flags().Changed("due") {
		d, err := parseDate(due)
		if err != nil {
			return change, err
		}
		change.DueOn = &d
	}
	return change, nil
}

func newExpensePayCommand() *cobra.Command {
	var amount, account, on string

	cmd := &cobra.Command{
		Use:   "pay <id>",
		Short: "Record a payment against an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			amt, err := parseAmount(amount)
			if err != nil {
				return err
			}
			paidOn := time.Now()
			if on != "" {
				if paidOn, err = parseDate(on); err != nil {
					return err
				}
			}

			p := model.Payment{ID: id.New(), Amount: amt, AccountID: account, PaidOn: paidOn}
			l, err := a.ledger().PayExpense(args[0], p)
			if err != nil {
				return err
			}
			a.save(l, "expense: pay "+args[0])
			fmt.Printf("Recorded %s payment against %s\n", amt.StringFixed(2), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "payment amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&account, "account", "", "paying account ID (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&on, "on", "", "payment date (default today)")

	return cmd
}

func newExpenseActualizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "actualize <id>",
		Short: "Commit a projected or recurring expense as actual",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			l, err := a.ledger().ActualizeExpense(args[0])
			if err != nil {
				return err
			}
			a.save(l, "expense: actualize "+args[0])
			fmt.Printf("Actualized expense %s\n", args[0])
			return nil
		},
	}
}

func newExpenseDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			l, err := a.ledger().DeleteExpense(args[0])
			if err != nil {
				return err
			}
			a.save(l, "expense: delete "+args[0])
			fmt.Printf("Deleted expense %s\n", args[0])
			return nil
		},
	}
}

func newExpenseImportCommand() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import paid expenses from a bank-style CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer f.Close()

			res, err := importer.ReadExpenses(f, account)
			if err != nil {
				return err
			}

			l := a.ledger()
			for _, e := range res.Expenses {
				l = l.AddExpense(e)
			}
			a.save(l, fmt.Sprintf("expense: import %d records", len(res.Expenses)))
			fmt.Printf("Imported %d expenses (%d skipped)\n", len(res.Expenses), res.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "account for rows without one (required)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
