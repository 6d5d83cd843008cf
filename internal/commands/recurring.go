package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cashplan-dev/cashplan/internal/id"
	"github.com/cashplan-dev/cashplan/internal/model"
)

func newRecurringCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring rules",
	}
	cmd.AddCommand(newRecurringExpenseCommand())
	cmd.AddCommand(newRecurringIncomeCommand())
	return cmd
}

func newRecurringExpenseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Recurring expense rules",
	}
	cmd.AddCommand(newRecurringExpenseAddCommand())
	cmd.AddCommand(newRecurringExpenseListCommand())
	cmd.AddCommand(newRecurringExpenseSetActiveCommand("pause", false))
	cmd.AddCommand(newRecurringExpenseSetActiveCommand("resume", true))
	cmd.AddCommand(newRecurringExpenseDeleteCommand())
	return cmd
}

func newRecurringExpenseAddCommand() *cobra.Command {
	var amount, frequency, start string
	var projected bool

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a recurring expense rule",
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
			freq, err := parseFrequency(frequency)
			if err != nil {
				return err
			}
			startDate := time.Now()
			if start != "" {
				if startDate, err = parseDate(start); err != nil {
					return err
				}
			}

			rule := model.RecurringExpense{
				ID:        id.New(),
				Name:      args[0],
				Amount:    amt,
				Frequency: freq,
				StartDate: startDate,
				Projected: projected,
				Active:    true,
			}
			a.save(a.ledger().AddRecurringExpense(rule), "recurring: add expense "+args[0])
			fmt.Printf("Added recurring expense %s (%s)\n", args[0], rule.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount per occurrence (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&frequency, "frequency", "", "weekly, biweekly, monthly, quarterly, yearly (required)")
	_ = cmd.MarkFlagRequired("frequency")
	cmd.Flags().StringVar(&start, "start", "", "first occurrence date (default today)")
	cmd.Flags().BoolVar(&projected, "projected", false, "occurrences start as projected")

	return cmd
}

func newRecurringExpenseListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recurring expense rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tAMOUNT\tFREQUENCY\tSTART\tACTIVE")
			for _, r := range a.ledger().RecurringExpenses {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n",
					r.ID, r.Name, r.Amount.StringFixed(2), r.Frequency, model.DateKey(r.StartDate), r.Active)
			}
			return w.Flush()
		},
	}
}

func newRecurringExpenseSetActiveCommand(use string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: use + " a recurring expense rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			l, err := a.ledger().SetRecurringExpenseActive(args[0], active)
			if err != nil {
				return err
			}
			a.save(l, "recurring: "+use+" expense "+args[0])
			fmt.Printf("Rule %s is now %s\n", args[0], activeWord(active))
			return nil
		},
	}
}

func newRecurringExpenseDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recurring expense rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			l, err := a.ledger().DeleteRecurringExpense(args[0])
			if err != nil {
				return err
			}
			a.save(l, "recurring: delete expense "+args[0])
			fmt.Printf("Deleted rule %s\n", args[0])
			return nil
		},
	}
}

func newRecurringIncomeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Recurring income rules",
	}
	cmd.AddCommand(newRecurringIncomeAddCommand())
	cmd.AddCommand(newRecurringIncomeListCommand())
	cmd.AddCommand(newRecurringIncomeSetActiveCommand("pause", false))
	cmd.AddCommand(newRecurringIncomeSetActiveCommand("resume", true))
	cmd.AddCommand(newRecurringIncomeDeleteCommand())
	return cmd
}

func newRecurringIncomeAddCommand() *cobra.Command {
	var amount, frequency, start, account string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a recurring income rule",
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
			freq, err := parseFrequency(frequency)
			if err != nil {
				return err
			}
			startDate := time.Now()
			if start != "" {
				if startDate, err = parseDate(start); err != nil {
					return err
				}
			}

			rule := model.RecurringIncome{
				ID:        id.New(),
				Name:      args[0],
				Amount:    amt,
				Frequency: freq,
				StartDate: startDate,
				AccountID: account,
				Active:    true,
			}
			a.save(a.ledger().AddRecurringIncome(rule), "recurring: add income "+args[0])
			fmt.Printf("Added recurring income %s (%s)\n", args[0], rule.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount per occurrence (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&frequency, "frequency", "", "weekly, biweekly, monthly, quarterly, yearly (required)")
	_ = cmd.MarkFlagRequired("frequency")
	cmd.Flags().StringVar(&start, "start", "", "first occurrence date (default today)")
	cmd.Flags().StringVar(&account, "account", "", "receiving account ID (required)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func newRecurringIncomeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recurring income rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tAMOUNT\tFREQUENCY\tSTART\tACCOUNT\tACTIVE")
			for _, r := range a.ledger().RecurringIncome {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
					r.ID, r.Name, r.Amount.StringFixed(2), r.Frequency, model.DateKey(r.StartDate), r.AccountID, r.Active)
			}
			return w.Flush()
		},
	}
}

func newRecurringIncomeSetActiveCommand(use string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: use + " a recurring income rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			l, err := a.ledger().SetRecurringIncomeActive(args[0], active)
			if err != nil {
				return err
			}
			a.save(l, "recurring: "+use+" income "+args[0])
			fmt.Printf("Rule %s is now %s\n", args[0], activeWord(active))
			return nil
		},
	}
}

func newRecurringIncomeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recurring income rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			l, err := a.ledger().DeleteRecurringIncome(args[0])
			if err != nil {
				return err
			}
			a.save(l, "recurring: delete income "+args[0])
			fmt.Printf("Deleted rule %s\n", args[0])
			return nil
		},
	}
}

func activeWord(active bool) string {
	if active {
		return "active"
	}
	return "paused"
}
