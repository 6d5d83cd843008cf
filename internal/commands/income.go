package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cashplan-dev/cashplan/internal/id"
	"github.com/cashplan-dev/cashplan/internal/ledger"
	"github.com/cashplan-dev/cashplan/internal/model"
	"github.com/cashplan-dev/cashplan/internal/recur"
)

func newIncomeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Manage income",
	}
	cmd.AddCommand(newIncomeAddCommand())
	cmd.AddCommand(newIncomeListCommand())
	cmd.AddCommand(newIncomeEditCommand())
	cmd.AddCommand(newIncomeDeleteCommand())
	return cmd
}

func newIncomeAddCommand() *cobra.Command {
	var amount, expected, account string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a one-off income",
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
			expectedOn, err := parseDate(expected)
			if err != nil {
				return err
			}

			in := model.Income{
				ID:         id.New(),
				Name:       args[0],
				Amount:     amt,
				ExpectedOn: expectedOn,
				AccountID:  account,
			}
			a.save(a.ledger().AddIncome(in), "income: add "+args[0])
			fmt.Printf("Added income %s (%s)\n", args[0], in.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "income amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&expected, "expected", "", "expected date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("expected")
	cmd.Flags().StringVar(&account, "account", "", "receiving account ID (required)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func newIncomeListCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List income, actual and upcoming recurring",
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
			entries := recur.FilterIncome(l.MergedIncome(a.horizon(toDate)), fromDate, toDate)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEXPECTED\tNAME\tAMOUNT\tACCOUNT\tKIND")
			for _, in := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					in.ID, model.DateKey(in.ExpectedOn), in.Name, in.Amount.StringFixed(2), in.AccountID, in.Kind)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "window start YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&to, "to", "", "window end YYYY-MM-DD (default today + overview window)")

	return cmd
}

func newIncomeEditCommand() *cobra.Command {
	var name, amount, expected, account string
	var applyToFuture bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an income (promotes a recurring instance)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			var change ledger.IncomeChange
			if cmd.Flags().Changed("name") {
				change.Name = &name
			}
			if cmd.Flags().Changed("amount") {
				amt, err := parseAmount(amount)
				if err != nil {
					return err
				}
				change.Amount = &amt
			}
			if cmd.Flags().Changed("expected") {
				d, err := parseDate(expected)
				if err != nil {
					return err
				}
				change.ExpectedOn = &d
			}
			if cmd.Flags().Changed("account") {
				change.AccountID = &account
			}

			l, err := a.ledger().UpdateIncome(args[0], change, applyToFuture)
			if err != nil {
				return err
			}
			a.save(l, "income: edit "+args[0])
			fmt.Printf("Updated income %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&expected, "expected", "", "new expected date")
	cmd.Flags().StringVar(&account, "account", "", "new receiving account ID")
	cmd.Flags().BoolVar(&applyToFuture, "apply-to-future", false, "also apply the change to the recurring rule")

	return cmd
}

func newIncomeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			l, err := a.ledger().DeleteIncome(args[0])
			if err != nil {
				return err
			}
			a.save(l, "income: delete "+args[0])
			fmt.Printf("Deleted income %s\n", args[0])
			return nil
		},
	}
}
