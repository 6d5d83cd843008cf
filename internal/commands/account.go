package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cashplan-dev/cashplan/internal/forecast"
	"github.com/cashplan-dev/cashplan/internal/id"
	"github.com/cashplan-dev/cashplan/internal/model"
)

func newAccountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage cash accounts",
	}
	cmd.AddCommand(newAccountAddCommand())
	cmd.AddCommand(newAccountListCommand())
	cmd.AddCommand(newAccountDeleteCommand())
	return cmd
}

func newAccountAddCommand() *cobra.Command {
	var balance, asOf string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			amt, err := parseAmount(balance)
			if err != nil {
				return err
			}
			asOfDate := time.Now()
			if asOf != "" {
				if asOfDate, err = parseDate(asOf); err != nil {
					return err
				}
			}

			account := model.Account{ID: id.New(), Name: args[0], Balance: amt, AsOf: asOfDate}
			a.save(a.ledger().AddAccount(account), "account: add "+args[0])
			fmt.Printf("Added account %s (%s)\n", args[0], account.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&balance, "balance", "", "snapshot balance (required)")
	_ = cmd.MarkFlagRequired("balance")
	cmd.Flags().StringVar(&asOf, "as-of", "", "balance snapshot date (default today)")

	return cmd
}

func newAccountListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts with rolling balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			l := a.ledger()
			balances := forecast.CurrentBalance(l.Accounts, l.MergedExpenses(a.horizon(time.Now())))

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSNAPSHOT\tCURRENT")
			for _, acct := range l.Accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", acct.ID, acct.Name, acct.Balance.StringFixed(2), balances.ByAccount[acct.ID].StringFixed(2))
			}
			fmt.Fprintf(w, "\t\tTOTAL\t%s\n", balances.Total.StringFixed(2))
			return w.Flush()
		},
	}
}

func newAccountDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			l, err := a.ledger().DeleteAccount(args[0])
			if err != nil {
				return err
			}
			a.save(l, "account: delete "+args[0])
			fmt.Printf("Deleted account %s\n", args[0])
			return nil
		},
	}
}
