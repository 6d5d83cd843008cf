package commands

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cashplan-dev/cashplan/internal/forecast"
)

func newBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show current balances, net of recorded payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			l := a.ledger()
			_, projectionEnd := a.windows()
			balances := forecast.CurrentBalance(l.Accounts, l.MergedExpenses(a.horizon(projectionEnd)))

			names := make(map[string]string, len(l.Accounts))
			ids := make([]string, 0, len(l.Accounts))
			for _, acct := range l.Accounts {
				names[acct.ID] = acct.Name
				ids = append(ids, acct.ID)
			}
			sort.Slice(ids, func(i, j int) bool { return names[ids[i]] < names[ids[j]] })

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ACCOUNT\tBALANCE")
			for _, id := range ids {
				fmt.Fprintf(w, "%s\t%s\n", names[id], balances.ByAccount[id].StringFixed(2))
			}
			fmt.Fprintf(w, "TOTAL\t%s\n", balances.Total.StringFixed(2))
			return w.Flush()
		},
	}
}
