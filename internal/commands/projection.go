package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cashplan-dev/cashplan/internal/export"
	"github.com/cashplan-dev/cashplan/internal/forecast"
	"github.com/cashplan-dev/cashplan/internal/model"
	"github.com/cashplan-dev/cashplan/internal/recur"
)

func newProjectionCommand() *cobra.Command {
	var from, to, csvPath string

	cmd := &cobra.Command{
		Use:   "projection",
		Short: "Project the cash timeline over a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			fromDate, toDate, err := resolveWindow(from, to, a.cfg.Windows.ProjectionDays)
			if err != nil {
				return err
			}

			l := a.ledger()
			horizon := a.horizon(toDate)
			allExpenses := l.MergedExpenses(horizon)
			p := forecast.Timeline(
				l.Accounts,
				allExpenses,
				recur.FilterExpenses(allExpenses, fromDate, toDate),
				recur.FilterIncome(l.MergedIncome(horizon), fromDate, toDate),
			)

			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", csvPath, err)
				}
				defer f.Close()
				if err := export.WriteTimeline(f, p); err != nil {
					return fmt.Errorf("exporting timeline: %w", err)
				}
				fmt.Printf("Wrote %d events to %s\n", len(p.Timeline), csvPath)
				return nil
			}

			fmt.Printf("Current balance: %s\n", p.CurrentBalance.StringFixed(2))
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tTYPE\tNAME\tAMOUNT\tBALANCE")
			for _, ev := range p.Timeline {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					ev.Date.Format(model.DateFormat), ev.Type, ev.Name,
					ev.Amount.StringFixed(2), ev.Balance.StringFixed(2))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("Projected end balance: %s\n", p.EndBalance.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "window start (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&to, "to", "", "window end (YYYY-MM-DD, default today+projection days)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write the timeline as CSV to this file instead of printing")

	return cmd
}
