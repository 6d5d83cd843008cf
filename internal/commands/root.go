package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cashplan-dev/cashplan/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "cashplan",
		Short:   "Personal cashflow tracking and projection",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("data", ".", "data directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountCommand())
	rootCmd.AddCommand(newExpenseCommand())
	rootCmd.AddCommand(newIncomeCommand())
	rootCmd.AddCommand(newRecurringCommand())
	rootCmd.AddCommand(newBalanceCommand())
	rootCmd.AddCommand(newProjectionCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}
