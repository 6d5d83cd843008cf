package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cashplan-dev/cashplan/internal/config"
	"github.com/cashplan-dev/cashplan/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var user string
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new cashplan data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir, user, useGit)
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user ID scoping the stored data (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().BoolVar(&useGit, "git", false, "initialize a git repository and auto-commit saves")

	return cmd
}

func runInit(dir, user string, useGit bool) error {
	if err := os.MkdirAll(filepath.Join(dir, storeDir), 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	cfg := config.Default(user)
	cfg.Git.AutoCommit = useGit
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if useGit {
		if err := gitops.Init(dir); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
		hash, err := gitops.Snapshot(dir, "init: cashplan data directory", cfg.Git.AuthorName, cfg.Git.AuthorEmail)
		if err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
		fmt.Printf("Initialized cashplan directory at %s (%s)\n", dir, hash)
		return nil
	}

	fmt.Printf("Initialized cashplan directory at %s\n", dir)
	return nil
}
