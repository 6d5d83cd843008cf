package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cashplan-dev/cashplan/internal/config"
	"github.com/cashplan-dev/cashplan/internal/gitops"
	"github.com/cashplan-dev/cashplan/internal/ledger"
	"github.com/cashplan-dev/cashplan/internal/model"
	"github.com/cashplan-dev/cashplan/internal/recur"
	"github.com/cashplan-dev/cashplan/internal/store"
)

// storeDir is the subdirectory of the data directory holding the per-user
// collection files.
const storeDir = "store"

// app bundles everything a command needs: config, logger, store, and the
// identity scoping the store calls.
type app struct {
	dataDir string
	cfg     *config.Config
	log     *logrus.Logger
	kv      *store.FileKV
	user    string
}

// loadApp resolves the data directory from the --data flag and opens the
// project found there.
func loadApp(cmd *cobra.Command) (*app, error) {
	dir, err := cmd.Flags().GetString("data")
	if err != nil {
		return nil, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("not a cashplan directory (run cashplan init): %w", err)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	if cfg.User == "" {
		return nil, fmt.Errorf("no user configured in %s", config.FileName)
	}

	return &app{
		dataDir: absDir,
		cfg:     cfg,
		log:     log,
		kv:      store.NewFileKV(filepath.Join(absDir, storeDir), log),
		user:    cfg.User,
	}, nil
}

// ledger loads the user's collections, falling back to seeds where the
// store has nothing usable.
func (a *app) ledger() ledger.Ledger {
	return store.Load(a.kv, a.user, a.log)
}

// save writes the ledger back and, when configured, snapshots the data
// directory in git.
func (a *app) save(l ledger.Ledger, message string) {
	if !store.Save(a.kv, a.user, l) {
		a.log.Warn("some collections failed to save")
	}
	if a.cfg.Git.AutoCommit && gitops.IsRepo(a.dataDir) {
		if _, err := gitops.Snapshot(a.dataDir, message, a.cfg.Git.AuthorName, a.cfg.Git.AuthorEmail); err != nil {
			a.log.WithError(err).Warn("git snapshot failed")
		}
	}
}

// windows returns today's overview and projection window endpoints.
func (a *app) windows() (overviewEnd, projectionEnd time.Time) {
	now := time.Now()
	return now.AddDate(0, 0, a.cfg.Windows.OverviewDays), now.AddDate(0, 0, a.cfg.Windows.ProjectionDays)
}

// horizon computes the expansion end for the current configuration plus an
// explicit range end, so instances always exist past what is being viewed.
func (a *app) horizon(rangeEnd time.Time) time.Time {
	overviewEnd, projectionEnd := a.windows()
	if rangeEnd.After(projectionEnd) {
		projectionEnd = rangeEnd
	}
	return recur.Horizon(overviewEnd, projectionEnd, time.Now())
}

// resolveWindow turns optional from/to flags into a concrete window,
// defaulting to today through today+days.
func resolveWindow(from, to string, days int) (time.Time, time.Time, error) {
	fromDate := time.Now()
	toDate := fromDate.AddDate(0, 0, days)

	var err error
	if from != "" {
		if fromDate, err = parseDate(from); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if to != "" {
		if toDate, err = parseDate(to); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return fromDate, toDate, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be positive, got %s", d)
	}
	return d, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(model.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

func parseFrequency(s string) (model.Frequency, error) {
	f := model.Frequency(s)
	if _, ok := f.Next(time.Now()); !ok {
		return "", fmt.Errorf("unknown frequency %q (weekly, biweekly, monthly, quarterly, yearly)", s)
	}
	return f, nil
}
