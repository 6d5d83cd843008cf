package id

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cashplan-dev/cashplan/internal/model"
)

const instancePrefix = "recurring-"

// New returns a fresh identifier for a persisted record.
func New() string {
	return uuid.NewString()
}

// FormatInstanceID returns the identifier of a synthesized occurrence of a
// recurring rule, like "recurring-<ruleID>-2026-01-15". The ID encodes the
// full (rule, date) coordinate so promotion can rebuild the instance without
// carrying extra state.
func FormatInstanceID(ruleID string, on time.Time) string {
	return instancePrefix + ruleID + "-" + on.Format(model.DateFormat)
}

// IsInstanceID reports whether an identifier names a synthesized occurrence
// rather than a persisted record.
func IsInstanceID(id string) bool {
	_, _, err := ParseInstanceID(id)
	return err == nil
}

// ParseInstanceID splits an instance ID back into its rule ID and occurrence
// date. The date is the trailing "YYYY-MM-DD" segment; everything between the
// prefix and the date belongs to the rule ID.
func ParseInstanceID(id string) (ruleID string, on time.Time, err error) {
	if !strings.HasPrefix(id, instancePrefix) {
		return "", time.Time{}, fmt.Errorf("not an instance ID: %q", id)
	}
	rest := strings.TrimPrefix(id, instancePrefix)

	// Rule IDs may themselves contain hyphens, so take the date off the end.
	if len(rest) < len(model.DateFormat)+2 {
		return "", time.Time{}, fmt.Errorf("invalid instance ID: %q", id)
	}
	cut := len(rest) - len(model.DateFormat)
	ruleID, dateStr := rest[:cut-1], rest[cut:]
	if rest[cut-1] != '-' || ruleID == "" {
		return "", time.Time{}, fmt.Errorf("invalid instance ID: %q", id)
	}

	on, err = time.Parse(model.DateFormat, dateStr)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid date in instance ID %q: %w", id, err)
	}
	return ruleID, on, nil
}
