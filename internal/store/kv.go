package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Collection keys, one per top-level collection.
const (
	KeyAccounts          = "accounts"
	KeyExpenses          = "expenses"
	KeyIncome            = "income"
	KeyRecurringExpenses = "recurring-expenses"
	KeyRecurringIncome   = "recurring-income"
)

// KV is the persistence collaborator: a per-user key/value store of
// serialized collections. Implementations absorb their own failures:
// a failed Get reads as "no data yet", and a failed Set or Delete
// reports false, so callers never see an error from this boundary.
type KV interface {
	Get(userID, key string) (string, bool)
	Set(userID, key, value string) bool
	Delete(userID, key string) bool
}

// FileKV stores each value as a file under <root>/<userID>/<key>.json.
type FileKV struct {
	root string
	log  *logrus.Logger
}

// NewFileKV creates a file-backed KV rooted at dir.
func NewFileKV(dir string, log *logrus.Logger) *FileKV {
	return &FileKV{root: dir, log: log}
}

// Get reads a stored value. A missing file is not logged; it is the normal
// "no data yet" state for a new user.
func (s *FileKV) Get(userID, key string) (string, bool) {
	data, err := os.ReadFile(s.path(userID, key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false
	}
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("store read failed")
		return "", false
	}
	return string(data), true
}

// Set writes a value, creating the user directory as needed.
func (s *FileKV) Set(userID, key, value string) bool {
	dir := filepath.Join(s.root, userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("store mkdir failed")
		return false
	}
	if err := os.WriteFile(s.path(userID, key), []byte(value), 0o644); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("store write failed")
		return false
	}
	return true
}

// Delete removes a stored value. Deleting an absent key succeeds.
func (s *FileKV) Delete(userID, key string) bool {
	err := os.Remove(s.path(userID, key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.WithError(err).WithField("key", key).Warn("store delete failed")
		return false
	}
	return true
}

func (s *FileKV) path(userID, key string) string {
	return filepath.Join(s.root, userID, key+".json")
}
