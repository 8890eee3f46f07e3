package storage

import (
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// integritySample is the number of entries read by CheckIntegrity.
const integritySample = 100

// IntegrityStatus is the result of a database health check.
type IntegrityStatus struct {
	Healthy    bool      `json:"healthy"`
	LastCheck  time.Time `json:"last_check"`
	Checked    int       `json:"checked"`
	ErrorCount int       `json:"error_count"`
	Errors     []string  `json:"errors,omitempty"`
}

// Err returns a summary error when the check found problems.
func (s *IntegrityStatus) Err() error {
	if s.Healthy {
		return nil
	}
	if len(s.Errors) == 0 {
		return fmt.Errorf("database unhealthy")
	}
	return fmt.Errorf("database unhealthy: %s (%d errors)", s.Errors[0], s.ErrorCount)
}

// CheckIntegrity reads a sample of entries to detect unreadable values.
func CheckIntegrity(db *DB) *IntegrityStatus {
	status := &IntegrityStatus{LastCheck: time.Now(), Healthy: true}

	if db == nil || db.db == nil || db.db.IsClosed() {
		status.Healthy = false
		status.ErrorCount = 1
		status.Errors = append(status.Errors, "database not open")
		return status
	}

	err := db.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 10
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid() && status.Checked < integritySample; it.Next() {
			item := it.Item()
			if err := item.Value(func([]byte) error { return nil }); err != nil {
				status.Errors = append(status.Errors, fmt.Sprintf("unreadable value at key %s", item.Key()))
				status.ErrorCount++
			}
			status.Checked++
		}
		return nil
	})
	if err != nil {
		status.Errors = append(status.Errors, fmt.Sprintf("iteration error: %v", err))
		status.ErrorCount++
	}

	status.Healthy = status.ErrorCount == 0
	return status
}
