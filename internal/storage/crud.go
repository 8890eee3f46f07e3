package storage

import (
	"encoding/json"
	"errors"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/choreboard/internal/model"
)

// ErrKeyNotFound is returned when a key is not found in the database.
var ErrKeyNotFound = errors.New("key not found")

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, badger.ErrKeyNotFound)
}

// getJSON reads key within txn and unmarshals it into v.
func getJSON(txn *badger.Txn, key string, v model.Model) error {
	item, err := txn.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

// setJSON stores v under its own key within txn.
func setJSON(txn *badger.Txn, v model.Model) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set([]byte(v.GetKey()), data)
}

// exists reports whether key is present within txn.
func exists(txn *badger.Txn, key string) (bool, error) {
	_, err := txn.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Get retrieves a value by key and unmarshals it into v.
func (d *DB) Get(key string, v model.Model) error {
	return d.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, key, v)
	})
}

// Set stores a model in the database.
func (d *DB) Set(v model.Model) error {
	return d.Update(func(txn *badger.Txn) error {
		return setJSON(txn, v)
	})
}

// Exists checks if a key exists in the database.
func (d *DB) Exists(key string) (bool, error) {
	var found bool
	err := d.db.View(func(txn *badger.Txn) error {
		var err error
		found, err = exists(txn, key)
		return err
	})
	return found, err
}

// GetFilteredByPrefix retrieves the values under prefix for which keep
// returns true, in key order. A nil keep returns every value. A positive
// limit stops iteration once that many values are collected.
func GetFilteredByPrefix[T any](d *DB, prefix string, keep func(*T) bool, limit int) ([]T, error) {
	results := []T{}
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 100
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var v T
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &v)
			}); err != nil {
				return err
			}
			if keep != nil && !keep(&v) {
				continue
			}
			results = append(results, v)
			if limit > 0 && len(results) >= limit {
				break
			}
		}
		return nil
	})
	return results, err
}

// GetAllByPrefix retrieves all values with the given prefix in key order.
func GetAllByPrefix[T any](d *DB, prefix string) ([]T, error) {
	return GetFilteredByPrefix[T](d, prefix, nil, 0)
}
