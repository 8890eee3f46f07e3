package storage

import (
	"os"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
)

// DB wraps a Badger database connection. Write transactions are serialized
// through writeMu, so concurrent writes to one key never surface as
// badger.ErrConflict and the last commit wins.
type DB struct {
	db      *badger.DB
	path    string
	writeMu sync.Mutex
}

// OpenDB opens or creates a Badger database. An empty path or InMemory opens
// an in-memory database.
func OpenDB(opts Options) (*DB, error) {
	var badgerOpts badger.Options
	path := ""

	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		path = opts.Path
		if path == "" {
			path = DefaultPath(DriverBadger)
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, err
		}
		badgerOpts = badger.DefaultOptions(path)
	}

	// Reduce logging noise
	badgerOpts = badgerOpts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}

	return &DB{db: db, path: path}, nil
}

// Update runs fn in a read-write transaction, one writer at a time.
func (d *DB) Update(fn func(txn *badger.Txn) error) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	return d.db.Update(fn)
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the database directory, empty when in memory.
func (d *DB) Path() string {
	return d.path
}

// Badger returns the underlying Badger database for advanced operations.
func (d *DB) Badger() *badger.DB {
	return d.db
}
