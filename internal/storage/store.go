// Package storage provides the persistence layer for choreboard.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/manav03panchal/choreboard/internal/errors"
	"github.com/manav03panchal/choreboard/internal/model"
	"github.com/manav03panchal/choreboard/internal/query"
)

const (
	// AppName is the application name used for data directories.
	AppName = "choreboard"
)

// Driver names a storage backend.
type Driver string

const (
	DriverBadger   Driver = "badger"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// ParseDriver resolves a driver name. Empty means badger.
func ParseDriver(s string) (Driver, error) {
	switch Driver(strings.ToLower(strings.TrimSpace(s))) {
	case "", DriverBadger:
		return DriverBadger, nil
	case DriverSQLite, "sqlite3":
		return DriverSQLite, nil
	case DriverPostgres, "postgresql", "pgx":
		return DriverPostgres, nil
	}
	return "", fmt.Errorf("%w: %q", errors.ErrUnknownDriver, s)
}

// Store persists users and tasks.
//
// Write operations validate their input first and return a ValidationError
// without touching storage when it is rejected. Any failure of the backend
// itself is returned as a StoreError.
type Store interface {
	AddUser(ctx context.Context, name string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)

	AddTask(ctx context.Context, in model.TaskInput) (*model.Task, error)
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	ListTasks(ctx context.Context, c query.Criteria) ([]model.Task, error)
	// UpdateTask replaces the task's type, description, date, time and
	// duration. The assigned user cannot be changed. It returns the number
	// of tasks affected, 0 when id does not exist.
	UpdateTask(ctx context.Context, id int64, in model.TaskInput) (int64, error)
	DeleteTask(ctx context.Context, id int64) (int64, error)

	Close() error
}

// Pinger is implemented by stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures the storage backend.
type Options struct {
	// Driver selects the backend. Empty uses badger.
	Driver Driver
	// Path is the badger directory or sqlite file. Empty uses DefaultPath.
	Path string
	// DSN is the postgres connection string, or an explicit sqlite DSN.
	DSN string
	// InMemory keeps all data in memory. Postgres ignores it.
	InMemory bool
}

// DefaultPath returns the default data location for a driver, following XDG.
func DefaultPath(driver Driver) string {
	if driver == DriverSQLite {
		return filepath.Join(xdg.DataHome, AppName, "choreboard.sqlite")
	}
	return filepath.Join(xdg.DataHome, AppName, "db")
}

// Open opens the backend selected by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	driver, err := ParseDriver(string(opts.Driver))
	if err != nil {
		return nil, err
	}

	switch driver {
	case DriverSQLite, DriverPostgres:
		s, err := OpenSQL(ctx, driver, opts)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		db, err := OpenDB(opts)
		if err != nil {
			return nil, err
		}
		s, err := NewBadgerStore(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return s, nil
	}
}
