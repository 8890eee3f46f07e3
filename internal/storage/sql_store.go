package storage

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver

	"github.com/manav03panchal/choreboard/internal/errors"
	"github.com/manav03panchal/choreboard/internal/model"
	"github.com/manav03panchal/choreboard/internal/query"
	"github.com/manav03panchal/choreboard/internal/validate"
)

const (
	usersTable = "users"
	tasksTable = "tasks"
)

var taskColumns = []string{"id", "user_id", "task_type", "description", "date", "time", "duration"}

// SQLStore implements Store on a relational database: sqlite through
// modernc.org/sqlite or postgres through pgx.
type SQLStore struct {
	db     *sql.DB
	driver Driver
	sb     sq.StatementBuilderType
}

// SQLiteDSN returns the DSN for a sqlite database file with foreign keys on.
// An empty path or inMemory selects a private in-memory database.
func SQLiteDSN(path string, inMemory bool) string {
	if inMemory || path == "" || path == ":memory:" {
		return "file::memory:?_pragma=foreign_keys(1)"
	}
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// OpenSQL opens a sqlite or postgres store and creates its tables.
func OpenSQL(ctx context.Context, driver Driver, opts Options) (*SQLStore, error) {
	var (
		db     *sql.DB
		err    error
		schema []string
		sb     = sq.StatementBuilder
	)

	switch driver {
	case DriverSQLite:
		dsn := opts.DSN
		if dsn == "" {
			path := opts.Path
			if !opts.InMemory && path == "" {
				path = DefaultPath(DriverSQLite)
			}
			if !opts.InMemory && path != "" && path != ":memory:" {
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					return nil, errors.NewStoreError("open", err)
				}
			}
			dsn = SQLiteDSN(path, opts.InMemory)
		}
		db, err = sql.Open("sqlite", dsn)
		if err != nil {
			return nil, errors.NewStoreError("open", err)
		}
		// sqlite serialises writers; an in-memory database also exists
		// only on its own connection.
		db.SetMaxOpenConns(1)
		schema = sqliteSchema
		sb = sb.PlaceholderFormat(sq.Question)
	case DriverPostgres:
		if opts.DSN == "" {
			return nil, errors.NewStoreError("open", fmt.Errorf("postgres requires a DSN"))
		}
		db, err = sql.Open("pgx", opts.DSN)
		if err != nil {
			return nil, errors.NewStoreError("open", err)
		}
		schema = postgresSchema
		sb = sb.PlaceholderFormat(sq.Dollar)
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownDriver, driver)
	}

	s := &SQLStore{db: db, driver: driver, sb: sb}
	if err := s.migrate(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context, schema []string) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.NewStoreError("migrate", err)
		}
	}
	return nil
}

// Driver returns the backend in use.
func (s *SQLStore) Driver() Driver {
	return s.driver
}

// AddUser validates name and inserts a new user.
func (s *SQLStore) AddUser(ctx context.Context, name string) (*model.User, error) {
	name = validate.SanitizeName(name)
	if err := validate.UserName(name); err != nil {
		return nil, err
	}

	var id int64
	err := s.sb.Insert(usersTable).
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&id)
	if err != nil {
		return nil, errors.NewStoreError("add user", err)
	}
	return &model.User{ID: id, Name: name}, nil
}

// ListUsers returns every user in id order.
func (s *SQLStore) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.sb.Select("id", "name").
		From(usersTable).
		OrderBy("id").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, errors.NewStoreError("list users", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, errors.NewStoreError("list users", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("list users", err)
	}
	return users, nil
}

// AddTask validates in and inserts a new task. A present user id must
// reference a stored user.
func (s *SQLStore) AddTask(ctx context.Context, in model.TaskInput) (*model.Task, error) {
	in = validate.SanitizeTaskInput(in)
	if err := validate.TaskInput(in); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.NewStoreError("add task", err)
	}
	defer tx.Rollback()

	if in.UserID != nil {
		var one int
		err := s.sb.Select("1").
			From(usersTable).
			Where(sq.Eq{"id": *in.UserID}).
			RunWith(tx).
			QueryRowContext(ctx).
			Scan(&one)
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, unknownUser(*in.UserID)
		}
		if err != nil {
			return nil, errors.NewStoreError("add task", err)
		}
	}

	var id int64
	err = s.sb.Insert(tasksTable).
		Columns("user_id", "task_type", "description", "date", "time", "duration").
		Values(nullID(in.UserID), in.TaskType, in.Description, in.Date, in.Time, in.Duration).
		Suffix("RETURNING id").
		RunWith(tx).
		QueryRowContext(ctx).
		Scan(&id)
	if err != nil {
		return nil, errors.NewStoreError("add task", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.NewStoreError("add task", err)
	}
	return model.NewTask(id, in), nil
}

// GetTask returns task id, or a NotFoundError.
func (s *SQLStore) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	row := s.sb.Select(taskColumns...).
		From(tasksTable).
		Where(sq.Eq{"id": id}).
		RunWith(s.db).
		QueryRowContext(ctx)

	task, err := scanTask(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("task", id)
	}
	if err != nil {
		return nil, errors.NewStoreError("get task", err)
	}
	return &task, nil
}

// ListTasks returns the tasks matching c in id order. The criteria are
// evaluated by the database.
func (s *SQLStore) ListTasks(ctx context.Context, c query.Criteria) ([]model.Task, error) {
	rows, err := s.selectTasks(c).RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.NewStoreError("list tasks", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, errors.NewStoreError("list tasks", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("list tasks", err)
	}
	return tasks, nil
}

// selectTasks builds the filtered task query. It mirrors Criteria.Match.
func (s *SQLStore) selectTasks(c query.Criteria) sq.SelectBuilder {
	q := s.sb.Select(taskColumns...).From(tasksTable)
	if c.UserID != nil {
		q = q.Where(sq.Eq{"user_id": *c.UserID})
	}
	if c.TaskType != nil {
		q = q.Where(sq.Eq{"task_type": *c.TaskType})
	}
	if c.DateRangeActive() {
		q = q.Where("date BETWEEN ? AND ?", *c.StartDate, *c.EndDate)
	}
	return q.OrderBy("id")
}

// UpdateTask replaces the updatable fields of task id. user_id is not part
// of the update.
func (s *SQLStore) UpdateTask(ctx context.Context, id int64, in model.TaskInput) (int64, error) {
	in = validate.SanitizeTaskInput(in)
	if err := validate.TaskInput(in); err != nil {
		return 0, err
	}

	res, err := s.sb.Update(tasksTable).
		Set("task_type", in.TaskType).
		Set("description", in.Description).
		Set("date", in.Date).
		Set("time", in.Time).
		Set("duration", in.Duration).
		Where(sq.Eq{"id": id}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return 0, errors.NewStoreError("update task", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.NewStoreError("update task", err)
	}
	return n, nil
}

// DeleteTask removes task id.
func (s *SQLStore) DeleteTask(ctx context.Context, id int64) (int64, error) {
	res, err := s.sb.Delete(tasksTable).
		Where(sq.Eq{"id": id}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return 0, errors.NewStoreError("delete task", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.NewStoreError("delete task", err)
	}
	return n, nil
}

// Ping checks the database connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var (
		t      model.Task
		userID sql.NullInt64
		desc   sql.NullString
	)
	if err := row.Scan(&t.ID, &userID, &t.TaskType, &desc, &t.Date, &t.Time, &t.Duration); err != nil {
		return model.Task{}, err
	}
	if userID.Valid {
		t.UserID = model.ID(userID.Int64)
	}
	t.Description = desc.String
	return t, nil
}

func nullID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

// String identifies the store in logs.
func (s *SQLStore) String() string {
	return "sql(" + string(s.driver) + ")"
}
