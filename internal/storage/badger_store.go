package storage

import (
	"context"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/choreboard/internal/errors"
	"github.com/manav03panchal/choreboard/internal/model"
	"github.com/manav03panchal/choreboard/internal/query"
)

// sequenceBandwidth is the number of ids leased from disk at a time.
const sequenceBandwidth = 16

// BadgerStore implements Store on an embedded Badger database.
type BadgerStore struct {
	db      *DB
	userSeq *badger.Sequence
	taskSeq *badger.Sequence
	users   *UserRepo
	tasks   *TaskRepo
}

// NewBadgerStore builds a store on an open database. The store owns db and
// closes it on Close.
func NewBadgerStore(db *DB) (*BadgerStore, error) {
	userSeq, err := db.db.GetSequence([]byte(model.SequenceKey(model.PrefixUser)), sequenceBandwidth)
	if err != nil {
		return nil, errors.NewStoreError("open", err)
	}
	taskSeq, err := db.db.GetSequence([]byte(model.SequenceKey(model.PrefixTask)), sequenceBandwidth)
	if err != nil {
		userSeq.Release()
		return nil, errors.NewStoreError("open", err)
	}

	return &BadgerStore{
		db:      db,
		userSeq: userSeq,
		taskSeq: taskSeq,
		users:   NewUserRepo(db, userSeq),
		tasks:   NewTaskRepo(db, taskSeq),
	}, nil
}

// AddUser validates name and stores a new user.
func (s *BadgerStore) AddUser(ctx context.Context, name string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStoreError("add user", err)
	}
	user, err := s.users.Create(name)
	if err != nil {
		return nil, errors.NewStoreError("add user", err)
	}
	return user, nil
}

// ListUsers returns every user in id order.
func (s *BadgerStore) ListUsers(ctx context.Context) ([]model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStoreError("list users", err)
	}
	users, err := s.users.List()
	if err != nil {
		return nil, errors.NewStoreError("list users", err)
	}
	return users, nil
}

// AddTask validates in and stores a new task.
func (s *BadgerStore) AddTask(ctx context.Context, in model.TaskInput) (*model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStoreError("add task", err)
	}
	task, err := s.tasks.Create(in)
	if err != nil {
		return nil, errors.NewStoreError("add task", err)
	}
	return task, nil
}

// GetTask returns task id, or a NotFoundError.
func (s *BadgerStore) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStoreError("get task", err)
	}
	task, err := s.tasks.Get(id)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return nil, errors.NewNotFoundError("task", id)
		}
		return nil, errors.NewStoreError("get task", err)
	}
	return task, nil
}

// ListTasks returns the tasks matching c in id order.
func (s *BadgerStore) ListTasks(ctx context.Context, c query.Criteria) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStoreError("list tasks", err)
	}
	tasks, err := s.tasks.List(c)
	if err != nil {
		return nil, errors.NewStoreError("list tasks", err)
	}
	return tasks, nil
}

// UpdateTask replaces the updatable fields of task id.
func (s *BadgerStore) UpdateTask(ctx context.Context, id int64, in model.TaskInput) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.NewStoreError("update task", err)
	}
	n, err := s.tasks.Update(id, in)
	if err != nil {
		return 0, errors.NewStoreError("update task", err)
	}
	return n, nil
}

// DeleteTask removes task id.
func (s *BadgerStore) DeleteTask(ctx context.Context, id int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.NewStoreError("delete task", err)
	}
	n, err := s.tasks.Delete(id)
	if err != nil {
		return 0, errors.NewStoreError("delete task", err)
	}
	return n, nil
}

// Ping runs an integrity check over a sample of entries.
func (s *BadgerStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return CheckIntegrity(s.db).Err()
}

// Close releases unused leased ids and closes the database.
func (s *BadgerStore) Close() error {
	var firstErr error
	for _, seq := range []*badger.Sequence{s.userSeq, s.taskSeq} {
		if err := seq.Release(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := s.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
