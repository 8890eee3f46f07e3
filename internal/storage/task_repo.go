package storage

import (
	"strconv"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/choreboard/internal/errors"
	"github.com/manav03panchal/choreboard/internal/model"
	"github.com/manav03panchal/choreboard/internal/query"
	"github.com/manav03panchal/choreboard/internal/validate"
)

// TaskRepo provides operations for Task entities.
type TaskRepo struct {
	db  *DB
	seq *badger.Sequence
}

// NewTaskRepo creates a new task repository drawing ids from seq.
func NewTaskRepo(db *DB, seq *badger.Sequence) *TaskRepo {
	return &TaskRepo{db: db, seq: seq}
}

// Create validates in and stores a new task with the next id. A present
// user id must reference a stored user.
func (r *TaskRepo) Create(in model.TaskInput) (*model.Task, error) {
	in = validate.SanitizeTaskInput(in)
	if err := validate.TaskInput(in); err != nil {
		return nil, err
	}

	var task *model.Task
	err := r.db.Update(func(txn *badger.Txn) error {
		if in.UserID != nil {
			ok, err := exists(txn, model.UserKey(*in.UserID))
			if err != nil {
				return err
			}
			if !ok {
				return unknownUser(*in.UserID)
			}
		}

		id, err := nextID(r.seq)
		if err != nil {
			return err
		}
		task = model.NewTask(id, in)
		return setJSON(txn, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Get retrieves a task by id.
func (r *TaskRepo) Get(id int64) (*model.Task, error) {
	task := &model.Task{}
	if err := r.db.Get(model.TaskKey(id), task); err != nil {
		return nil, err
	}
	return task, nil
}

// List retrieves the tasks matching c in id order.
func (r *TaskRepo) List(c query.Criteria) ([]model.Task, error) {
	var keep func(*model.Task) bool
	if !c.IsEmpty() {
		keep = c.Match
	}
	return GetFilteredByPrefix(r.db, model.PrefixTask+":", keep, 0)
}

// Update replaces the updatable fields of task id. It returns 0 when the
// task does not exist.
func (r *TaskRepo) Update(id int64, in model.TaskInput) (int64, error) {
	in = validate.SanitizeTaskInput(in)
	if err := validate.TaskInput(in); err != nil {
		return 0, err
	}

	var affected int64
	err := r.db.Update(func(txn *badger.Txn) error {
		task := &model.Task{}
		if err := getJSON(txn, model.TaskKey(id), task); err != nil {
			if IsErrKeyNotFound(err) {
				return nil
			}
			return err
		}
		task.Apply(in)
		if err := setJSON(txn, task); err != nil {
			return err
		}
		affected = 1
		return nil
	})
	return affected, err
}

// Delete removes task id. It returns 0 when the task does not exist.
func (r *TaskRepo) Delete(id int64) (int64, error) {
	var affected int64
	err := r.db.Update(func(txn *badger.Txn) error {
		key := model.TaskKey(id)
		ok, err := exists(txn, key)
		if err != nil || !ok {
			return err
		}
		if err := txn.Delete([]byte(key)); err != nil {
			return err
		}
		affected = 1
		return nil
	})
	return affected, err
}

func unknownUser(id int64) error {
	return errors.NewValidationErrorWithValue("user_id", strconv.FormatInt(id, 10),
		"references a user that does not exist", "Run 'choreboard user list' to see user ids",
		errors.ErrUnknownUser)
}
