package storage

import (
	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/choreboard/internal/model"
	"github.com/manav03panchal/choreboard/internal/validate"
)

// UserRepo provides operations for User entities.
type UserRepo struct {
	db  *DB
	seq *badger.Sequence
}

// NewUserRepo creates a new user repository drawing ids from seq.
func NewUserRepo(db *DB, seq *badger.Sequence) *UserRepo {
	return &UserRepo{db: db, seq: seq}
}

// Create validates name and stores a new user with the next id.
func (r *UserRepo) Create(name string) (*model.User, error) {
	name = validate.SanitizeName(name)
	if err := validate.UserName(name); err != nil {
		return nil, err
	}

	id, err := nextID(r.seq)
	if err != nil {
		return nil, err
	}

	user := &model.User{ID: id, Name: name}
	if err := r.db.Set(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get retrieves a user by id.
func (r *UserRepo) Get(id int64) (*model.User, error) {
	user := &model.User{}
	if err := r.db.Get(model.UserKey(id), user); err != nil {
		return nil, err
	}
	return user, nil
}

// Exists reports whether a user with id is stored.
func (r *UserRepo) Exists(id int64) (bool, error) {
	return r.db.Exists(model.UserKey(id))
}

// List retrieves all users in id order.
func (r *UserRepo) List() ([]model.User, error) {
	return GetAllByPrefix[model.User](r.db, model.PrefixUser+":")
}

// nextID draws an id from seq. Sequences start at zero; ids start at one.
func nextID(seq *badger.Sequence) (int64, error) {
	n, err := seq.Next()
	if err != nil {
		return 0, err
	}
	return int64(n) + 1, nil
}
