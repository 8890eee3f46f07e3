package model

import "strings"

// Layouts for the date and time-of-day fields of a task.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Task is a single assignable chore on a given date and time.
type Task struct {
	ID          int64  `json:"id"`
	UserID      *int64 `json:"user_id"`
	TaskType    string `json:"task_type"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    int    `json:"duration"`
}

// GetKey returns the database key for this task.
func (t *Task) GetKey() string {
	return TaskKey(t.ID)
}

// TaskKey generates the database key for a task id.
func TaskKey(id int64) string {
	return formatKey(PrefixTask, id)
}

// NewTask builds a task from an input and an assigned id.
func NewTask(id int64, in TaskInput) *Task {
	t := &Task{ID: id, UserID: cloneID(in.UserID)}
	t.Apply(in)
	return t
}

// Apply replaces the updatable fields of t with the values in in.
// The assigned user is left untouched.
func (t *Task) Apply(in TaskInput) {
	t.TaskType = strings.TrimSpace(in.TaskType)
	t.Description = in.Description
	t.Date = strings.TrimSpace(in.Date)
	t.Time = strings.TrimSpace(in.Time)
	t.Duration = in.Duration
}

// AssignedTo reports whether the task is assigned to the given user.
func (t *Task) AssignedTo(userID int64) bool {
	return t.UserID != nil && *t.UserID == userID
}

// Input returns the writable fields of the task.
func (t *Task) Input() TaskInput {
	return TaskInput{
		UserID:      cloneID(t.UserID),
		TaskType:    t.TaskType,
		Description: t.Description,
		Date:        t.Date,
		Time:        t.Time,
		Duration:    t.Duration,
	}
}

// ID returns a pointer to id, for optional id fields.
func ID(id int64) *int64 {
	return &id
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
