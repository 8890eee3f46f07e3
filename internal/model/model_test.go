package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Key Tests
// =============================================================================

func TestKeysSortByID(t *testing.T) {
	assert.Equal(t, "task:00000000000000000007", TaskKey(7))
	assert.Equal(t, "user:00000000000000000012", UserKey(12))
	assert.Less(t, TaskKey(9), TaskKey(10))
	assert.Equal(t, "seq:task", SequenceKey(PrefixTask))
}

// =============================================================================
// Task Tests
// =============================================================================

func TestTaskApplyKeepsUser(t *testing.T) {
	task := NewTask(3, TaskInput{UserID: ID(1), TaskType: "Cook meal", Date: "2024-03-01", Time: "09:00", Duration: 30})
	task.Apply(TaskInput{UserID: ID(2), TaskType: " Fold laundry ", Date: "2024-03-02", Time: "10:00", Duration: 15})

	assert.Equal(t, int64(3), task.ID)
	require.NotNil(t, task.UserID)
	assert.Equal(t, int64(1), *task.UserID)
	assert.Equal(t, "Fold laundry", task.TaskType)
	assert.Equal(t, 15, task.Duration)
	assert.True(t, task.AssignedTo(1))
	assert.False(t, task.AssignedTo(2))
}

func TestNewTaskCopiesUserID(t *testing.T) {
	in := TaskInput{UserID: ID(5), TaskType: "Cook meal"}
	task := NewTask(1, in)
	*in.UserID = 9
	assert.Equal(t, int64(5), *task.UserID)
}

func TestTaskJSONNullUser(t *testing.T) {
	data, err := json.Marshal(&Task{ID: 1, TaskType: "Cook meal", Date: "2024-03-01", Time: "09:00", Duration: 30})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"user_id":null`)
}

// =============================================================================
// TaskInput Tests
// =============================================================================

func TestTaskInputUnmarshal(t *testing.T) {
	t.Run("numbers", func(t *testing.T) {
		var in TaskInput
		require.NoError(t, json.Unmarshal([]byte(`{"user_id":2,"task_type":"Cook meal","date":"2024-03-01","time":"09:00","duration":30}`), &in))
		require.NotNil(t, in.UserID)
		assert.Equal(t, int64(2), *in.UserID)
		assert.Equal(t, 30, in.Duration)
	})

	t.Run("numeric_strings", func(t *testing.T) {
		var in TaskInput
		require.NoError(t, json.Unmarshal([]byte(`{"user_id":"4","duration":"45","description":"after dinner"}`), &in))
		require.NotNil(t, in.UserID)
		assert.Equal(t, int64(4), *in.UserID)
		assert.Equal(t, 45, in.Duration)
		assert.Equal(t, "after dinner", in.Description)
	})

	t.Run("empty_user_is_unassigned", func(t *testing.T) {
		var in TaskInput
		require.NoError(t, json.Unmarshal([]byte(`{"user_id":"","task_type":"Cook meal"}`), &in))
		assert.Nil(t, in.UserID)
		assert.Equal(t, 0, in.Duration)
	})

	t.Run("null_user_is_unassigned", func(t *testing.T) {
		var in TaskInput
		require.NoError(t, json.Unmarshal([]byte(`{"user_id":null}`), &in))
		assert.Nil(t, in.UserID)
	})

	t.Run("zero_user_is_kept", func(t *testing.T) {
		var in TaskInput
		require.NoError(t, json.Unmarshal([]byte(`{"user_id":0}`), &in))
		require.NotNil(t, in.UserID)
		assert.Equal(t, int64(0), *in.UserID)
	})

	t.Run("garbage_duration", func(t *testing.T) {
		var in TaskInput
		err := json.Unmarshal([]byte(`{"duration":"half an hour"}`), &in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duration")
	})
}

func TestTaskInputRoundTrip(t *testing.T) {
	task := NewTask(8, TaskInput{UserID: ID(1), TaskType: "Cook meal", Date: "2024-03-01", Time: "09:00", Duration: 30})
	in := task.Input()
	assert.Equal(t, "Cook meal", in.TaskType)
	assert.Equal(t, int64(1), *in.UserID)
}
