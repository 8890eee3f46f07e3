package dayview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/choreboard/internal/errors"
	"github.com/manav03panchal/choreboard/internal/model"
	"github.com/manav03panchal/choreboard/internal/validate"
)

func task(id int64, clock string, duration int) model.Task {
	return model.Task{ID: id, UserID: model.ID(1), TaskType: "Cook meal", Date: "2024-03-01", Time: clock, Duration: duration}
}

// =============================================================================
// Bucketize Tests
// =============================================================================

func TestBucketizeScenario(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, UserID: model.ID(1), TaskType: "Cook meal", Date: "2024-03-01", Time: "09:00", Duration: 30},
		{ID: 2, UserID: model.ID(2), TaskType: "Cook meal", Date: "2024-03-01", Time: "09:15", Duration: 15},
	}

	view, err := Bucketize("2024-03-01", tasks)
	require.NoError(t, err)

	require.Len(t, view.Buckets, HoursPerDay)
	assert.Len(t, view.Buckets[9].Tasks, 2)
	assert.Equal(t, "09:15", view.Buckets[9].Tasks[1].Time, "minutes are preserved on the task")
	assert.Equal(t, 2, view.TotalTasks)
	assert.Equal(t, 45, view.TotalDurationMinutes)
}

func TestBucketizeEmptyDay(t *testing.T) {
	view, err := Bucketize("2024-03-10", nil)
	require.NoError(t, err)

	require.Len(t, view.Buckets, HoursPerDay)
	for h, b := range view.Buckets {
		assert.Equal(t, h, b.Hour)
		assert.Equal(t, Label(h), b.Label)
		assert.NotNil(t, b.Tasks)
		assert.Empty(t, b.Tasks)
	}
	assert.Equal(t, "00:00", view.Buckets[0].Label)
	assert.Equal(t, "23:00", view.Buckets[23].Label)
	assert.Nil(t, view.Busiest())
	assert.Empty(t, view.Occupied())
}

func TestBucketizeEveryTaskInExactlyOneBucket(t *testing.T) {
	var tasks []model.Task
	for h := 0; h < 24; h++ {
		tasks = append(tasks, task(int64(h*2+1), Label(h), 10))
		tasks = append(tasks, task(int64(h*2+2), clock(h, 59), 5))
	}

	view, err := Bucketize("2024-03-01", tasks)
	require.NoError(t, err)

	seen := map[int64]int{}
	for h, b := range view.Buckets {
		for _, bt := range b.Tasks {
			seen[bt.ID]++
			hour, err := validate.Clock(bt.Time)
			require.NoError(t, err)
			assert.Equal(t, h, hour)
		}
	}
	assert.Len(t, seen, len(tasks))
	for id, n := range seen {
		assert.Equal(t, 1, n, "task %d", id)
	}
}

func TestBucketizeKeepsInputOrderWithinBucket(t *testing.T) {
	tasks := []model.Task{task(3, "07:45", 5), task(1, "07:05", 5), task(2, "07:30", 5)}

	view, err := Bucketize("2024-03-01", tasks)
	require.NoError(t, err)

	got := view.Buckets[7].Tasks
	require.Len(t, got, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestBucketizeDoesNotFilterByDate(t *testing.T) {
	other := task(1, "10:00", 5)
	other.Date = "2024-03-02"

	view, err := Bucketize("2024-03-01", []model.Task{other})
	require.NoError(t, err)
	assert.Len(t, view.Buckets[10].Tasks, 1)
}

func TestBucketizeInvalidInput(t *testing.T) {
	t.Run("bad_time", func(t *testing.T) {
		_, err := Bucketize("2024-03-01", []model.Task{task(7, "24:10", 5)})
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
		assert.ErrorIs(t, err, errors.ErrInvalidTime)
		assert.Contains(t, err.Error(), "task 7")
	})

	t.Run("unparseable_time", func(t *testing.T) {
		_, err := Bucketize("2024-03-01", []model.Task{task(8, "morning", 5)})
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("bad_date", func(t *testing.T) {
		_, err := Bucketize("03/01/2024", nil)
		assert.ErrorIs(t, err, errors.ErrInvalidDate)
	})
}

// =============================================================================
// DayView Helper Tests
// =============================================================================

func TestDayViewHelpers(t *testing.T) {
	tasks := []model.Task{task(1, "06:00", 5), task(2, "18:10", 5), task(3, "18:40", 5)}

	view, err := Bucketize("2024-03-01", tasks)
	require.NoError(t, err)

	occupied := view.Occupied()
	require.Len(t, occupied, 2)
	assert.Equal(t, 6, occupied[0].Hour)
	assert.Equal(t, 18, occupied[1].Hour)

	busiest := view.Busiest()
	require.NotNil(t, busiest)
	assert.Equal(t, 18, busiest.Hour)

	assert.Nil(t, view.Bucket(24))
	assert.Nil(t, view.Bucket(-1))
	assert.Equal(t, "06:00", view.Bucket(6).Label)
}

func clock(h, m int) string {
	return fmt.Sprintf("%02d:%02d", h, m)
}
