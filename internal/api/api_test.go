package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/manav03panchal/choreboard/internal/analysis"
	"github.com/manav03panchal/choreboard/internal/calendar"
	"github.com/manav03panchal/choreboard/internal/dayview"
	"github.com/manav03panchal/choreboard/internal/errors"
	"github.com/manav03panchal/choreboard/internal/model"
	"github.com/manav03panchal/choreboard/internal/output"
	"github.com/manav03panchal/choreboard/internal/query"
	"github.com/manav03panchal/choreboard/internal/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2024, 3, 13, 10, 30, 0, 0, time.UTC)

func setupServer(t *testing.T) (*Server, storage.Store) {
	t.Helper()
	store, err := storage.Open(context.Background(), storage.Options{Driver: storage.DriverSQLite, InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := NewServer(store, Options{
		DefaultTypes: []string{"Empty dishwasher", "Cook meal"},
		Driver:       string(storage.DriverSQLite),
		Now:          func() time.Time { return fixedNow },
	})
	return srv, store
}

func do(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[output.ErrorResponse](t, rec).Error
}

func seedUser(t *testing.T, store storage.Store, name string) *model.User {
	t.Helper()
	u, err := store.AddUser(context.Background(), name)
	require.NoError(t, err)
	return u
}

func seedTask(t *testing.T, store storage.Store, userID *int64, taskType, date, clock string, duration int) *model.Task {
	t.Helper()
	task, err := store.AddTask(context.Background(), model.TaskInput{
		UserID:   userID,
		TaskType: taskType,
		Date:     date,
		Time:     clock,
		Duration: duration,
	})
	require.NoError(t, err)
	return task
}

// ============================================================================
// Tasks
// ============================================================================

func TestCreateTask(t *testing.T) {
	srv, store := setupServer(t)
	alice := seedUser(t, store, "Alice")

	rec := do(t, srv, http.MethodPost, "/api/tasks", map[string]any{
		"user_id":     alice.ID,
		"task_type":   "Cook meal",
		"description": "Pasta",
		"date":        "2024-03-01",
		"time":        "18:30",
		"duration":    30,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	got := decode[model.Task](t, rec)
	assert.NotZero(t, got.ID)
	want := model.Task{
		ID:          got.ID,
		UserID:      model.ID(alice.ID),
		TaskType:    "Cook meal",
		Description: "Pasta",
		Date:        "2024-03-01",
		Time:        "18:30",
		Duration:    30,
	}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestCreateTaskAcceptsStringFields(t *testing.T) {
	srv, store := setupServer(t)
	alice := seedUser(t, store, "Alice")

	body := fmt.Sprintf(`{"user_id":"%d","task_type":"Fold laundry","date":"2024-03-02","time":"09:00","duration":"15"}`, alice.ID)
	rec := do(t, srv, http.MethodPost, "/api/tasks", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	got := decode[model.Task](t, rec)
	require.NotNil(t, got.UserID)
	assert.Equal(t, alice.ID, *got.UserID)
	assert.Equal(t, 15, got.Duration)
}

func TestCreateTaskUnassigned(t *testing.T) {
	srv, _ := setupServer(t)

	rec := do(t, srv, http.MethodPost, "/api/tasks",
		`{"user_id":"","task_type":"Cook meal","date":"2024-03-01","time":"18:00","duration":20}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Nil(t, decode[model.Task](t, rec).UserID)
}

func TestCreateTaskValidation(t *testing.T) {
	srv, _ := setupServer(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing type", `{"date":"2024-03-01","time":"18:00","duration":20}`, "task_type"},
		{"bad date", `{"task_type":"Cook meal","date":"2024-02-30","time":"18:00","duration":20}`, "date"},
		{"bad time", `{"task_type":"Cook meal","date":"2024-03-01","time":"25:00","duration":20}`, "time"},
		{"missing duration", `{"task_type":"Cook meal","date":"2024-03-01","time":"18:00"}`, "duration"},
		{"unknown user", `{"user_id":42,"task_type":"Cook meal","date":"2024-03-01","time":"18:00","duration":20}`, "user_id"},
		{"malformed json", `{"task_type":`, "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/tasks", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, errorBody(t, rec), tt.field)
		})
	}

	rec := do(t, srv, http.MethodGet, "/api/tasks", nil)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListTasksEmptyIsArray(t *testing.T) {
	srv, _ := setupServer(t)

	rec := do(t, srv, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListTasksFilters(t *testing.T) {
	srv, store := setupServer(t)
	alice := seedUser(t, store, "Alice")
	bob := seedUser(t, store, "Bob")
	t1 := seedTask(t, store, model.ID(alice.ID), "Cook meal", "2024-03-01", "18:00", 30)
	t2 := seedTask(t, store, model.ID(alice.ID), "Cook meal", "2024-03-01", "12:00", 15)
	t3 := seedTask(t, store, model.ID(bob.ID), "Fold laundry", "2024-03-02", "09:00", 20)
	t4 := seedTask(t, store, nil, "Cook meal", "2024-03-05", "19:00", 40)

	ids := func(rec *httptest.ResponseRecorder) []int64 {
		var out []int64
		for _, task := range decode[[]model.Task](t, rec) {
			out = append(out, task.ID)
		}
		return out
	}

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"all", "", []int64{t1.ID, t2.ID, t3.ID, t4.ID}},
		{"empty params mean all", "?user_id=&task_type=&start_date=&end_date=", []int64{t1.ID, t2.ID, t3.ID, t4.ID}},
		{"by user", fmt.Sprintf("?user_id=%d", bob.ID), []int64{t3.ID}},
		{"by type", "?task_type=Cook%20meal", []int64{t1.ID, t2.ID, t4.ID}},
		{"single day", "?start_date=2024-03-01&end_date=2024-03-01", []int64{t1.ID, t2.ID}},
		{"range", "?start_date=2024-03-01&end_date=2024-03-02", []int64{t1.ID, t2.ID, t3.ID}},
		{"start only ignored", "?start_date=2024-03-03", []int64{t1.ID, t2.ID, t3.ID, t4.ID}},
		{"combined", fmt.Sprintf("?user_id=%d&task_type=Cook%%20meal&start_date=2024-03-01&end_date=2024-03-31", alice.ID), []int64{t1.ID, t2.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, "/api/tasks"+tt.query, nil)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.want, ids(rec))
		})
	}

	t.Run("no match is empty array", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/tasks?user_id=0", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestListTasksBadParams(t *testing.T) {
	srv, _ := setupServer(t)

	for _, q := range []string{"?user_id=abc", "?start_date=03/01/2024&end_date=2024-03-02"} {
		rec := do(t, srv, http.MethodGet, "/api/tasks"+q, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestGetTask(t *testing.T) {
	srv, store := setupServer(t)
	task := seedTask(t, store, nil, "Cook meal", "2024-03-01", "18:00", 30)

	rec := do(t, srv, http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, cmp.Diff(*task, decode[model.Task](t, rec)))

	rec = do(t, srv, http.MethodGet, "/api/tasks/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgTaskNotFound, errorBody(t, rec))
}

func TestUpdateTask(t *testing.T) {
	srv, store := setupServer(t)
	alice := seedUser(t, store, "Alice")
	bob := seedUser(t, store, "Bob")
	task := seedTask(t, store, model.ID(alice.ID), "Cook meal", "2024-03-01", "18:00", 30)

	rec := do(t, srv, http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), map[string]any{
		"user_id":     bob.ID,
		"task_type":   "Fold laundry",
		"description": "Towels",
		"date":        "2024-03-02",
		"time":        "09:15",
		"duration":    20,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	want := model.Task{
		ID:          task.ID,
		UserID:      model.ID(alice.ID),
		TaskType:    "Fold laundry",
		Description: "Towels",
		Date:        "2024-03-02",
		Time:        "09:15",
		Duration:    20,
	}
	assert.Empty(t, cmp.Diff(want, decode[model.Task](t, rec)))

	stored, err := store.GetTask(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(want, *stored))
}

func TestUpdateMissingTask(t *testing.T) {
	srv, store := setupServer(t)
	task := seedTask(t, store, nil, "Cook meal", "2024-03-01", "18:00", 30)

	rec := do(t, srv, http.MethodPut, "/api/tasks/999", map[string]any{
		"task_type": "Fold laundry",
		"date":      "2024-03-02",
		"time":      "09:15",
		"duration":  20,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgTaskNotFound, errorBody(t, rec))

	tasks, err := store.ListTasks(context.Background(), query.Criteria{})
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]model.Task{*task}, tasks))
}

func TestUpdateTaskValidation(t *testing.T) {
	srv, store := setupServer(t)
	task := seedTask(t, store, nil, "Cook meal", "2024-03-01", "18:00", 30)

	rec := do(t, srv, http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), map[string]any{
		"task_type": "Cook meal",
		"date":      "2024-03-01",
		"time":      "18:00",
		"duration":  0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "duration")
}

func TestDeleteTask(t *testing.T) {
	srv, store := setupServer(t)
	task := seedTask(t, store, nil, "Cook meal", "2024-03-01", "18:00", 30)

	rec := do(t, srv, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Task deleted successfully"}`, rec.Body.String())

	rec = do(t, srv, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgTaskNotFound, errorBody(t, rec))
}

func TestNonIntegerID(t *testing.T) {
	srv, _ := setupServer(t)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := do(t, srv, method, "/api/tasks/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, method)
		assert.Contains(t, errorBody(t, rec), "id")
	}
}

// ============================================================================
// Users
// ============================================================================

func TestUsers(t *testing.T) {
	srv, _ := setupServer(t)

	rec := do(t, srv, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, srv, http.MethodPost, "/api/users", map[string]string{"name": "Alice"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	alice := decode[model.User](t, rec)
	assert.Equal(t, "Alice", alice.Name)
	assert.NotZero(t, alice.ID)

	rec = do(t, srv, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, cmp.Diff([]model.User{alice}, decode[[]model.User](t, rec)))
}

func TestCreateUserEmptyName(t *testing.T) {
	srv, store := setupServer(t)

	rec := do(t, srv, http.MethodPost, "/api/users", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "name")

	users, err := store.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

// ============================================================================
// Views
// ============================================================================

func TestTaskTypes(t *testing.T) {
	srv, store := setupServer(t)
	seedTask(t, store, nil, "Water plants", "2024-03-01", "08:00", 5)
	seedTask(t, store, nil, "Cook meal", "2024-03-01", "18:00", 30)

	rec := do(t, srv, http.MethodGet, "/api/task-types", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Empty dishwasher", "Cook meal", "Water plants"}, decode[[]string](t, rec))
}

func TestDay(t *testing.T) {
	srv, store := setupServer(t)
	alice := seedUser(t, store, "Alice")
	t1 := seedTask(t, store, model.ID(alice.ID), "Cook meal", "2024-03-01", "18:30", 30)
	t2 := seedTask(t, store, nil, "Cook meal", "2024-03-01", "18:05", 15)
	seedTask(t, store, nil, "Cook meal", "2024-03-02", "18:00", 10)

	rec := do(t, srv, http.MethodGet, "/api/days/2024-03-01", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	view := decode[dayview.DayView](t, rec)
	require.Len(t, view.Buckets, dayview.HoursPerDay)
	assert.Equal(t, 2, view.TotalTasks)
	assert.Equal(t, 45, view.TotalDurationMinutes)
	assert.Equal(t, "18:00", view.Buckets[18].Label)
	assert.Equal(t, []int64{t1.ID, t2.ID}, []int64{view.Buckets[18].Tasks[0].ID, view.Buckets[18].Tasks[1].ID})
	assert.NotNil(t, view.Buckets[0].Tasks)

	rec = do(t, srv, http.MethodGet, fmt.Sprintf("/api/days/2024-03-01?user_id=%d", alice.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[dayview.DayView](t, rec).TotalTasks)

	rec = do(t, srv, http.MethodGet, "/api/days/2024-13-01", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysis(t *testing.T) {
	srv, store := setupServer(t)
	seedTask(t, store, nil, "Cook meal", "2024-03-01", "18:00", 30)
	seedTask(t, store, nil, "Cook meal", "2024-03-01", "12:00", 15)
	seedTask(t, store, nil, "Fold laundry", "2024-04-01", "09:00", 20)

	rec := do(t, srv, http.MethodGet, "/api/analysis?start_date=2024-03-01&end_date=2024-03-31", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	want := output.ReportResponse{
		StartDate: "2024-03-01",
		EndDate:   "2024-03-31",
		Summary: analysis.Summary{
			TotalTasks:           2,
			TotalDurationMinutes: 45,
			CountsByType:         map[string]int{"Cook meal": 2},
		},
		Trend: []analysis.TrendPoint{{Date: "2024-03-01", TaskCount: 2, TotalDurationMinutes: 45}},
	}
	assert.Empty(t, cmp.Diff(want, decode[output.ReportResponse](t, rec)))
}

func TestAnalysisEmpty(t *testing.T) {
	srv, _ := setupServer(t)

	rec := do(t, srv, http.MethodGet, "/api/analysis", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"summary":{"total_tasks":0,"total_duration_minutes":0,"counts_by_type":{}},"trend":[]}`,
		rec.Body.String())
}

func TestCalendar(t *testing.T) {
	srv, store := setupServer(t)
	seedTask(t, store, nil, "Cook meal", "2024-03-01", "18:00", 30)
	seedTask(t, store, nil, "Cook meal", "2024-03-01", "12:00", 15)
	seedTask(t, store, nil, "Cook meal", "2024-04-01", "12:00", 15)

	rec := do(t, srv, http.MethodGet, "/api/calendar", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	grid := decode[calendar.Grid](t, rec)
	assert.Equal(t, calendar.ViewMonth, grid.View)
	assert.Equal(t, "2024-03-01", grid.Start)
	assert.Equal(t, "2024-03-31", grid.End)
	require.Len(t, grid.Days, 31)
	assert.Equal(t, 2, grid.Days[0].TaskCount)
	assert.Equal(t, 2, grid.Total())

	rec = do(t, srv, http.MethodGet, "/api/calendar?view=week&date=2024-04-03", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	grid = decode[calendar.Grid](t, rec)
	assert.Equal(t, "2024-03-31", grid.Start)
	assert.Equal(t, "2024-04-06", grid.End)
	assert.Equal(t, 1, grid.Total())

	rec = do(t, srv, http.MethodGet, "/api/calendar?view=year", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, srv, http.MethodGet, "/api/calendar?date=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	srv, _ := setupServer(t)

	rec := do(t, srv, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","store":"sqlite"}`, rec.Body.String())
}

func TestHealthUnavailable(t *testing.T) {
	srv := NewServer(&failingStore{}, Options{Driver: "badger"})

	rec := do(t, srv, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unavailable", decode[HealthResponse](t, rec).Status)
}

// ============================================================================
// Store failures
// ============================================================================

type failingStore struct{}

var errBroken = errors.NewStoreError("query", errors.New("disk I/O error"))

func (failingStore) AddUser(context.Context, string) (*model.User, error) { return nil, errBroken }
func (failingStore) ListUsers(context.Context) ([]model.User, error)      { return nil, errBroken }
func (failingStore) AddTask(context.Context, model.TaskInput) (*model.Task, error) {
	return nil, errBroken
}
func (failingStore) GetTask(context.Context, int64) (*model.Task, error) { return nil, errBroken }
func (failingStore) ListTasks(context.Context, query.Criteria) ([]model.Task, error) {
	return nil, errBroken
}
func (failingStore) UpdateTask(context.Context, int64, model.TaskInput) (int64, error) {
	return 0, errBroken
}
func (failingStore) DeleteTask(context.Context, int64) (int64, error) { return 0, errBroken }
func (failingStore) Ping(context.Context) error                       { return errBroken }
func (failingStore) Close() error                                     { return nil }

func TestStoreFailuresAreGeneric(t *testing.T) {
	srv := NewServer(&failingStore{}, Options{})
	task := `{"task_type":"Cook meal","date":"2024-03-01","time":"18:00","duration":20}`

	tests := []struct {
		method string
		path   string
		body   any
		want   string
	}{
		{http.MethodPost, "/api/tasks", task, msgAddTask},
		{http.MethodGet, "/api/tasks", nil, msgFetchTasks},
		{http.MethodGet, "/api/tasks/1", nil, msgFetchTask},
		{http.MethodPut, "/api/tasks/1", task, msgUpdateTask},
		{http.MethodDelete, "/api/tasks/1", nil, msgDeleteTask},
		{http.MethodPost, "/api/users", map[string]string{"name": "Alice"}, msgAddUser},
		{http.MethodGet, "/api/users", nil, msgFetchUsers},
		{http.MethodGet, "/api/task-types", nil, msgFetchTaskTypes},
		{http.MethodGet, "/api/days/2024-03-01", nil, msgFetchDay},
		{http.MethodGet, "/api/analysis", nil, msgFetchAnalysis},
		{http.MethodGet, "/api/calendar", nil, msgFetchCalendar},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, tt.want, errorBody(t, rec))
			assert.NotContains(t, rec.Body.String(), "disk")
		})
	}
}

// ============================================================================
// Middleware and lifecycle
// ============================================================================

func TestCORS(t *testing.T) {
	srv, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks/1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
}

func TestRequestID(t *testing.T) {
	srv, _ := setupServer(t)

	rec := do(t, srv, http.MethodGet, "/api/health", nil)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := setupServer(t)

	rec := do(t, srv, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, errorBody(t, rec))
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv, _ := setupServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	client.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
