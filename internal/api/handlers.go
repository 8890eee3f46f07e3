package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/manav03panchal/choreboard/internal/analysis"
	"github.com/manav03panchal/choreboard/internal/calendar"
	"github.com/manav03panchal/choreboard/internal/dayview"
	"github.com/manav03panchal/choreboard/internal/logging"
	"github.com/manav03panchal/choreboard/internal/model"
	"github.com/manav03panchal/choreboard/internal/output"
	"github.com/manav03panchal/choreboard/internal/query"
	"github.com/manav03panchal/choreboard/internal/storage"
	"github.com/manav03panchal/choreboard/internal/validate"
)

const (
	msgFetchTaskTypes = "Error fetching task types"
	msgFetchDay       = "Error fetching day"
	msgFetchAnalysis  = "Error fetching analysis"
	msgFetchCalendar  = "Error fetching calendar"
)

type handler struct {
	store    storage.Store
	defaults []string
	driver   string
	now      func() time.Time
}

type userRequest struct {
	Name string `json:"name"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	Error  string `json:"error,omitempty"`
}

// ============================================================================
// Tasks
// ============================================================================

func (h *handler) createTask(w http.ResponseWriter, r *http.Request) {
	var in model.TaskInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeStoreError(w, r, err, msgAddTask)
		return
	}

	task, err := h.store.AddTask(r.Context(), in)
	if err != nil {
		writeStoreError(w, r, err, msgAddTask)
		return
	}
	logging.InfoContext(r.Context(), "task added", logging.KeyTaskID, task.ID)
	writeJSON(w, http.StatusCreated, task)
}

func (h *handler) listTasks(w http.ResponseWriter, r *http.Request) {
	c, err := query.FromValues(r.URL.Query())
	if err != nil {
		writeStoreError(w, r, err, msgFetchTasks)
		return
	}

	tasks, err := h.store.ListTasks(r.Context(), c)
	if err != nil {
		writeStoreError(w, r, err, msgFetchTasks)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *handler) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeStoreError(w, r, err, msgFetchTask)
		return
	}

	task, err := h.store.GetTask(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, msgFetchTask)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeStoreError(w, r, err, msgUpdateTask)
		return
	}
	var in model.TaskInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeStoreError(w, r, err, msgUpdateTask)
		return
	}

	n, err := h.store.UpdateTask(r.Context(), id, in)
	if err != nil {
		writeStoreError(w, r, err, msgUpdateTask)
		return
	}
	if n == 0 {
		writeError(w, http.StatusNotFound, msgTaskNotFound)
		return
	}

	task, err := h.store.GetTask(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, msgUpdateTask)
		return
	}
	logging.InfoContext(r.Context(), "task updated", logging.KeyTaskID, id)
	writeJSON(w, http.StatusOK, task)
}

func (h *handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeStoreError(w, r, err, msgDeleteTask)
		return
	}

	n, err := h.store.DeleteTask(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, msgDeleteTask)
		return
	}
	if n == 0 {
		writeError(w, http.StatusNotFound, msgTaskNotFound)
		return
	}
	logging.InfoContext(r.Context(), "task deleted", logging.KeyTaskID, id)
	writeJSON(w, http.StatusOK, output.MessageResponse{Message: msgTaskDeleted})
}

// ============================================================================
// Users
// ============================================================================

func (h *handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeStoreError(w, r, err, msgAddUser)
		return
	}

	user, err := h.store.AddUser(r.Context(), req.Name)
	if err != nil {
		writeStoreError(w, r, err, msgAddUser)
		return
	}
	logging.InfoContext(r.Context(), "user added", logging.KeyUserID, user.ID)
	writeJSON(w, http.StatusCreated, user)
}

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		writeStoreError(w, r, err, msgFetchUsers)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// ============================================================================
// Views
// ============================================================================

func (h *handler) taskTypes(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.ListTasks(r.Context(), query.Criteria{})
	if err != nil {
		writeStoreError(w, r, err, msgFetchTaskTypes)
		return
	}
	writeJSON(w, http.StatusOK, analysis.TaskTypes(tasks, h.defaults))
}

// day returns the hourly buckets of one date. user_id and task_type narrow
// the tasks; a date range in the query is replaced by the path date.
func (h *handler) day(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(chi.URLParam(r, "date"))
	if err := validate.Date("date", date); err != nil {
		writeStoreError(w, r, err, msgFetchDay)
		return
	}
	c, err := query.FromValues(r.URL.Query())
	if err != nil {
		writeStoreError(w, r, err, msgFetchDay)
		return
	}

	tasks, err := h.store.ListTasks(r.Context(), c.ForDate(date))
	if err != nil {
		writeStoreError(w, r, err, msgFetchDay)
		return
	}
	view, err := dayview.Bucketize(date, tasks)
	if err != nil {
		writeStoreError(w, r, err, msgFetchDay)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handler) analysis(w http.ResponseWriter, r *http.Request) {
	c, err := query.FromValues(r.URL.Query())
	if err != nil {
		writeStoreError(w, r, err, msgFetchAnalysis)
		return
	}

	tasks, err := h.store.ListTasks(r.Context(), c)
	if err != nil {
		writeStoreError(w, r, err, msgFetchAnalysis)
		return
	}

	var start, end string
	if c.DateRangeActive() {
		start, end = *c.StartDate, *c.EndDate
	}
	writeJSON(w, http.StatusOK, output.NewReportResponse(start, end, analysis.Analyze(tasks)))
}

// calendar returns the month or week grid around date, today by default.
func (h *handler) calendar(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	view, err := calendar.ParseView(params.Get("view"))
	if err != nil {
		writeStoreError(w, r, err, msgFetchCalendar)
		return
	}

	anchor := h.now()
	if s := strings.TrimSpace(params.Get("date")); s != "" {
		if err := validate.Date("date", s); err != nil {
			writeStoreError(w, r, err, msgFetchCalendar)
			return
		}
		anchor, _ = time.Parse(model.DateLayout, s)
	}

	params.Del(query.ParamStartDate)
	params.Del(query.ParamEndDate)
	c, err := query.FromValues(params)
	if err != nil {
		writeStoreError(w, r, err, msgFetchCalendar)
		return
	}

	start, end := calendar.Range(view, anchor)
	c = c.WithRange(start.Format(model.DateLayout), end.Format(model.DateLayout))
	tasks, err := h.store.ListTasks(r.Context(), c)
	if err != nil {
		writeStoreError(w, r, err, msgFetchCalendar)
		return
	}
	writeJSON(w, http.StatusOK, calendar.Build(view, anchor, tasks))
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Store: h.driver}
	if p, ok := h.store.(storage.Pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			logging.WarnContext(r.Context(), "health check failed", logging.KeyError, err)
			resp.Status = "unavailable"
			resp.Error = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
