package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/manav03panchal/choreboard/internal/errors"
	"github.com/manav03panchal/choreboard/internal/logging"
	"github.com/manav03panchal/choreboard/internal/output"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Client-facing messages for failures that are not the client's fault.
const (
	msgAddTask      = "Error adding task"
	msgFetchTasks   = "Error fetching tasks"
	msgFetchTask    = "Error fetching task"
	msgUpdateTask   = "Error updating task"
	msgDeleteTask   = "Error deleting task"
	msgAddUser      = "Error adding user"
	msgFetchUsers   = "Error fetching users"
	msgTaskNotFound = "Task not found"
	msgTaskDeleted  = "Task deleted successfully"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("write response failed", logging.KeyError, err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, output.ErrorResponse{Error: message})
}

// writeStoreError maps err to a response. Validation failures are reported
// with their message, missing tasks as 404, and everything else as a 500
// with the generic message for the operation.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, generic string) {
	switch status := errors.HTTPStatus(err); status {
	case http.StatusBadRequest:
		writeError(w, status, err.Error())
	case http.StatusNotFound:
		writeError(w, status, msgTaskNotFound)
	default:
		logging.ErrorContext(r.Context(), generic,
			logging.KeyMethod, r.Method,
			logging.KeyPath, r.URL.Path,
			logging.KeyError, err)
		writeError(w, status, generic)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.NewValidationError("body", fmt.Sprintf("invalid request body: %v", err), err)
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewValidationErrorWithValue("id", raw, "must be an integer", "", errors.ErrInvalidID)
	}
	return id, nil
}
