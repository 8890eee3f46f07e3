package output

import (
	"github.com/manav03panchal/choreboard/internal/analysis"
	"github.com/manav03panchal/choreboard/internal/calendar"
	"github.com/manav03panchal/choreboard/internal/dayview"
	"github.com/manav03panchal/choreboard/internal/model"
)

// JSONFormatter renders values with the same shapes the REST API uses.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// ErrorResponse is the error body of the REST API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the confirmation body of the REST API.
type MessageResponse struct {
	Message string `json:"message"`
}

// ReportResponse is an analysis report with the period it covers.
type ReportResponse struct {
	StartDate string              `json:"start_date,omitempty"`
	EndDate   string              `json:"end_date,omitempty"`
	Summary   analysis.Summary    `json:"summary"`
	Trend     []analysis.TrendPoint `json:"trend"`
}

// NewReportResponse pairs a report with its period.
func NewReportResponse(start, end string, r analysis.Report) ReportResponse {
	trend := r.Trend
	if trend == nil {
		trend = []analysis.TrendPoint{}
	}
	return ReportResponse{StartDate: start, EndDate: end, Summary: r.Summary, Trend: trend}
}

// Tasks prints a task array. An empty list prints [].
func (j *JSONFormatter) Tasks(tasks []model.Task, _ []model.User) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return j.JSON(tasks)
}

// Task prints one task.
func (j *JSONFormatter) Task(task *model.Task, _ []model.User) error {
	return j.JSON(task)
}

// Users prints a user array. An empty list prints [].
func (j *JSONFormatter) Users(users []model.User) error {
	if users == nil {
		users = []model.User{}
	}
	return j.JSON(users)
}

// User prints one user.
func (j *JSONFormatter) User(user *model.User) error {
	return j.JSON(user)
}

// TaskTypes prints the task type list.
func (j *JSONFormatter) TaskTypes(types []string) error {
	if types == nil {
		types = []string{}
	}
	return j.JSON(types)
}

// DayView prints the 24 hourly buckets of a day.
func (j *JSONFormatter) DayView(view *dayview.DayView, _ []model.User) error {
	return j.JSON(view)
}

// Report prints the summary and trend of a period.
func (j *JSONFormatter) Report(start, end string, report analysis.Report) error {
	return j.JSON(NewReportResponse(start, end, report))
}

// Calendar prints a calendar grid.
func (j *JSONFormatter) Calendar(grid calendar.Grid) error {
	return j.JSON(grid)
}

// Message prints a confirmation message.
func (j *JSONFormatter) Message(text string) error {
	return j.JSON(MessageResponse{Message: text})
}
