package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TaskInput holds the writable fields of a task: everything except the id.
type TaskInput struct {
	UserID      *int64 `json:"user_id"`
	TaskType    string `json:"task_type"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    int    `json:"duration"`
}

// taskInputWire mirrors TaskInput with lenient numeric fields. Browser forms
// post select and number inputs as strings.
type taskInputWire struct {
	UserID      json.RawMessage `json:"user_id"`
	TaskType    string          `json:"task_type"`
	Description *string         `json:"description"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Duration    json.RawMessage `json:"duration"`
}

// UnmarshalJSON accepts user_id and duration as numbers or numeric strings.
// An empty or null user_id means the task is unassigned.
func (in *TaskInput) UnmarshalJSON(data []byte) error {
	var w taskInputWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	userID, err := flexInt("user_id", w.UserID)
	if err != nil {
		return err
	}
	duration, err := flexInt("duration", w.Duration)
	if err != nil {
		return err
	}

	*in = TaskInput{
		UserID:   userID,
		TaskType: w.TaskType,
		Date:     w.Date,
		Time:     w.Time,
	}
	if w.Description != nil {
		in.Description = *w.Description
	}
	if duration != nil {
		in.Duration = int(*duration)
	}
	return nil
}

func flexInt(field string, raw json.RawMessage) (*int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, nil
		}
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: expected an integer, got %s", field, raw)
	}
	return &n, nil
}
