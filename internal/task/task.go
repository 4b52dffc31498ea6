package task

import (
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
)

var (
	ErrNotFound    = errors.New("task not found")
	ErrMalformed   = errors.New("malformed task data")
	ErrDraftClosed = errors.New("no task is being edited")
)

// Status is stored as-is; values outside the known set survive a round trip.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// legacyStatus maps the display labels older data was saved with.
var legacyStatus = map[string]Status{
	"новая":     StatusNew,
	"в работе":  StatusInProgress,
	"завершена": StatusDone,
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if mapped, ok := legacyStatus[raw]; ok {
		*s = mapped
		return nil
	}
	*s = Status(raw)
	return nil
}

// Label is the human form used by the UI and CLI.
func (s Status) Label() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusInProgress:
		return "in progress"
	case StatusDone:
		return "done"
	default:
		return string(s)
	}
}

// Next is the toggle transition: in_progress goes to done, everything else
// (new included) goes to in_progress.
func (s Status) Next() Status {
	if s == StatusInProgress {
		return StatusDone
	}
	return StatusInProgress
}

type Task struct {
	ID           int64
	Title        string
	Description  string
	Status       Status
	CreationDate civil.Date
}

// wireTask is the persisted record shape.
type wireTask struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Status       Status `json:"status"`
	CreationDate string `json:"creationDate"`
}

func (t Task) MarshalJSON() ([]byte, error) {
	w := wireTask{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
	}
	if t.CreationDate.IsValid() {
		w.CreationDate = t.CreationDate.String()
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts records with missing fields. A creation date that is
// absent or not YYYY-MM-DD is left as the zero date.
func (t *Task) UnmarshalJSON(data []byte) error {
	var w wireTask
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*t = Task{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Status:      w.Status,
	}
	if d, err := civil.ParseDate(w.CreationDate); err == nil {
		t.CreationDate = d
	}
	return nil
}

func (t Task) Done() bool {
	return t.Status == StatusDone
}

// Encode serializes the collection as a JSON array, preserving order.
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	return json.Marshal(tasks)
}

// Decode parses a JSON array of tasks. Missing fields decode to zero values.
func Decode(data []byte) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return tasks, nil
}
