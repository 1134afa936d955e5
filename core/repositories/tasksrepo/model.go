package tasksrepo

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a task. Any status may move to any other.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusFailed     Status = "FAILED"
)

// Statuses lists every valid status.
var Statuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusFailed,
}

// IsValid reports whether s is one of Statuses.
func (s Status) IsValid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a symbolic name into a Status.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid task status %q", v)
	}
	return s, nil
}

// Task is a persisted task. ID is assigned by the store on creation.
type Task struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	CreatedAt   time.Time  `db:"created_at"`
	DueDate     *time.Time `db:"due_date"`
	Status      Status     `db:"status"`
}

// NewTask holds the caller supplied fields for a new task.
type NewTask struct {
	Name        string
	Description string
	DueDate     *time.Time
	Status      *Status
}

// UpdateTask holds the replacement values for every mutable task field.
type UpdateTask struct {
	Name        string
	Description string
	DueDate     *time.Time
	Status      *Status
}

// New builds a task ready to be stored. It is the only place CreatedAt is
// assigned; an unset status defaults to StatusPending.
func New(nt NewTask, now time.Time) Task {
	status := StatusPending
	if nt.Status != nil {
		status = *nt.Status
	}

	return Task{
		Name:        nt.Name,
		Description: nt.Description,
		CreatedAt:   now.UTC().Truncate(time.Microsecond),
		DueDate:     utcPtr(nt.DueDate),
		Status:      status,
	}
}

// Apply returns t with every mutable field replaced by ut. ID and CreatedAt
// are kept; an unset status resets to StatusPending.
func (t Task) Apply(ut UpdateTask) Task {
	status := StatusPending
	if ut.Status != nil {
		status = *ut.Status
	}

	t.Name = ut.Name
	t.Description = ut.Description
	t.DueDate = utcPtr(ut.DueDate)
	t.Status = status
	return t
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
