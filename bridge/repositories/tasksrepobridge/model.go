package tasksrepobridge

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tasmag/tasmag/core/repositories/tasksrepo"
	"github.com/tasmag/tasmag/sdk/validation"
)

// Task is the response body for a task. Timestamps use
// validation.DateTimeLayout and DueDate is null when unset.
type Task struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"createdAt"`
	DueDate     *string `json:"dueDate"`
	Status      string  `json:"status"`
}

// TaskInput is the request body for create and update. The id and createdAt
// members of a body are ignored.
type TaskInput struct {
	Name        string
	Description string
	DueDate     *time.Time
	Status      *tasksrepo.Status
}

// taskBody lists every member read from a request body.
type taskBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Status      *string `json:"status"`
}

// Decode implements web.Decoder. Malformed JSON, a member of the wrong type,
// an unparseable dueDate or an unknown status is an error.
func (t *TaskInput) Decode(data []byte) error {
	var body taskBody
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}

	input := TaskInput{
		Name:        validation.GetStringOrEmpty(body.Name),
		Description: validation.GetStringOrEmpty(body.Description),
	}

	if body.DueDate != nil && *body.DueDate != "" {
		due, err := validation.ParseDateTime(*body.DueDate)
		if err != nil {
			return fmt.Errorf("dueDate: %w", err)
		}
		input.DueDate = &due
	}

	if body.Status != nil {
		status, err := tasksrepo.ParseStatus(*body.Status)
		if err != nil {
			return fmt.Errorf("status: %w", err)
		}
		input.Status = &status
	}

	*t = input
	return nil
}
