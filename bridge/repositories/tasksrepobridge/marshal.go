package tasksrepobridge

import (
	"github.com/tasmag/tasmag/core/repositories/tasksrepo"
	"github.com/tasmag/tasmag/sdk/validation"
)

func MarshalToBridge(task tasksrepo.Task) Task {
	return Task{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		CreatedAt:   validation.FormatDateTime(task.CreatedAt),
		DueDate:     validation.FormatDateTimePtr(task.DueDate),
		Status:      task.Status.String(),
	}
}

// MarshalListToBridge converts a list of core models to bridge models. The
// result is never nil so an empty list encodes as [].
func MarshalListToBridge(tasks []tasksrepo.Task) []Task {
	bridgeTasks := make([]Task, len(tasks))
	for i, task := range tasks {
		bridgeTasks[i] = MarshalToBridge(task)
	}
	return bridgeTasks
}

func MarshalCreateToRepository(input TaskInput) tasksrepo.NewTask {
	return tasksrepo.NewTask{
		Name:        input.Name,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      input.Status,
	}
}

func MarshalUpdateToRepository(input TaskInput) tasksrepo.UpdateTask {
	return tasksrepo.UpdateTask{
		Name:        input.Name,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      input.Status,
	}
}
