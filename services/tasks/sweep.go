package tasks

import (
	"github.com/hibiken/asynq"
)

const TypeStageSweep = "stage:sweep"

// NewStageSweepTask builds the periodic task that reaps staged documents left
// behind by expired wizard sessions.
func NewStageSweepTask() *asynq.Task {
	return asynq.NewTask(TypeStageSweep, nil)
}
