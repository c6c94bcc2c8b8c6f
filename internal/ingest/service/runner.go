package service

import (
	"context"
	"sync"

	"golang-ticker-relay/pkg/logger"
	"golang-ticker-relay/pkg/utils"
)

// Task is one independently-failing unit of background work produced for a
// message. Success or failure of one task never blocks or affects another.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// TaskRunner executes task batches concurrently. Each task catches and logs
// its own error; nothing propagates to the caller. The HTTP acknowledgment
// does not wait for a batch, but Wait is called on shutdown so every
// scheduled batch settles before the process exits.
type TaskRunner struct {
	logger *logger.Logger
	wg     sync.WaitGroup
}

// NewTaskRunner creates a TaskRunner.
func NewTaskRunner(log *logger.Logger) *TaskRunner {
	return &TaskRunner{logger: log}
}

// Dispatch schedules the batch and returns immediately. Tasks run on a
// background context because the request context is cancelled as soon as
// the acknowledgment is sent.
func (r *TaskRunner) Dispatch(tasks []Task) {
	for _, task := range tasks {
		t := task
		r.wg.Add(1)
		utils.GoSafe(func() {
			defer r.wg.Done()
			if err := t.Run(context.Background()); err != nil {
				r.logger.Error("Background task failed",
					logger.StringField("task", t.Name),
					logger.ErrorField(err))
			}
		})
	}
}

// Wait blocks until every dispatched task has settled.
func (r *TaskRunner) Wait() {
	r.wg.Wait()
}
