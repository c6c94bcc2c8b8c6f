package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunnerRunsAllTasks(t *testing.T) {
	runner := NewTaskRunner(testLogger())

	var ran int64
	tasks := make([]Task, 5)
	for i := range tasks {
		tasks[i] = Task{
			Name: "count",
			Run: func(ctx context.Context) error {
				atomic.AddInt64(&ran, 1)
				return nil
			},
		}
	}

	runner.Dispatch(tasks)
	runner.Wait()

	assert.Equal(t, int64(5), atomic.LoadInt64(&ran))
}

func TestRunnerIsolatesFailures(t *testing.T) {
	runner := NewTaskRunner(testLogger())

	var succeeded int64
	runner.Dispatch([]Task{
		{Name: "fails", Run: func(ctx context.Context) error {
			return errors.New("boom")
		}},
		{Name: "succeeds", Run: func(ctx context.Context) error {
			atomic.AddInt64(&succeeded, 1)
			return nil
		}},
	})
	runner.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&succeeded))
}

func TestRunnerSurvivesPanickingTask(t *testing.T) {
	runner := NewTaskRunner(testLogger())

	var succeeded int64
	runner.Dispatch([]Task{
		{Name: "panics", Run: func(ctx context.Context) error {
			panic("task went sideways")
		}},
		{Name: "succeeds", Run: func(ctx context.Context) error {
			atomic.AddInt64(&succeeded, 1)
			return nil
		}},
	})

	// Wait must return even though one task panicked.
	runner.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&succeeded))
}

func TestRunnerDispatchReturnsBeforeTasksFinish(t *testing.T) {
	runner := NewTaskRunner(testLogger())

	release := make(chan struct{})
	runner.Dispatch([]Task{
		{Name: "blocked", Run: func(ctx context.Context) error {
			<-release
			return nil
		}},
	})

	// Dispatch already returned; unblock and drain.
	close(release)
	runner.Wait()
}

func TestRunnerWaitOnEmptyRunner(t *testing.T) {
	runner := NewTaskRunner(testLogger())
	runner.Wait()
}
