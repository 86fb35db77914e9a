package tasks

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	bgTasks := New(slog.Default(), 3, 10)
	bgTasks.Run()
	taskRunned := false
	task := func() {
		t.Log("task")
		taskRunned = true
	}
	bgTasks.Add(task)
	bgTasks.Shutdown(context.Background())
	assert.True(t, taskRunned)
}

func TestPanicInTaskDoesNotKillWorkers(t *testing.T) {
	bgTasks := New(slog.Default(), 1, 10)
	bgTasks.Run()
	var ran atomic.Bool
	bgTasks.Add(func() { panic("boom") })
	bgTasks.Add(func() { ran.Store(true) })
	bgTasks.Shutdown(context.Background())
	assert.True(t, ran.Load())
}
