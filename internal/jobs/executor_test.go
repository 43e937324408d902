package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticJob struct {
	id       string
	schedule string
	runs     chan struct{}
}

func (j *staticJob) ID() string       { return j.id }
func (j *staticJob) Schedule() string { return j.schedule }
func (j *staticJob) Run() {
	select {
	case j.runs <- struct{}{}:
	default:
	}
}

func TestExecutor_InvalidScheduleDoesNotPanic(t *testing.T) {
	executor := NewExecutor(&staticJob{
		id:       "broken",
		schedule: "not a cron expression",
		runs:     make(chan struct{}, 1),
	})

	assert.NotPanics(t, func() {
		executor.Run()
		executor.Stop()
	})
}
