package jobs

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

// CronJob is a background task executed on a cron schedule.
type CronJob interface {
	ID() string
	Schedule() string
	Run()
}

// Executor runs cron jobs, skipping a tick when the previous run of the
// same job is still in flight.
type Executor struct {
	cron    *cron.Cron
	jobs    []CronJob
	running mapset.Set[string]
	mu      sync.Mutex
}

func NewExecutor(jobs ...CronJob) *Executor {
	return &Executor{
		cron:    cron.New(),
		jobs:    jobs,
		running: mapset.NewSet[string](),
	}
}

// Run schedules the jobs. Each job runs in its own goroutine inside the
// cron.
func (e *Executor) Run() {
	for _, job := range e.jobs {
		err := e.cron.AddFunc(job.Schedule(), func() {
			e.mu.Lock()
			if e.running.Contains(job.ID()) {
				e.mu.Unlock()
				logrus.Warnf("job %s is still running, skipping tick", job.ID())
				return
			}
			e.running.Add(job.ID())
			e.mu.Unlock()

			defer func() {
				e.mu.Lock()
				defer e.mu.Unlock()
				e.running.Remove(job.ID())
			}()

			job.Run()
		})
		if err != nil {
			logrus.Errorf("failed to schedule job %s: %v", job.ID(), err)
		}
	}

	e.cron.Start()
}

func (e *Executor) Stop() {
	logrus.Infof("stopping scheduled jobs")
	e.cron.Stop()
}
