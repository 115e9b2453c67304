package jobs

import (
	"fmt"
)

type job interface {
	Start() error
	Stop()
}

// JobManager starts and stops the scheduled jobs as a group.
type JobManager struct {
	jobs []job
}

// NewJobManager takes the jobs in start order. Nil jobs are skipped, so a
// disabled relay can simply be left out.
func NewJobManager(dueCredit *DueCreditReminderJob, relay *OutboxRelayJob) *JobManager {
	jm := &JobManager{}
	if dueCredit != nil {
		jm.jobs = append(jm.jobs, dueCredit)
	}
	if relay != nil {
		jm.jobs = append(jm.jobs, relay)
	}
	return jm
}

// StartAll starts every job. If one fails, the ones already started are stopped.
func (jm *JobManager) StartAll() error {
	for idx, j := range jm.jobs {
		if err := j.Start(); err != nil {
			for _, started := range jm.jobs[:idx] {
				started.Stop()
			}
			return fmt.Errorf("failed to start job %d: %w", idx, err)
		}
	}
	return nil
}

// StopAll stops every job and waits for running executions to finish.
func (jm *JobManager) StopAll() {
	for _, j := range jm.jobs {
		j.Stop()
	}
}
