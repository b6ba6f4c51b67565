// Package scheduler wires the maintenance jobs onto a cron schedule.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/warp/rental-engine/jobs"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a scheduler running the ledger cleanup on the given cron spec
// (standard five-field syntax, UTC).
func New(runner *jobs.Runner, cleanupSpec string, log *zap.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(cleanupSpec, runner.CleanupLedger); err != nil {
		return nil, err
	}
	log.Info("cleanup job scheduled", zap.String("spec", cleanupSpec))

	return &Scheduler{cron: c}, nil
}

// Start begins executing scheduled jobs in their own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
