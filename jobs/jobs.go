// Package jobs holds the scheduled maintenance jobs. Each job is a plain
// method so it can be triggered manually as well as by the scheduler.
package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/warp/rental-engine/booking"
)

// Runner coordinates the maintenance jobs.
type Runner struct {
	Workflow *booking.Workflow
	Log      *zap.Logger
}

// runWithRecovery wraps job execution with panic recovery so a broken job
// never takes the scheduler down.
func (r *Runner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.Log.Error("job panicked", zap.String("job", jobName), zap.Any("panic", rec))
		}
	}()

	r.Log.Info("starting job", zap.String("job", jobName))
	jobFunc()
	r.Log.Info("job completed", zap.String("job", jobName))
}

// CleanupLedger runs the idempotent confirmed-rentals cleanup pass.
func (r *Runner) CleanupLedger() {
	r.runWithRecovery("cleanup_ledger", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := r.Workflow.RunCleanup(ctx)
		if err != nil {
			r.Log.Error("scheduled cleanup failed", zap.Error(err))
			return
		}
		r.Log.Info("scheduled cleanup finished",
			zap.Int("original", result.Original),
			zap.Int("removed", result.Removed),
		)
	})
}
