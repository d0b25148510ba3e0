// Package jobs holds the scheduled job implementations.
package jobs

import (
	"context"
	"time"

	"github.com/linyc/twmonitor/internal/monitor"
	"github.com/linyc/twmonitor/pkg/logger"
)

// MonitorJob triggers one monitor invocation per tick. The runner itself
// decides whether the tick falls inside trading hours.
type MonitorJob struct {
	runner   *monitor.Runner
	schedule string
	logger   *logger.Logger
}

// NewMonitorJob creates the monitor job with the given cron schedule.
func NewMonitorJob(runner *monitor.Runner, schedule string, log *logger.Logger) *MonitorJob {
	return &MonitorJob{
		runner:   runner,
		schedule: schedule,
		logger:   log.WithField("job", "monitor"),
	}
}

// Name implements scheduler.Job.
func (j *MonitorJob) Name() string { return "monitor" }

// Schedule implements scheduler.Job.
func (j *MonitorJob) Schedule() string { return j.schedule }

// Run implements scheduler.Job.
func (j *MonitorJob) Run(ctx context.Context) error {
	result, err := j.runner.Run(ctx, time.Now())
	if err != nil {
		return err
	}

	if !result.Skipped && result.AlertsSent > 0 {
		j.logger.WithField("alerts_sent", result.AlertsSent).Info("Alerts dispatched")
	}
	return nil
}
