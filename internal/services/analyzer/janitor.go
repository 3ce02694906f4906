package analyzer

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// Janitor periodically fails runs stuck in pending/running past the run
// deadline, so a crashed process never wedges an item in a non-terminal
// state.
type Janitor struct {
	storage  interfaces.StorageManager
	logger   arbor.ILogger
	deadline time.Duration
	cron     *cron.Cron
}

// NewJanitor creates a stale-run janitor. deadline should match the
// analyzer's run deadline.
func NewJanitor(storage interfaces.StorageManager, deadline time.Duration, logger arbor.ILogger) *Janitor {
	return &Janitor{
		storage:  storage,
		logger:   logger,
		deadline: deadline,
		cron:     cron.New(),
	}
}

// Start schedules the sweep with the given cron expression.
func (j *Janitor) Start(schedule string) error {
	if schedule == "" {
		schedule = "*/1 * * * *"
	}

	if _, err := j.cron.AddFunc(schedule, j.Sweep); err != nil {
		return fmt.Errorf("failed to schedule stale-run sweep: %w", err)
	}

	j.cron.Start()
	j.logger.Info().
		Str("schedule", schedule).
		Dur("deadline", j.deadline).
		Msg("Stale-run janitor started")

	return nil
}

// Stop halts the sweep schedule.
func (j *Janitor) Stop() {
	j.cron.Stop()
}

// Sweep marks pending/running statuses older than the deadline as failed.
func (j *Janitor) Sweep() {
	statuses, err := j.storage.StatusStorage().ListStatuses()
	if err != nil {
		j.logger.Warn().Err(err).Msg("Stale-run sweep failed to list statuses")
		return
	}

	cutoff := time.Now().Add(-j.deadline)
	for _, status := range statuses {
		if !status.InFlight() || status.UpdatedAt.After(cutoff) {
			continue
		}

		status.MarkFailed(fmt.Sprintf("run exceeded deadline of %s", j.deadline))
		if err := j.storage.StatusStorage().SaveStatus(status); err != nil {
			j.logger.Warn().Err(err).Str("content_id", status.ContentID).Msg("Failed to fail stale run")
			continue
		}

		j.logger.Warn().
			Str("content_id", status.ContentID).
			Msg("Marked stale run as failed")
	}

	if err := j.storage.RunGC(); err != nil {
		j.logger.Debug().Err(err).Msg("Storage GC pass failed")
	}
}
