package jobs

import (
	"fmt"
	"log/slog"

	"grouporder/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	expiryReaperJob *ExpiryReaperJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	reapExpiredHandler commands.ReapExpiredGroupOrdersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		expiryReaperJob: NewExpiryReaperJob(reapExpiredHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.expiryReaperJob.Start(); err != nil {
		return fmt.Errorf("failed to start expiry reaper job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.expiryReaperJob.Stop()
}
