package jobs

import (
	"context"
	"log/slog"

	"grouporder/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ExpiryReaperJob manages the scheduled sweep of elapsed group orders.
// Runs every 30 seconds to move group orders past their TTL into the expired
// status. The sweep is a safety net: most expirations are persisted lazily on
// first access, the reaper catches the rest.
type ExpiryReaperJob struct {
	handler commands.ReapExpiredGroupOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewExpiryReaperJob creates a new job for the expiry sweep.
// Uses ReapExpiredGroupOrdersCommandHandler to process elapsed group orders.
func NewExpiryReaperJob(handler commands.ReapExpiredGroupOrdersCommandHandler, logger *slog.Logger) *ExpiryReaperJob {
	return &ExpiryReaperJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "expiry_reaper_job"),
	}
}

// Start begins the expiry reaper job to run every 30 seconds.
func (j *ExpiryReaperJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewReapExpiredGroupOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Expiry reaper job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expiry reaper job started (running every 30 seconds)")
	return nil
}

// Stop stops the expiry reaper job.
func (j *ExpiryReaperJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Expiry reaper job stopped")
}
