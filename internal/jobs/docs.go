// Package jobs provides scheduled background tasks for the group order
// coordination engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the engine.
//
// # Available Jobs
//
// 1. ExpiryReaperJob - Runs every 30 seconds to expire group orders whose TTL elapsed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reapExpiredHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reaper uses the cron expression "*/30 * * * * *", a 30 second cadence.
// Lazy expiry on access keeps user-facing behavior correct between sweeps, so
// the reaper does not need to run more often.
//
// # Error Handling
//
// - Sweep failures are logged and retried on the next tick
// - A group order that lost its optimistic version check is skipped, not retried
package jobs
