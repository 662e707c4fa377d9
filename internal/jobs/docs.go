// Package jobs provides scheduled background tasks for the delivery
// coordination service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order lifecycle.
//
// # Available Jobs
//
// 1. AgentAssignmentJob - Runs every second to match preparing orders
// with available delivery agents, oldest order first.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(autoAssignHandler, logger)
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
// The assignment job uses the cron expression "* * * * * *", meaning it
// runs every second. Each tick keeps assigning until either pending
// orders or available agents run out, so a burst of cancellations frees
// agents for the whole backlog within one tick.
//
// # Error Handling
//
// The assignment job treats ErrNoPendingOrder and ErrNoAvailableAgent as
// expected empty rounds; everything else is logged as a failure.
package jobs
