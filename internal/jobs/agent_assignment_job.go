package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"

	"gatebite/internal/core/application/usecases/commands"
)

// AgentAssignmentJob manages the scheduled matching of delivery agents to
// preparing orders. Runs every second so a freed-up agent is put back to
// work without a dashboard user clicking anything.
type AgentAssignmentJob struct {
	handler commands.AutoAssignAgentCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAgentAssignmentJob creates a new job for automatic agent assignment.
func NewAgentAssignmentJob(handler commands.AutoAssignAgentCommandHandler, logger *slog.Logger) *AgentAssignmentJob {
	return &AgentAssignmentJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "agent_assignment_job"),
	}
}

// Start begins the agent assignment job to run every second. Each tick
// drains the backlog: assignments repeat until either pending orders or
// available agents run out.
func (j *AgentAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		for {
			cmd := commands.NewAutoAssignAgentCommand()
			_, err := j.handler.Handle(ctx, cmd)
			if err == nil {
				continue
			}

			// Both empty-round outcomes are expected business scenarios.
			if !errors.Is(err, commands.ErrNoPendingOrder) && !errors.Is(err, commands.ErrNoAvailableAgent) {
				j.logger.ErrorContext(ctx, "Agent assignment job failed", "error", err)
			}
			return
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Agent assignment job started (running every second)")
	return nil
}

// Stop stops the agent assignment job.
func (j *AgentAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Agent assignment job stopped")
}
