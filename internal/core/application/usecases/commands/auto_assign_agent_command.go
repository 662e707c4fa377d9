package commands

import (
	"errors"

	"gatebite/internal/pkg/guard"
)

var ErrAutoAssignAgentCommandIsNotConstructed = errors.New(
	"AutoAssignAgentCommand must be created via NewAutoAssignAgentCommand constructor",
)

// AutoAssignAgentCommand triggers one round of automatic assignment: match
// the oldest unassigned preparing order with an available agent. Carries no
// payload; the handler finds the work itself.
type AutoAssignAgentCommand struct {
	guard guard.ConstructorGuard
}

// NewAutoAssignAgentCommand creates an automatic assignment command.
func NewAutoAssignAgentCommand() AutoAssignAgentCommand {
	return AutoAssignAgentCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c AutoAssignAgentCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignAgentCommandIsNotConstructed)
}
