package agent

import (
	"errors"
	"fmt"

	"gatebite/internal/pkg/errs"
	"gatebite/internal/pkg/guard"
)

// Domain errors for delivery agent operations.
var (
	// ErrAgentIsNotConstructed is returned when using an improperly initialized DeliveryAgent.
	ErrAgentIsNotConstructed = errors.New("DeliveryAgent must be created via NewDeliveryAgent or RestoreDeliveryAgent")
	// ErrAgentUnavailable is returned when assigning work to an agent that is not available.
	ErrAgentUnavailable = errors.New("agent is not available")
	// ErrAgentNotBusy is returned when releasing an agent that has no active assignment.
	ErrAgentNotBusy = errors.New("agent has no active assignment")
)

// AgentStatus represents the availability of a delivery agent.
type AgentStatus int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown AgentStatus = iota
	// StatusAvailable means the agent can take an order.
	StatusAvailable
	// StatusBusy means the agent is carrying an order.
	StatusBusy
)

// String returns the persistence representation of the agent status.
func (s AgentStatus) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// AgentStatusFromString parses the persistence representation of an agent status.
func AgentStatusFromString(s string) (AgentStatus, error) {
	switch s {
	case "available":
		return StatusAvailable, nil
	case "busy":
		return StatusBusy, nil
	default:
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"agent status is invalid",
			fmt.Errorf("%q is not a valid agent status", s),
		)
	}
}

// DeliveryAgent represents a courier working the terminal. Agents are a
// trusted identity in this system: the agent code is what the agent app
// logs in with, and the id is what orders reference.
//
// Business rules:
//   - an agent must have a positive id, a non-empty name and a non-empty code
//   - only an available agent can be assigned an order
//   - the agent's location tracks the gate of its active assignment
type DeliveryAgent struct {
	// id uniquely identifies the agent
	id int64
	// name is the human-readable name of the agent
	name string
	// code is the unique login code, e.g. "AGENT742"
	code string
	// status tracks whether the agent can take an order
	status AgentStatus
	// currentLocation is the terminal or gate the agent is working toward
	currentLocation string
	// guard ensures the agent was properly constructed
	guard guard.ConstructorGuard
}

// NewDeliveryAgent creates a new available agent.
//
// Parameters:
//   - id: unique identifier (must be positive)
//   - name: human-readable name (must be non-empty)
//   - code: unique login code (must be non-empty)
func NewDeliveryAgent(id int64, name, code string) (*DeliveryAgent, error) {
	a := &DeliveryAgent{
		status: StatusAvailable,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setCode(code),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreDeliveryAgent reconstructs an agent from persisted state.
func RestoreDeliveryAgent(id int64, name, code string, status AgentStatus, currentLocation string) (*DeliveryAgent, error) {
	a := &DeliveryAgent{
		currentLocation: currentLocation,
		status:          status,
		guard:           guard.NewConstructorGuard(),
	}

	if status != StatusAvailable && status != StatusBusy {
		return nil, errs.NewValueIsInvalidError("agent status")
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setCode(code),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the agent was created through a factory method.
func (a *DeliveryAgent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

// ID returns the agent's unique identifier.
func (a *DeliveryAgent) ID() int64 {
	return a.id
}

// Name returns the agent's human-readable name.
func (a *DeliveryAgent) Name() string {
	return a.name
}

// Code returns the agent's unique login code.
func (a *DeliveryAgent) Code() string {
	return a.code
}

// Status returns the agent's current availability.
func (a *DeliveryAgent) Status() AgentStatus {
	return a.status
}

// CurrentLocation returns the terminal or gate of the active assignment,
// empty when the agent has none.
func (a *DeliveryAgent) CurrentLocation() string {
	return a.currentLocation
}

// IsAvailable reports whether the agent can take an order.
func (a *DeliveryAgent) IsAvailable() bool {
	return a.status == StatusAvailable
}

// Assign marks the agent busy and points it at the delivery gate.
// Fails with ErrAgentUnavailable unless the agent is available.
func (a *DeliveryAgent) Assign(gate string) error {
	if a.status != StatusAvailable {
		return ErrAgentUnavailable
	}

	a.status = StatusBusy
	a.currentLocation = gate
	return nil
}

// Release returns the agent to the available pool after its order reaches a
// terminal state. Fails with ErrAgentNotBusy if there is nothing to release.
func (a *DeliveryAgent) Release() error {
	if a.status != StatusBusy {
		return ErrAgentNotBusy
	}

	a.status = StatusAvailable
	a.currentLocation = ""
	return nil
}

// setID validates and sets the agent's identifier.
func (a *DeliveryAgent) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("agentID", fmt.Errorf("%d is not greater than 0", id))
	}
	a.id = id
	return nil
}

// setName validates and sets the agent's name.
func (a *DeliveryAgent) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}

// setCode validates and sets the agent's login code.
func (a *DeliveryAgent) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	a.code = code
	return nil
}
