// Package agentrepo provides data transfer objects and mapping functions for
// delivery agent persistence.
package agentrepo

import (
	"gatebite/internal/core/domain/model/agent"
)

// AgentDTO represents the database structure for persisting agent aggregates.
// Agent identifiers come from the upstream roster, not from the database, so
// auto increment is off.
type AgentDTO struct {
	ID              int64  `gorm:"primaryKey;autoIncrement:false"`
	Name            string `gorm:"column:name;not null"`
	Code            string `gorm:"column:code;size:20;uniqueIndex;not null"`
	Status          string `gorm:"column:status;size:16;index;not null"`
	CurrentLocation string `gorm:"column:current_location;size:100"`
}

// TableName specifies the database table name for agent entities.
func (AgentDTO) TableName() string {
	return "agents"
}

// fromDomain converts an agent domain aggregate to its database representation.
func fromDomain(aggregate *agent.DeliveryAgent) AgentDTO {
	return AgentDTO{
		ID:              aggregate.ID(),
		Name:            aggregate.Name(),
		Code:            aggregate.Code(),
		Status:          aggregate.Status().String(),
		CurrentLocation: aggregate.CurrentLocation(),
	}
}

// toDomain converts a database DTO to an agent domain aggregate.
func toDomain(dto AgentDTO) (*agent.DeliveryAgent, error) {
	status, err := agent.AgentStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return agent.RestoreDeliveryAgent(dto.ID, dto.Name, dto.Code, status, dto.CurrentLocation)
}
