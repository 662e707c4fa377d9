// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"gatebite/internal/core/domain/model/kernel"
	"gatebite/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and agent assignment.
//
// created_at and updated_at are owned by the aggregate, not by GORM's
// auto-timestamps: updated_at is part of the ordering contract on the
// tracking stream and must survive round trips unchanged.
type OrderDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ConfirmationCode    string     `gorm:"column:confirmation_code;size:50;uniqueIndex;not null"`
	RestaurantID        int64      `gorm:"column:restaurant_id;not null"`
	RestaurantName      string     `gorm:"column:restaurant_name"`
	UserName            string     `gorm:"column:user_name;not null"`
	UserContact         string     `gorm:"column:user_contact;not null"`
	BoardingGate        string     `gorm:"column:boarding_gate;not null"`
	FlightNumber        *string    `gorm:"column:flight_number;size:20"`
	Status              string     `gorm:"column:status;size:32;index;not null"`
	AgentID             *int64     `gorm:"column:agent_id;index"`
	DeliveryOTP         *string    `gorm:"column:delivery_otp;size:16"`
	EstimatedPickupTime *time.Time `gorm:"column:estimated_pickup_time"`
	CreatedAt           time.Time  `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:               aggregate.ID().Value(),
		ConfirmationCode: aggregate.ConfirmationCode(),
		RestaurantID:     aggregate.RestaurantID(),
		RestaurantName:   aggregate.RestaurantName(),
		UserName:         aggregate.UserName(),
		UserContact:      aggregate.UserContact(),
		BoardingGate:     aggregate.BoardingGate(),
		FlightNumber:     aggregate.FlightNumber(),
		Status:           aggregate.Status().String(),
		AgentID:          aggregate.Agent(),
		DeliveryOTP:      aggregate.DeliveryOTP(),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
	}

	if t := aggregate.EstimatedPickupTime(); !t.IsZero() {
		dto.EstimatedPickupTime = &t
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate through RestoreOrder so corrupted rows
// fail loudly instead of producing impossible states.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var estimatedPickupTime time.Time
	if dto.EstimatedPickupTime != nil {
		estimatedPickupTime = dto.EstimatedPickupTime.UTC()
	}

	return order.RestoreOrder(
		id,
		dto.ConfirmationCode,
		dto.RestaurantID,
		dto.RestaurantName,
		dto.UserName,
		dto.UserContact,
		dto.BoardingGate,
		dto.FlightNumber,
		status,
		dto.AgentID,
		dto.DeliveryOTP,
		estimatedPickupTime,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}
