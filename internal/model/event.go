package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Тип события аудита.
type EventType string

const (
	EventTypeTourCreated       EventType = "tour_created"
	EventTypeJobCreated        EventType = "job_created"
	EventTypeJobUpdated        EventType = "job_updated"
	EventTypeJobDeleted        EventType = "job_deleted"
	EventTypeAssignmentCreated EventType = "assignment_created"
	EventTypeAssignmentDeleted EventType = "assignment_deleted"
	EventTypeTechnicianDeleted EventType = "technician_deleted"
	EventTypeRoleChanged       EventType = "role_changed"
)

// events — журнал изменений, пишется по возможности.
type Event struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	EventType EventType `gorm:"type:varchar(64);not null;index"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	ProfileID *uuid.UUID `gorm:"type:uuid;index"`
	JobID     *uuid.UUID `gorm:"type:uuid;index"`

	Details datatypes.JSON
}

func (e *Event) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
