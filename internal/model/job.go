package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobType string

const (
	JobTypeSingle JobType = "single"
	JobTypeTour   JobType = "tour"
)

// jobs — одиночные события, туры и даты туров.
// Строка с TourID — это дата тура (всегда single), сам тур TourID не имеет.
type Job struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Title       string  `gorm:"type:varchar(255);not null" json:"title"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	// Свободный текст, подсказки берутся из реестра locations.
	Location *string `gorm:"type:varchar(255)" json:"location,omitempty"`

	JobType JobType    `gorm:"type:varchar(16);not null;default:'single';index" json:"job_type"`
	TourID  *uuid.UUID `gorm:"type:uuid;index" json:"tour_id,omitempty"`

	Color *string `gorm:"type:varchar(16)" json:"color,omitempty"`

	Departments datatypes.JSONSlice[Department] `gorm:"not null" json:"departments"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (j *Job) BeforeCreate(*gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

func (j *Job) IsTour() bool { return j.JobType == JobTypeTour }

// IsTourDate — дата тура, привязанная к родителю.
func (j *Job) IsTourDate() bool { return j.TourID != nil }

// HasDepartment проверяет, отмечен ли цех на работе.
func (j *Job) HasDepartment(d Department) bool {
	for _, jd := range j.Departments {
		if jd == d {
			return true
		}
	}
	return false
}
