package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentStatus string

const (
	AssignmentStatusPending   AssignmentStatus = "pending"
	AssignmentStatusConfirmed AssignmentStatus = "confirmed"
	AssignmentStatusDeclined  AssignmentStatus = "declined"
)

// job_assignments — техник на работе.
// Заполнена ровно одна из колонок ролей: та, что соответствует цеху назначения.
type Assignment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	JobID        uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	TechnicianID uuid.UUID `gorm:"type:uuid;not null;index" json:"technician_id"`

	Status AssignmentStatus `gorm:"type:varchar(32);not null;default:'pending'" json:"status"`

	SoundRole  *string `gorm:"type:varchar(64)" json:"sound_role,omitempty"`
	LightsRole *string `gorm:"type:varchar(64)" json:"lights_role,omitempty"`
	VideoRole  *string `gorm:"type:varchar(64)" json:"video_role,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Навигация для чтения; каскадов на уровне БД нет.
	Technician *Technician `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
}

func (Assignment) TableName() string { return "job_assignments" }

func (a *Assignment) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
