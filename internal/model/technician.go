package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// technicians
type Technician struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Email string `gorm:"type:varchar(255);not null;index" json:"email"`

	Phone      *string `gorm:"type:varchar(32)" json:"phone,omitempty"`
	DNI        *string `gorm:"column:dni;type:varchar(32)" json:"dni,omitempty"`
	Residencia *string `gorm:"type:varchar(255)" json:"residencia,omitempty"`

	Department Department `gorm:"type:varchar(16);not null;index" json:"department"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *Technician) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
