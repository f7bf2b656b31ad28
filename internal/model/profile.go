package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// profiles — учётная запись и роль. ID совпадает с идентификатором сессии.
type Profile struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Email string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`

	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	Role ProfileRole `gorm:"type:varchar(32);not null;default:'technician';index" json:"role"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
