package model

import "time"

// locations — справочник площадок для автодополнения. Только добавление.
type Location struct {
	Name      string    `gorm:"type:varchar(255);primaryKey" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
