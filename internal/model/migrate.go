package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех таблиц.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Profile{},
		&Location{},
		&Job{},
		&Technician{},
		&Assignment{},
		&Event{},
	)
}
