package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the users, tools and bookings tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&toolModel{},
		&bookingModel{},
	)
}
