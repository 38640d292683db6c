package database

import (
	"lifemed_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.ProfessionalProfile{},
		&models.PatientProfile{},
		&models.PasswordResetToken{},
	)
}
