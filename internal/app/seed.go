package app

import (
	"errors"

	"lifemed_backend/internal/auth"
	"lifemed_backend/internal/config"
	"lifemed_backend/internal/logger"
	"lifemed_backend/internal/models"

	"gorm.io/gorm"
)

// seedFirstAdmin creates the bootstrap administrator account when configured
// and absent. Missing credentials only log a warning.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.App.AdminSeedEmail
	adminPassword := cfg.App.AdminSeedPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("Admin seed credentials not configured, skipping admin creation")
		return nil
	}

	var existing models.User
	err := db.First(&existing, "email = ?", adminEmail).Error
	if err == nil {
		logger.Info("Admin user already exists", "email", adminEmail)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Name:         cfg.App.AdminSeedName,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusVerified,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("Admin user seeded", "email", adminEmail)
	return nil
}
