package repositories

import (
	"errors"
	"time"

	"lifemed_backend/internal/models"

	"gorm.io/gorm"
)

var ErrResetTokenNotFound = errors.New("password reset token not found")

type PasswordResetRepository interface {
	Create(token *models.PasswordResetToken) error
	// FindByToken loads the token row joined with its owning user.
	FindByToken(token string) (*models.PasswordResetToken, error)
	// Consume updates the user's password hash and deletes the token row in
	// one transaction. Either both happen or neither does.
	Consume(token *models.PasswordResetToken, newPasswordHash string) error
	DeleteByID(id string) error
	DeleteByUserID(userID string) error
}

type PasswordResetRepositoryImpl struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &PasswordResetRepositoryImpl{db: db}
}

func (r *PasswordResetRepositoryImpl) Create(token *models.PasswordResetToken) error {
	return r.db.Create(token).Error
}

func (r *PasswordResetRepositoryImpl) FindByToken(token string) (*models.PasswordResetToken, error) {
	var reset models.PasswordResetToken
	err := r.db.Preload("User").First(&reset, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenNotFound
		}
		return nil, err
	}
	return &reset, nil
}

func (r *PasswordResetRepositoryImpl) Consume(token *models.PasswordResetToken, newPasswordHash string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).Where("id = ?", token.UserID).Updates(map[string]interface{}{
			"password_hash": newPasswordHash,
			"updated_at":    time.Now(),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		deleted := tx.Delete(&models.PasswordResetToken{}, "id = ?", token.ID)
		if deleted.Error != nil {
			return deleted.Error
		}
		if deleted.RowsAffected == 0 {
			// A concurrent redemption already consumed the token; roll back
			// the password change too.
			return ErrResetTokenNotFound
		}
		return nil
	})
}

func (r *PasswordResetRepositoryImpl) DeleteByID(id string) error {
	return r.db.Delete(&models.PasswordResetToken{}, "id = ?", id).Error
}

func (r *PasswordResetRepositoryImpl) DeleteByUserID(userID string) error {
	return r.db.Delete(&models.PasswordResetToken{}, "user_id = ?", userID).Error
}
