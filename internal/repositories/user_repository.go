package repositories

import (
	"errors"
	"time"

	"lifemed_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	// CreateWithProfile creates the user and its professional profile in one
	// transaction, so a half-registered professional can never be observed.
	CreateWithProfile(user *models.User, profile *models.ProfessionalProfile) error
	Update(user *models.User) error
	UpdateStatus(userID string, status models.UserStatus) error
	UpdatePasswordHash(userID, passwordHash string) error
	FindByRole(role models.UserRole) ([]models.User, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("ProfessionalProfile").Preload("PatientProfile").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("ProfessionalProfile").Preload("PatientProfile").
		First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	err := r.db.Create(user).Error
	return translateDuplicate(err)
}

func (r *UserRepositoryImpl) CreateWithProfile(user *models.User, profile *models.ProfessionalProfile) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
	if err != nil {
		return translateDuplicate(err)
	}
	user.ProfessionalProfile = profile
	return nil
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	result := r.db.Model(user).Updates(map[string]interface{}{
		"email":         user.Email,
		"name":          user.Name,
		"phone":         user.Phone,
		"date_of_birth": user.DateOfBirth,
		"gender":        user.Gender,
		"status":        user.Status,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return translateDuplicate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateStatus(userID string, status models.UserStatus) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePasswordHash(userID, passwordHash string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindByRole(role models.UserRole) ([]models.User, error) {
	var users []models.User
	err := r.db.Preload("ProfessionalProfile").Preload("PatientProfile").
		Where("role = ?", role).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

// translateDuplicate maps unique-constraint violations to the sentinel error,
// so two racing registrations for the same email surface as a conflict to the
// loser instead of an opaque database error.
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserAlreadyExists
	}
	return err
}
