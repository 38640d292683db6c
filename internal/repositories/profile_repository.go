package repositories

import (
	"errors"

	"lifemed_backend/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	// UpsertProfessional creates the profile when absent, otherwise merges the
	// given non-empty fields into the stored row.
	UpsertProfessional(profile *models.ProfessionalProfile) error
	CreatePatient(profile *models.PatientProfile) error
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) UpsertProfessional(profile *models.ProfessionalProfile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.ProfessionalProfile
		err := tx.First(&existing, "user_id = ?", profile.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if profile.Modality == "" {
				profile.Modality = models.ModalityVirtual
			}
			return tx.Create(profile).Error
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if profile.ProfessionalLicense != "" {
			updates["professional_license"] = profile.ProfessionalLicense
		}
		if profile.Specialty != "" {
			updates["specialty"] = profile.Specialty
		}
		if profile.Subspecialty != "" {
			updates["subspecialty"] = profile.Subspecialty
		}
		if profile.Bio != "" {
			updates["bio"] = profile.Bio
		}
		if profile.PhotoURL != "" {
			updates["photo_url"] = profile.PhotoURL
		}
		if profile.Modality != "" {
			updates["modality"] = profile.Modality
		}
		if len(updates) == 0 {
			*profile = existing
			return nil
		}

		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		*profile = existing
		return nil
	})
}

func (r *ProfileRepositoryImpl) CreatePatient(profile *models.PatientProfile) error {
	return r.db.Create(profile).Error
}
