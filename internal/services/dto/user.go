package dto

import (
	"time"

	"lifemed_backend/internal/models"
)

// UserResponse is the sanitized user view. The password hash never leaves
// the service layer.
type UserResponse struct {
	ID                  string                      `json:"id"`
	Email               string                      `json:"email"`
	Name                string                      `json:"name"`
	Phone               string                      `json:"phone,omitempty"`
	DateOfBirth         *time.Time                  `json:"dateOfBirth,omitempty"`
	Gender              string                      `json:"gender,omitempty"`
	Role                models.UserRole             `json:"role"`
	Status              models.UserStatus           `json:"status"`
	ProfessionalProfile *models.ProfessionalProfile `json:"professionalProfile,omitempty"`
	PatientProfile      *models.PatientProfile      `json:"patientProfile,omitempty"`
}

// NewUserResponse builds the sanitized view from a model.
func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:                  user.ID,
		Email:               user.Email,
		Name:                user.Name,
		Phone:               user.Phone,
		DateOfBirth:         user.DateOfBirth,
		Gender:              user.Gender,
		Role:                user.Role,
		Status:              user.Status,
		ProfessionalProfile: user.ProfessionalProfile,
		PatientProfile:      user.PatientProfile,
	}
}

type UpdateUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender" validate:"is-gender"`

	// Professional profile fields, upserted when present.
	Specialty           string `json:"specialty"`
	Subspecialty        string `json:"subspecialty"`
	ProfessionalLicense string `json:"professionalLicense"`
	Bio                 string `json:"bio"`
	PhotoURL            string `json:"photoUrl" validate:"omitempty,url"`
	Modality            string `json:"modality" validate:"is-modality"`

	// Explicit status overrides the computed onboarding default.
	Status string `json:"status" validate:"is-user-status"`
}

// HasUserFields reports whether the update carries any of the user's own
// columns, as opposed to profile fields or a bare status change.
func (r *UpdateUserRequest) HasUserFields() bool {
	return r.Name != "" || r.Email != "" || r.Phone != "" ||
		r.DateOfBirth != "" || r.Gender != ""
}

// HasProfessionalFields reports whether the update carries anything destined
// for the professional profile.
func (r *UpdateUserRequest) HasProfessionalFields() bool {
	return r.Specialty != "" || r.Subspecialty != "" || r.ProfessionalLicense != "" ||
		r.Bio != "" || r.PhotoURL != "" || r.Modality != ""
}

// ProfessionalSummary is the projection returned by the professionals listing.
type ProfessionalSummary struct {
	ID                  string                      `json:"id"`
	Name                string                      `json:"name"`
	Email               string                      `json:"email"`
	Status              models.UserStatus           `json:"status"`
	ProfessionalProfile *ProfessionalProfileSummary `json:"professionalProfile,omitempty"`
}

type ProfessionalProfileSummary struct {
	ID                  string `json:"id"`
	Specialty           string `json:"specialty"`
	ProfessionalLicense string `json:"professionalLicense"`
}

// PatientSummary is the projection returned by the patients listing.
type PatientSummary struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Email          string                 `json:"email"`
	Status         models.UserStatus      `json:"status"`
	PatientProfile *models.PatientProfile `json:"patientProfile,omitempty"`
}
