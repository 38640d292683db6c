package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string        `json:"accessToken"`
	User        *UserResponse `json:"user"`
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
	Gender      string `json:"gender" validate:"required,is-gender"`
}

type RegisterProfessionalRequest struct {
	Email               string `json:"email" validate:"required,email"`
	Password            string `json:"password" validate:"required,min=6"`
	Name                string `json:"name" validate:"required"`
	ProfessionalLicense string `json:"professionalLicense" validate:"required"`
	Specialty           string `json:"specialty" validate:"required"`
	Subspecialty        string `json:"subspecialty"`
	Modality            string `json:"modality" validate:"is-modality"`
	Bio                 string `json:"bio"`
}

type RegisterAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// MessageResponse is the generic body returned by the reset endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
