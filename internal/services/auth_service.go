package services

import (
	"fmt"
	"time"

	"lifemed_backend/internal/auth"
	"lifemed_backend/internal/email"
	"lifemed_backend/internal/logger"
	"lifemed_backend/internal/models"
	"lifemed_backend/internal/repositories"
	"lifemed_backend/internal/services/dto"
	"lifemed_backend/pkg/apperrors"
)

type AuthService interface {
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	Register(req *dto.RegisterRequest) (*dto.UserResponse, error)
	RegisterProfessional(req *dto.RegisterProfessionalRequest) (*dto.UserResponse, error)
	RegisterAdmin(req *dto.RegisterAdminRequest) (*dto.UserResponse, error)
	ForgotPassword(email string) error
	ResetPassword(token, newPassword string) error
}

// minPasswordLength matches the min=6 rule on the registration and
// reset-password payloads.
const minPasswordLength = 6

// AuthConfig carries the values auth flows need, passed at construction.
type AuthConfig struct {
	FrontendBaseURL string
	ResetTokenTTL   time.Duration
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	resetRepo   repositories.PasswordResetRepository
	mail        email.Provider
	signer      *auth.TokenSigner
	cfg         AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	resetRepo repositories.PasswordResetRepository,
	mail email.Provider,
	signer *auth.TokenSigner,
	cfg AuthConfig,
) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		resetRepo:   resetRepo,
		mail:        mail,
		signer:      signer,
		cfg:         cfg,
	}
}

// Login verifies credentials and issues a signed session token. Unknown
// email and wrong password fail with the same error.
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.signer.Generate(user.ID, string(user.Role), user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		User:        dto.NewUserResponse(user),
	}, nil
}

// Register creates a patient account with status PENDING.
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.UserResponse, error) {
	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{
			"dateOfBirth": "Must be a date in YYYY-MM-DD format",
		})
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Phone:        req.Phone,
		DateOfBirth:  dob,
		Gender:       req.Gender,
		Role:         models.UserRolePatient,
		Status:       models.UserStatusPending,
	}

	if err := s.createUser(user); err != nil {
		return nil, err
	}

	patientProfile := &models.PatientProfile{UserID: user.ID}
	if err := s.profileRepo.CreatePatient(patientProfile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.PatientProfile = patientProfile

	s.sendWelcome(user)

	return dto.NewUserResponse(user), nil
}

// RegisterProfessional creates the user and its professional profile in a
// single transaction.
func (s *AuthServiceImpl) RegisterProfessional(req *dto.RegisterProfessionalRequest) (*dto.UserResponse, error) {
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Role:         models.UserRoleProfessional,
		Status:       models.UserStatusPending,
	}

	modality := models.AppointmentModality(req.Modality)
	if modality == "" {
		modality = models.ModalityVirtual
	}
	profile := &models.ProfessionalProfile{
		ProfessionalLicense: req.ProfessionalLicense,
		Specialty:           req.Specialty,
		Subspecialty:        req.Subspecialty,
		Bio:                 req.Bio,
		Modality:            modality,
	}

	if err := s.userRepo.CreateWithProfile(user, profile); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendWelcome(user)

	return dto.NewUserResponse(user), nil
}

// RegisterAdmin creates an administrator account, verified from the start.
func (s *AuthServiceImpl) RegisterAdmin(req *dto.RegisterAdminRequest) (*dto.UserResponse, error) {
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusVerified,
	}

	if err := s.createUser(user); err != nil {
		return nil, err
	}

	return dto.NewUserResponse(user), nil
}

// ForgotPassword issues a reset token and mails the redemption link. A nil
// return for an unknown email is deliberate: the handler always answers with
// the same generic message, so responses never reveal whether an account
// exists.
func (s *AuthServiceImpl) ForgotPassword(emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	// One outstanding token per user: a new request supersedes earlier ones.
	if err := s.resetRepo.DeleteByUserID(user.ID); err != nil {
		return apperrors.InternalError(err)
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     auth.GenerateOpaqueToken(),
		ExpiresAt: time.Now().Add(s.cfg.ResetTokenTTL),
	}
	if err := s.resetRepo.Create(token); err != nil {
		return apperrors.InternalError(err)
	}

	if s.mail == nil {
		logger.Warn("Mail provider not configured, skipping password reset email", "user_id", user.ID)
		return nil
	}

	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", s.cfg.FrontendBaseURL, token.Token)
	if err := s.mail.SendPasswordReset(user.Email, user.Name, resetURL); err != nil {
		// Surfaced to the handler for logging; the client response stays generic.
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError, "mail",
			"Failed to send password reset email", apperrors.ErrMailDelivery.HTTPCode)
	}

	return nil
}

// ResetPassword redeems a token: the password update and the token deletion
// commit together or not at all. An expired token is consumed on sight.
func (s *AuthServiceImpl) ResetPassword(token, newPassword string) error {
	// The HTTP layer validates this too; callers reaching the service
	// directly get the same floor.
	if len(newPassword) < minPasswordLength {
		return apperrors.ErrWeakPassword
	}

	reset, err := s.resetRepo.FindByToken(token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrResetTokenNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.InternalError(err)
	}

	if reset.Expired(time.Now()) {
		if err := s.resetRepo.DeleteByID(reset.ID); err != nil {
			logger.WithError(err).Warn("Failed to delete expired reset token", "token_id", reset.ID)
		}
		return apperrors.ErrExpiredResetToken
	}

	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.resetRepo.Consume(reset, passwordHash); err != nil {
		if apperrors.Is(err, repositories.ErrResetTokenNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.InternalError(err)
	}

	return nil
}

// sendWelcome is best effort: a mail failure never fails the registration.
func (s *AuthServiceImpl) sendWelcome(user *models.User) {
	if s.mail == nil {
		return
	}
	if err := s.mail.SendWelcome(user.Email, user.Name); err != nil {
		logger.WithError(err).Warn("Failed to send welcome email", "user_id", user.ID)
	}
}

func (s *AuthServiceImpl) createUser(user *models.User) error {
	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrEmailAlreadyExists
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func parseDateOfBirth(value string) (*time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unparseable date: %q", value)
}
