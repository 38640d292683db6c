package services

import (
	"lifemed_backend/internal/models"
	"lifemed_backend/internal/repositories"
	"lifemed_backend/internal/services/dto"
	"lifemed_backend/pkg/apperrors"
)

type UserService interface {
	GetByID(id string) (*dto.UserResponse, error)
	// Update applies a partial update. actorIsAdmin gates explicit status
	// writes: self-service updates cannot change account status.
	Update(id string, req *dto.UpdateUserRequest, actorIsAdmin bool) (*dto.UserResponse, error)
	ListProfessionals() ([]dto.ProfessionalSummary, error)
	ListPatients() ([]dto.PatientSummary, error)
}

type UserServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewUserService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (s *UserServiceImpl) GetByID(id string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// Update applies partial user fields and upserts the professional profile.
// When a PENDING professional ends up with both a license and a specialty
// after the merge, the status advances to COMPLETED automatically. An
// explicit status in the request is an administrator-only write validated
// against the onboarding state machine.
func (s *UserServiceImpl) Update(id string, req *dto.UpdateUserRequest, actorIsAdmin bool) (*dto.UserResponse, error) {
	if req.Status != "" && !actorIsAdmin {
		return nil, apperrors.NewForbiddenError("Only administrators can change account status")
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	newStatus := user.Status
	if user.Role == models.UserRoleProfessional && user.Status == models.UserStatusPending {
		if s.mergedProfileComplete(user, req) {
			newStatus = models.UserStatusCompleted
		}
	}
	if req.Status != "" {
		requested := models.UserStatus(req.Status)
		if !statusTransitionAllowed(newStatus, requested) {
			return nil, apperrors.ErrInvalidStatusTransition
		}
		newStatus = requested
	}

	// A bare status change skips the full column update.
	if !req.HasUserFields() && !req.HasProfessionalFields() {
		if newStatus != user.Status {
			if err := s.userRepo.UpdateStatus(user.ID, newStatus); err != nil {
				if apperrors.Is(err, repositories.ErrUserNotFound) {
					return nil, apperrors.ErrUserNotFound
				}
				return nil, apperrors.InternalError(err)
			}
		}
		user.Status = newStatus
		return dto.NewUserResponse(user), nil
	}

	if err := applyUserFields(user, req); err != nil {
		return nil, err
	}
	user.Status = newStatus
	if err := s.userRepo.Update(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if user.Role == models.UserRoleProfessional && req.HasProfessionalFields() {
		profile := &models.ProfessionalProfile{
			UserID:              user.ID,
			ProfessionalLicense: req.ProfessionalLicense,
			Specialty:           req.Specialty,
			Subspecialty:        req.Subspecialty,
			Bio:                 req.Bio,
			PhotoURL:            req.PhotoURL,
			Modality:            models.AppointmentModality(req.Modality),
		}
		if err := s.profileRepo.UpsertProfessional(profile); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.ProfessionalProfile = profile
	}

	return dto.NewUserResponse(user), nil
}

func (s *UserServiceImpl) ListProfessionals() ([]dto.ProfessionalSummary, error) {
	users, err := s.userRepo.FindByRole(models.UserRoleProfessional)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	summaries := make([]dto.ProfessionalSummary, 0, len(users))
	for _, user := range users {
		summary := dto.ProfessionalSummary{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Status: user.Status,
		}
		if user.ProfessionalProfile != nil {
			summary.ProfessionalProfile = &dto.ProfessionalProfileSummary{
				ID:                  user.ProfessionalProfile.ID,
				Specialty:           user.ProfessionalProfile.Specialty,
				ProfessionalLicense: user.ProfessionalProfile.ProfessionalLicense,
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *UserServiceImpl) ListPatients() ([]dto.PatientSummary, error) {
	users, err := s.userRepo.FindByRole(models.UserRolePatient)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	summaries := make([]dto.PatientSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, dto.PatientSummary{
			ID:             user.ID,
			Name:           user.Name,
			Email:          user.Email,
			Status:         user.Status,
			PatientProfile: user.PatientProfile,
		})
	}
	return summaries, nil
}

// mergedProfileComplete merges stored profile values with the update's values
// and checks for both a license and a specialty.
func (s *UserServiceImpl) mergedProfileComplete(user *models.User, req *dto.UpdateUserRequest) bool {
	hasLicense := req.ProfessionalLicense != ""
	hasSpecialty := req.Specialty != ""
	if user.ProfessionalProfile != nil {
		hasLicense = hasLicense || user.ProfessionalProfile.ProfessionalLicense != ""
		hasSpecialty = hasSpecialty || user.ProfessionalProfile.Specialty != ""
	}
	return hasLicense && hasSpecialty
}

// statusTransitionAllowed enforces the forward-only onboarding state machine:
// PENDING -> COMPLETED -> VERIFIED, with BLOCKED reachable from VERIFIED and
// back. Setting the current status again is a no-op, not a violation.
func statusTransitionAllowed(from, to models.UserStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case models.UserStatusPending:
		return to == models.UserStatusCompleted
	case models.UserStatusCompleted:
		return to == models.UserStatusVerified
	case models.UserStatusVerified:
		return to == models.UserStatusBlocked
	case models.UserStatusBlocked:
		return to == models.UserStatusVerified
	default:
		return false
	}
}

func applyUserFields(user *models.User, req *dto.UpdateUserRequest) error {
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.DateOfBirth != "" {
		dob, err := parseDateOfBirth(req.DateOfBirth)
		if err != nil {
			return apperrors.ValidationError(map[string]string{
				"dateOfBirth": "Must be a date in YYYY-MM-DD format",
			})
		}
		user.DateOfBirth = dob
	}
	return nil
}
