package services_test

import (
	"lifemed_backend/internal/email"
	"lifemed_backend/internal/models"
	"lifemed_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory repository fakes. They honor the same sentinel errors as the
// GORM implementations so the services cannot tell them apart.

type fakeUserRepo struct {
	users []*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{}
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if _, err := r.FindByEmail(user.Email); err == nil {
		return repositories.ErrUserAlreadyExists
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) CreateWithProfile(user *models.User, profile *models.ProfessionalProfile) error {
	if err := r.Create(user); err != nil {
		return err
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	profile.UserID = user.ID
	user.ProfessionalProfile = profile
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	if _, err := r.FindByID(user.ID); err != nil {
		return err
	}
	return nil
}

func (r *fakeUserRepo) UpdateStatus(userID string, status models.UserStatus) error {
	user, err := r.FindByID(userID)
	if err != nil {
		return err
	}
	user.Status = status
	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(userID, passwordHash string) error {
	user, err := r.FindByID(userID)
	if err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) FindByRole(role models.UserRole) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	professional map[string]*models.ProfessionalProfile // keyed by user id
	patients     map[string]*models.PatientProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		professional: make(map[string]*models.ProfessionalProfile),
		patients:     make(map[string]*models.PatientProfile),
	}
}

func (r *fakeProfileRepo) UpsertProfessional(profile *models.ProfessionalProfile) error {
	existing, ok := r.professional[profile.UserID]
	if !ok {
		if profile.ID == "" {
			profile.ID = uuid.NewString()
		}
		if profile.Modality == "" {
			profile.Modality = models.ModalityVirtual
		}
		r.professional[profile.UserID] = profile
		return nil
	}

	if profile.ProfessionalLicense != "" {
		existing.ProfessionalLicense = profile.ProfessionalLicense
	}
	if profile.Specialty != "" {
		existing.Specialty = profile.Specialty
	}
	if profile.Subspecialty != "" {
		existing.Subspecialty = profile.Subspecialty
	}
	if profile.Bio != "" {
		existing.Bio = profile.Bio
	}
	if profile.PhotoURL != "" {
		existing.PhotoURL = profile.PhotoURL
	}
	if profile.Modality != "" {
		existing.Modality = profile.Modality
	}
	*profile = *existing
	return nil
}

func (r *fakeProfileRepo) CreatePatient(profile *models.PatientProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	r.patients[profile.UserID] = profile
	return nil
}

type fakeResetRepo struct {
	tokens map[string]*models.PasswordResetToken // keyed by token value
	users  *fakeUserRepo
}

func newFakeResetRepo(users *fakeUserRepo) *fakeResetRepo {
	return &fakeResetRepo{
		tokens: make(map[string]*models.PasswordResetToken),
		users:  users,
	}
}

func (r *fakeResetRepo) Create(token *models.PasswordResetToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeResetRepo) FindByToken(token string) (*models.PasswordResetToken, error) {
	if t, ok := r.tokens[token]; ok {
		return t, nil
	}
	return nil, repositories.ErrResetTokenNotFound
}

func (r *fakeResetRepo) Consume(token *models.PasswordResetToken, newPasswordHash string) error {
	if _, ok := r.tokens[token.Token]; !ok {
		return repositories.ErrResetTokenNotFound
	}
	if err := r.users.UpdatePasswordHash(token.UserID, newPasswordHash); err != nil {
		return err
	}
	delete(r.tokens, token.Token)
	return nil
}

func (r *fakeResetRepo) DeleteByID(id string) error {
	for value, t := range r.tokens {
		if t.ID == id {
			delete(r.tokens, value)
		}
	}
	return nil
}

func (r *fakeResetRepo) DeleteByUserID(userID string) error {
	for value, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, value)
		}
	}
	return nil
}

func (r *fakeResetRepo) tokensForUser(userID string) []*models.PasswordResetToken {
	var out []*models.PasswordResetToken
	for _, t := range r.tokens {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

// fakeMail records outbound mail instead of delivering it.
type fakeMail struct {
	resets   []recordedReset
	welcomes []recordedWelcome
	err      error
}

type recordedReset struct {
	To       string
	Name     string
	ResetURL string
}

type recordedWelcome struct {
	To   string
	Name string
}

func (m *fakeMail) Send(_ *email.Email) error { return m.err }

func (m *fakeMail) SendTemplate(_ []string, _ string, _ string, _ email.TemplateData) error {
	return m.err
}

func (m *fakeMail) Validate() error { return nil }

func (m *fakeMail) SendPasswordReset(to, name, resetURL string) error {
	if m.err != nil {
		return m.err
	}
	m.resets = append(m.resets, recordedReset{To: to, Name: name, ResetURL: resetURL})
	return nil
}

func (m *fakeMail) SendWelcome(to, name string) error {
	if m.err != nil {
		return m.err
	}
	m.welcomes = append(m.welcomes, recordedWelcome{To: to, Name: name})
	return nil
}
