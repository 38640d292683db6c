package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifemed_backend/internal/handlers"
	"lifemed_backend/internal/models"
	"lifemed_backend/internal/services/dto"
	"lifemed_backend/internal/validator"
	"lifemed_backend/pkg/apperrors"
)

// stubAuthService returns canned results per method.
type stubAuthService struct {
	loginResp *dto.LoginResponse
	loginErr  error

	registerResp *dto.UserResponse
	registerErr  error

	forgotErr error
	resetErr  error

	forgotCalls []string
}

func (s *stubAuthService) Login(_ *dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) Register(_ *dto.RegisterRequest) (*dto.UserResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) RegisterProfessional(_ *dto.RegisterProfessionalRequest) (*dto.UserResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) RegisterAdmin(_ *dto.RegisterAdminRequest) (*dto.UserResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) ForgotPassword(email string) error {
	s.forgotCalls = append(s.forgotCalls, email)
	return s.forgotErr
}

func (s *stubAuthService) ResetPassword(_, _ string) error {
	return s.resetErr
}

func newAuthRouter(t *testing.T, svc *stubAuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	base := handlers.NewBaseHandler(validator.New())
	handler := handlers.NewAuthHandler(base, svc)
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body struct {
		Error map[string]interface{} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body.Error
}

func TestLoginSuccess(t *testing.T) {
	svc := &stubAuthService{
		loginResp: &dto.LoginResponse{
			AccessToken: "token-123",
			User: &dto.UserResponse{
				ID:     "u1",
				Email:  "a@x.com",
				Name:   "Ana",
				Role:   models.UserRolePatient,
				Status: models.UserStatusPending,
			},
		},
	}
	router := newAuthRouter(t, svc)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		`{"email":"a@x.com","password":"secret1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "token-123", resp.AccessToken)
	assert.Equal(t, "a@x.com", resp.User.Email)
}

func TestLoginInvalidCredentialsShape(t *testing.T) {
	svc := &stubAuthService{loginErr: apperrors.ErrInvalidCredentials}
	router := newAuthRouter(t, svc)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		`{"email":"a@x.com","password":"wrong-pass"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	errBody := decodeErrorBody(t, rec)
	assert.Equal(t, string(apperrors.CodeInvalidCredentials), errBody["code"])
}

func TestLoginValidationErrorListsFields(t *testing.T) {
	router := newAuthRouter(t, &stubAuthService{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		`{"email":"not-an-email"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decodeErrorBody(t, rec)
	assert.Equal(t, string(apperrors.CodeValidationFailed), errBody["code"])
	details, ok := errBody["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
}

func TestLoginMalformedBody(t *testing.T) {
	router := newAuthRouter(t, &stubAuthService{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterCreated(t *testing.T) {
	svc := &stubAuthService{
		registerResp: &dto.UserResponse{
			ID:     "u1",
			Email:  "a@x.com",
			Name:   "Ana",
			Role:   models.UserRolePatient,
			Status: models.UserStatusPending,
		},
	}
	router := newAuthRouter(t, svc)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
		`{"email":"a@x.com","password":"secret1","name":"Ana","phone":"+55 11 99999-0000","dateOfBirth":"1990-04-12","gender":"female"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp dto.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.UserStatusPending, resp.Status)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	svc := &stubAuthService{registerErr: apperrors.ErrEmailAlreadyExists}
	router := newAuthRouter(t, svc)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
		`{"email":"a@x.com","password":"secret1","name":"Ana","phone":"+55 11 99999-0000","dateOfBirth":"1990-04-12","gender":"female"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	errBody := decodeErrorBody(t, rec)
	assert.Equal(t, string(apperrors.CodeAlreadyExists), errBody["code"])
}

func TestForgotPasswordResponseIsIdenticalOnFailure(t *testing.T) {
	okRouter := newAuthRouter(t, &stubAuthService{})
	failRouter := newAuthRouter(t, &stubAuthService{forgotErr: apperrors.ErrMailDelivery})

	body := `{"email":"a@x.com"}`
	okRec := doJSON(t, okRouter, http.MethodPost, "/api/v1/auth/forgot-password", body)
	failRec := doJSON(t, failRouter, http.MethodPost, "/api/v1/auth/forgot-password", body)

	assert.Equal(t, http.StatusOK, okRec.Code)
	assert.Equal(t, okRec.Code, failRec.Code)
	assert.JSONEq(t, okRec.Body.String(), failRec.Body.String())
	assert.Contains(t, okRec.Body.String(), "Se o e-mail existir")
}

func TestForgotPasswordRequiresValidEmail(t *testing.T) {
	svc := &stubAuthService{}
	router := newAuthRouter(t, svc)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/forgot-password",
		`{"email":"not-an-email"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.forgotCalls)
}

func TestResetPasswordSuccess(t *testing.T) {
	router := newAuthRouter(t, &stubAuthService{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/reset-password",
		`{"token":"tok","newPassword":"secret2"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Senha atualizada com sucesso")
}

func TestResetPasswordInvalidToken(t *testing.T) {
	router := newAuthRouter(t, &stubAuthService{resetErr: apperrors.ErrInvalidResetToken})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/reset-password",
		`{"token":"tok","newPassword":"secret2"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decodeErrorBody(t, rec)
	assert.Equal(t, string(apperrors.CodeInvalidToken), errBody["code"])
}

func TestResetPasswordExpiredToken(t *testing.T) {
	router := newAuthRouter(t, &stubAuthService{resetErr: apperrors.ErrExpiredResetToken})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/reset-password",
		`{"token":"tok","newPassword":"secret2"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decodeErrorBody(t, rec)
	assert.Equal(t, string(apperrors.CodeTokenExpired), errBody["code"])
}

func TestResetPasswordRejectsShortPassword(t *testing.T) {
	router := newAuthRouter(t, &stubAuthService{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/reset-password",
		`{"token":"tok","newPassword":"123"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decodeErrorBody(t, rec)
	details, ok := errBody["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "newPassword")
}
