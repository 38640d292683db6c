package validator

import (
	"log"
	"strings"

	"lifemed_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the enum validation tags used by the DTOs.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup misconfiguration.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-user-status", validateUserStatus)
	mustRegister("is-modality", validateModality)
	mustRegister("is-gender", validateGender)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is 'required' territory
	}
	switch models.UserRole(value) {
	case models.UserRolePatient, models.UserRoleProfessional, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateUserStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserStatus(value) {
	case models.UserStatusPending, models.UserStatusCompleted, models.UserStatusVerified, models.UserStatusBlocked:
		return true
	default:
		return false
	}
}

func validateModality(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.AppointmentModality(value) {
	case models.ModalityVirtual, models.ModalityHomeVisit, models.ModalityClinic:
		return true
	default:
		return false
	}
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch strings.ToLower(value) {
	case "male", "female", "other":
		return true
	default:
		return false
	}
}
