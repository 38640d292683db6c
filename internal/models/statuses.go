package models

type UserRole string
type UserStatus string
type AppointmentModality string

const (
	UserRolePatient      UserRole = "PATIENT"
	UserRoleProfessional UserRole = "PROFESSIONAL"
	UserRoleAdmin        UserRole = "ADMIN"

	// Onboarding advances PENDING -> COMPLETED -> VERIFIED. BLOCKED is an
	// administrative side state reachable from VERIFIED (and back).
	UserStatusPending   UserStatus = "PENDING"
	UserStatusCompleted UserStatus = "COMPLETED"
	UserStatusVerified  UserStatus = "VERIFIED"
	UserStatusBlocked   UserStatus = "BLOCKED"

	ModalityVirtual   AppointmentModality = "VIRTUAL"
	ModalityHomeVisit AppointmentModality = "HOME_VISIT"
	ModalityClinic    AppointmentModality = "CLINIC"
)
