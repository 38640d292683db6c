package models

import "time"

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Name         string     `gorm:"not null" json:"name"`
	Phone        string     `json:"phone,omitempty"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	Role         UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`

	// Relations
	ProfessionalProfile *ProfessionalProfile `gorm:"foreignKey:UserID" json:"professionalProfile,omitempty"`
	PatientProfile      *PatientProfile      `gorm:"foreignKey:UserID" json:"patientProfile,omitempty"`
	ResetTokens         []PasswordResetToken `gorm:"foreignKey:UserID" json:"-"`
}

// PasswordResetToken is a single-use opaque credential. The row is deleted
// when the token is redeemed, and also when it is found expired at redemption.
type PasswordResetToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`

	User *User `gorm:"foreignKey:UserID"`
}

// Expired reports whether the token's expiry timestamp has passed.
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
