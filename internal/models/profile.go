package models

type ProfessionalProfile struct {
	BaseModel
	UserID              string              `gorm:"uniqueIndex;not null" json:"-"`
	ProfessionalLicense string              `json:"professionalLicense"`
	Specialty           string              `json:"specialty"`
	Subspecialty        string              `json:"subspecialty,omitempty"`
	Bio                 string              `json:"bio,omitempty"`
	PhotoURL            string              `json:"photoUrl,omitempty"`
	Modality            AppointmentModality `gorm:"type:varchar(20);default:'VIRTUAL'" json:"modality"`
}

// Complete reports whether the profile carries the fields an administrator
// needs to verify the professional.
func (p *ProfessionalProfile) Complete() bool {
	return p != nil && p.ProfessionalLicense != "" && p.Specialty != ""
}

type PatientProfile struct {
	BaseModel
	UserID string `gorm:"uniqueIndex;not null" json:"-"`
	Notes  string `json:"notes,omitempty"`
}
