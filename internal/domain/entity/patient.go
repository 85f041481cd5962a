package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Gender of a patient
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// BloodGroup uses the standard ABO/Rh notation
type BloodGroup string

const (
	BloodGroupAPositive  BloodGroup = "A+"
	BloodGroupANegative  BloodGroup = "A-"
	BloodGroupBPositive  BloodGroup = "B+"
	BloodGroupBNegative  BloodGroup = "B-"
	BloodGroupABPositive BloodGroup = "AB+"
	BloodGroupABNegative BloodGroup = "AB-"
	BloodGroupOPositive  BloodGroup = "O+"
	BloodGroupONegative  BloodGroup = "O-"
)

// Patient represents the medical profile linked to a patient user
type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"patient_id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	// Personal information
	DateOfBirth          time.Time  `gorm:"not null" json:"date_of_birth"`
	Gender               Gender     `gorm:"type:varchar(10);not null" json:"gender"`
	BloodGroup           BloodGroup `gorm:"type:varchar(5)" json:"blood_group,omitempty"`
	Address              string     `gorm:"type:text" json:"address,omitempty"`
	EmergencyContact     string     `gorm:"type:varchar(30)" json:"emergency_contact,omitempty"`
	EmergencyContactName string     `gorm:"type:varchar(255)" json:"emergency_contact_name,omitempty"`

	// Medical profile
	Allergies          datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"allergies"`
	ChronicConditions  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"chronic_conditions"`
	PastOperations     datatypes.JSON              `gorm:"type:jsonb" json:"past_operations,omitempty"`
	CurrentMedications datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"current_medications"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User              *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	DiagnosticReports []DiagnosticReport `gorm:"foreignKey:PatientID" json:"diagnostic_reports,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// Age in whole years at the given instant
func (p *Patient) Age(now time.Time) int {
	years := now.Year() - p.DateOfBirth.Year()
	anniversary := p.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
