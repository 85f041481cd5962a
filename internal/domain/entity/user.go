package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access role carried on every user account
type Role string

const (
	RolePatient      Role = "patient"
	RoleDoctor       Role = "doctor"
	RoleLabAssistant Role = "lab_assistant"
	RoleAdmin        Role = "admin"
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleLabAssistant, RoleAdmin:
		return true
	}
	return false
}

// User represents the centralized authentication table
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"type:text;not null" json:"-"`
	FullName   string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Role       Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	Phone      string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	IsActive   *bool     `gorm:"not null;default:true;index" json:"is_active"`
	IsVerified bool      `gorm:"not null;default:false" json:"is_verified"`

	// Doctor specific fields
	HospitalEmail  string `gorm:"type:varchar(255)" json:"hospital_email,omitempty"`
	Specialization string `gorm:"type:varchar(255)" json:"specialization,omitempty"`
	LicenseNumber  string `gorm:"type:varchar(100)" json:"license_number,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient       *Patient       `gorm:"foreignKey:UserID" json:"patient,omitempty"`
	DoctorProfile *DoctorProfile `gorm:"foreignKey:UserID" json:"doctor_profile,omitempty"`
	LabAssistant  *LabAssistant  `gorm:"foreignKey:UserID" json:"lab_assistant,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Active treats a missing flag as active, matching the column default
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}
