package entity

import (
	"time"

	"github.com/google/uuid"
)

// LabAssistant represents the profile linked to a lab assistant user
type LabAssistant struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	DateOfBirth time.Time  `gorm:"not null" json:"date_of_birth"`
	Gender      Gender     `gorm:"type:varchar(10);not null" json:"gender"`
	BloodGroup  BloodGroup `gorm:"type:varchar(5)" json:"blood_group,omitempty"`
	ContactNo   string     `gorm:"type:varchar(30)" json:"contact_no,omitempty"`
	Hospital    string     `gorm:"type:varchar(255)" json:"hospital,omitempty"`
	Department  string     `gorm:"type:varchar(255)" json:"department,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (LabAssistant) TableName() string {
	return "lab_assistants"
}
