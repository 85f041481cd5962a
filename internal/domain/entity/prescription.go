package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Medicine is one prescribed item
type Medicine struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions,omitempty"`
}

// Prescription is an append-only clinical record written by a doctor
type Prescription struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PrescriptionID string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"prescription_id"`
	PatientID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentID  *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id,omitempty"`

	// Clinical details
	Diagnosis  string         `gorm:"type:text;not null" json:"diagnosis"`
	Symptoms   string         `gorm:"type:text" json:"symptoms,omitempty"`
	VitalSigns datatypes.JSON `gorm:"type:jsonb" json:"vital_signs,omitempty"`

	Medicines             datatypes.JSONSlice[Medicine] `gorm:"type:jsonb" json:"medicines"`
	LabTestsOrdered       datatypes.JSONSlice[string]   `gorm:"type:jsonb" json:"lab_tests_ordered"`
	Advice                string                        `gorm:"type:text" json:"advice,omitempty"`
	FollowUpDate          *time.Time                    `json:"follow_up_date,omitempty"`
	FollowUpReminderSent  bool                          `gorm:"not null;default:false" json:"follow_up_reminder_sent"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}
