package entity

import (
	"time"

	"github.com/google/uuid"
)

// DiagnosticReport is a lab result attached to a patient. The row has two
// lookup keys: ID is the internal record key, ReportID is the identifier
// handed back to callers on upload.
type DiagnosticReport struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ReportID  string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"report_id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`

	ReportType string    `gorm:"type:varchar(100);not null" json:"report_type"`
	FileURL    string    `gorm:"type:text;not null" json:"file_url"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	UploadedBy string    `gorm:"type:varchar(255)" json:"uploaded_by"`
	UploadedAt time.Time `gorm:"not null" json:"uploaded_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (DiagnosticReport) TableName() string {
	return "diagnostic_reports"
}
