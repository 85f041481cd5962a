package dto

import (
	"time"

	"medicore/internal/domain/entity"

	"github.com/google/uuid"
)

type CreateLabAssistantRequest struct {
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	Gender      string `json:"gender" validate:"required,oneof=male female other"`
	BloodGroup  string `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	ContactNo   string `json:"contact_no" validate:"omitempty,max=30"`
	Hospital    string `json:"hospital" validate:"omitempty,max=255"`
	Department  string `json:"department" validate:"omitempty,max=255"`
}

type UpdateLabAssistantRequest struct {
	DateOfBirth *string `json:"date_of_birth"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=male female other"`
	BloodGroup  *string `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	ContactNo   *string `json:"contact_no"`
	Hospital    *string `json:"hospital"`
	Department  *string `json:"department"`
}

type LabAssistantResponse struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	DateOfBirth time.Time         `json:"date_of_birth"`
	Gender      entity.Gender     `json:"gender"`
	BloodGroup  entity.BloodGroup `json:"blood_group,omitempty"`
	ContactNo   string            `json:"contact_no,omitempty"`
	Hospital    string            `json:"hospital,omitempty"`
	Department  string            `json:"department,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// UploadReportInput carries a decoded multipart upload into the usecase.
type UploadReportInput struct {
	ReportType  string
	Notes       string
	FileName    string
	ContentType string
	Content     []byte
}

type UploadReportResponse struct {
	ReportID string `json:"report_id"`
}

type DiagnosticReportResponse struct {
	ID            uuid.UUID `json:"id"`
	ReportID      string    `json:"report_id"`
	PatientNumber string    `json:"patient_number,omitempty"`
	PatientName   string    `json:"patient_name,omitempty"`
	ReportType    string    `json:"report_type"`
	FileURL       string    `json:"file_url"`
	Notes         string    `json:"notes,omitempty"`
	UploadedBy    string    `json:"uploaded_by"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

type LabStatisticsResponse struct {
	TotalPatients   int64 `json:"total_patients"`
	ReportsUploaded int64 `json:"reports_uploaded"`
	PendingTests    int64 `json:"pending_tests"`
}
