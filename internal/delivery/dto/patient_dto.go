package dto

import (
	"time"

	"medicore/internal/domain/entity"

	"github.com/google/uuid"
)

type CreatePatientRequest struct {
	DateOfBirth          string                   `json:"date_of_birth" validate:"required"`
	Gender               string                   `json:"gender" validate:"required,oneof=male female other"`
	BloodGroup           string                   `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Address              string                   `json:"address" validate:"omitempty,max=1000"`
	EmergencyContact     string                   `json:"emergency_contact" validate:"omitempty,max=30"`
	EmergencyContactName string                   `json:"emergency_contact_name" validate:"omitempty,max=255"`
	Allergies            []string                 `json:"allergies"`
	ChronicConditions    []string                 `json:"chronic_conditions"`
	PastOperations       []map[string]interface{} `json:"past_operations"`
	CurrentMedications   []string                 `json:"current_medications"`
}

// UpdatePatientRequest applies only the fields present in the payload.
type UpdatePatientRequest struct {
	DateOfBirth          *string                   `json:"date_of_birth"`
	Gender               *string                   `json:"gender" validate:"omitempty,oneof=male female other"`
	BloodGroup           *string                   `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Address              *string                   `json:"address"`
	EmergencyContact     *string                   `json:"emergency_contact"`
	EmergencyContactName *string                   `json:"emergency_contact_name"`
	Allergies            *[]string                 `json:"allergies"`
	ChronicConditions    *[]string                 `json:"chronic_conditions"`
	PastOperations       *[]map[string]interface{} `json:"past_operations"`
	CurrentMedications   *[]string                 `json:"current_medications"`
}

type PatientResponse struct {
	ID                   uuid.UUID                `json:"id"`
	PatientID            string                   `json:"patient_id"`
	UserID               uuid.UUID                `json:"user_id"`
	DateOfBirth          time.Time                `json:"date_of_birth"`
	Gender               entity.Gender            `json:"gender"`
	BloodGroup           entity.BloodGroup        `json:"blood_group,omitempty"`
	Address              string                   `json:"address,omitempty"`
	EmergencyContact     string                   `json:"emergency_contact,omitempty"`
	EmergencyContactName string                   `json:"emergency_contact_name,omitempty"`
	Allergies            []string                 `json:"allergies"`
	ChronicConditions    []string                 `json:"chronic_conditions"`
	PastOperations       []map[string]interface{} `json:"past_operations,omitempty"`
	CurrentMedications   []string                 `json:"current_medications"`
	CreatedAt            time.Time                `json:"created_at"`
	UpdatedAt            time.Time                `json:"updated_at"`
}

// PatientSummaryResponse is the compact listing row used by search and lab
// patient lists.
type PatientSummaryResponse struct {
	ID         uuid.UUID         `json:"id"`
	PatientID  string            `json:"patient_id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Age        *int              `json:"age,omitempty"`
	Gender     entity.Gender     `json:"gender"`
	BloodGroup entity.BloodGroup `json:"blood_group,omitempty"`
}

// PatientSearchInput carries the doctor search filters from query params.
type PatientSearchInput struct {
	Query      string
	BloodGroup string
	Condition  string
	MinAge     *int
	MaxAge     *int
}

type PatientSearchResult struct {
	PatientSummaryResponse
	DateOfBirth          time.Time                  `json:"date_of_birth"`
	Address              string                     `json:"address,omitempty"`
	EmergencyContact     string                     `json:"emergency_contact,omitempty"`
	EmergencyContactName string                     `json:"emergency_contact_name,omitempty"`
	Allergies            []string                   `json:"allergies"`
	ChronicConditions    []string                   `json:"chronic_conditions"`
	CurrentMedications   []string                   `json:"current_medications"`
	PastOperations       []map[string]interface{}   `json:"past_operations,omitempty"`
	DiagnosticReports    []DiagnosticReportResponse `json:"diagnostic_reports"`
	CreatedAt            time.Time                  `json:"created_at"`
	UpdatedAt            time.Time                  `json:"updated_at"`
}

// PatientDetailsResponse is the composed doctor/lab view of one patient.
type PatientDetailsResponse struct {
	Patient           PatientSearchResult           `json:"patient"`
	Prescriptions     []PrescriptionSummaryResponse `json:"prescriptions"`
	Appointments      []AppointmentResponse         `json:"appointments"`
	DiagnosticReports []DiagnosticReportResponse    `json:"diagnostic_reports"`
}
