package dto

import (
	"time"

	"medicore/internal/domain/entity"

	"github.com/google/uuid"
)

type CreatePrescriptionRequest struct {
	PatientID       string                 `json:"patient_id" validate:"required,uuid"`
	AppointmentID   *string                `json:"appointment_id" validate:"omitempty,uuid"`
	Diagnosis       string                 `json:"diagnosis" validate:"required,max=5000"`
	Symptoms        string                 `json:"symptoms" validate:"omitempty,max=5000"`
	VitalSigns      map[string]interface{} `json:"vital_signs"`
	Medicines       []entity.Medicine      `json:"medicines" validate:"omitempty,dive"`
	LabTestsOrdered []string               `json:"lab_tests_ordered"`
	Advice          string                 `json:"advice" validate:"omitempty,max=5000"`
	FollowUpDate    *string                `json:"follow_up_date"`
}

type CreatePrescriptionResponse struct {
	ID             uuid.UUID `json:"id"`
	PrescriptionID string    `json:"prescription_id"`
}

type PrescriptionSummaryResponse struct {
	ID              uuid.UUID         `json:"id"`
	PrescriptionID  string            `json:"prescription_id"`
	DoctorName      string            `json:"doctor_name"`
	PatientName     string            `json:"patient_name,omitempty"`
	Diagnosis       string            `json:"diagnosis"`
	Medicines       []entity.Medicine `json:"medicines"`
	LabTestsOrdered []string          `json:"lab_tests_ordered"`
	Advice          string            `json:"advice,omitempty"`
	FollowUpDate    *time.Time        `json:"follow_up_date,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

type PrescriptionDetailsResponse struct {
	ID              uuid.UUID              `json:"id"`
	PrescriptionID  string                 `json:"prescription_id"`
	DoctorName      string                 `json:"doctor_name"`
	PatientName     string                 `json:"patient_name"`
	Diagnosis       string                 `json:"diagnosis"`
	Symptoms        string                 `json:"symptoms,omitempty"`
	VitalSigns      map[string]interface{} `json:"vital_signs,omitempty"`
	Medicines       []entity.Medicine      `json:"medicines"`
	LabTestsOrdered []string               `json:"lab_tests_ordered"`
	Advice          string                 `json:"advice,omitempty"`
	FollowUpDate    *time.Time             `json:"follow_up_date,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}
