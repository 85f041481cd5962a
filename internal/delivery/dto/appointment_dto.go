package dto

import (
	"time"

	"medicore/internal/domain/entity"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	DoctorID        string `json:"doctor_id" validate:"required,uuid"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
	Reason          string `json:"reason" validate:"required,max=2000"`
	Notes           string `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateAppointmentStatusRequest struct {
	Status          string `json:"status" validate:"required,oneof=pending confirmed rejected completed cancelled"`
	DoctorNotes     string `json:"doctor_notes" validate:"omitempty,max=2000"`
	RejectionReason string `json:"rejection_reason" validate:"omitempty,max=2000"`
	AdminNotes      string `json:"admin_notes" validate:"omitempty,max=2000"`
}

// UpdateAppointmentRequest reschedules or annotates an appointment. Patients
// may only send reason and notes; date and status are admin-only.
type UpdateAppointmentRequest struct {
	Reason          *string `json:"reason"`
	Notes           *string `json:"notes"`
	AppointmentDate *string `json:"appointment_date"`
	Status          *string `json:"status" validate:"omitempty,oneof=pending confirmed rejected completed cancelled"`
	AdminNotes      *string `json:"admin_notes"`
}

type AppointmentResponse struct {
	ID              uuid.UUID                `json:"id"`
	PatientID       uuid.UUID                `json:"patient_id"`
	PatientNumber   string                   `json:"patient_number,omitempty"`
	PatientName     string                   `json:"patient_name,omitempty"`
	DoctorID        uuid.UUID                `json:"doctor_id"`
	DoctorName      string                   `json:"doctor_name,omitempty"`
	AppointmentDate time.Time                `json:"appointment_date"`
	Reason          string                   `json:"reason"`
	Notes           string                   `json:"notes,omitempty"`
	Status          entity.AppointmentStatus `json:"status"`
	DoctorNotes     string                   `json:"doctor_notes,omitempty"`
	RejectionReason string                   `json:"rejection_reason,omitempty"`
	AdminNotes      string                   `json:"admin_notes,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// DoctorDirectoryResponse is the public listing of bookable doctors.
type DoctorDirectoryResponse struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Specialization string    `json:"specialization,omitempty"`
}
