package converter

import (
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
)

func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	resp := &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		AppointmentDate: appointment.AppointmentDate,
		Reason:          appointment.Reason,
		Notes:           appointment.Notes,
		Status:          appointment.Status,
		DoctorNotes:     appointment.DoctorNotes,
		RejectionReason: appointment.RejectionReason,
		AdminNotes:      appointment.AdminNotes,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}
	if appointment.Patient != nil {
		resp.PatientNumber = appointment.Patient.PatientID
		if appointment.Patient.User != nil {
			resp.PatientName = appointment.Patient.User.FullName
		}
	}
	if appointment.Doctor != nil {
		resp.DoctorName = appointment.Doctor.FullName
	}
	return resp
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		responses = append(responses, *AppointmentToResponse(&appointments[i]))
	}
	return responses
}
