package converter

import (
	"encoding/json"
	"time"

	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
)

func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	return &dto.PatientResponse{
		ID:                   patient.ID,
		PatientID:            patient.PatientID,
		UserID:               patient.UserID,
		DateOfBirth:          patient.DateOfBirth,
		Gender:               patient.Gender,
		BloodGroup:           patient.BloodGroup,
		Address:              patient.Address,
		EmergencyContact:     patient.EmergencyContact,
		EmergencyContactName: patient.EmergencyContactName,
		Allergies:            patient.Allergies,
		ChronicConditions:    patient.ChronicConditions,
		PastOperations:       pastOperations(patient),
		CurrentMedications:   patient.CurrentMedications,
		CreatedAt:            patient.CreatedAt,
		UpdatedAt:            patient.UpdatedAt,
	}
}

func PatientToSummary(patient *entity.Patient, now time.Time) *dto.PatientSummaryResponse {
	summary := &dto.PatientSummaryResponse{
		ID:         patient.ID,
		PatientID:  patient.PatientID,
		Gender:     patient.Gender,
		BloodGroup: patient.BloodGroup,
	}
	if patient.User != nil {
		summary.Name = patient.User.FullName
		summary.Email = patient.User.Email
	}
	if !patient.DateOfBirth.IsZero() {
		age := patient.Age(now)
		summary.Age = &age
	}
	return summary
}

func PatientToSearchResult(patient *entity.Patient, reports []entity.DiagnosticReport, now time.Time) *dto.PatientSearchResult {
	return &dto.PatientSearchResult{
		PatientSummaryResponse: *PatientToSummary(patient, now),
		DateOfBirth:            patient.DateOfBirth,
		Address:                patient.Address,
		EmergencyContact:       patient.EmergencyContact,
		EmergencyContactName:   patient.EmergencyContactName,
		Allergies:              patient.Allergies,
		ChronicConditions:      patient.ChronicConditions,
		CurrentMedications:     patient.CurrentMedications,
		PastOperations:         pastOperations(patient),
		DiagnosticReports:      ReportsToResponses(reports, patient),
		CreatedAt:              patient.CreatedAt,
		UpdatedAt:              patient.UpdatedAt,
	}
}

func pastOperations(patient *entity.Patient) []map[string]interface{} {
	if len(patient.PastOperations) == 0 {
		return nil
	}
	var ops []map[string]interface{}
	if err := json.Unmarshal(patient.PastOperations, &ops); err != nil {
		return nil
	}
	return ops
}
