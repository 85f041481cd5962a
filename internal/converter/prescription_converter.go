package converter

import (
	"encoding/json"

	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
)

func PrescriptionToSummary(prescription *entity.Prescription) *dto.PrescriptionSummaryResponse {
	resp := &dto.PrescriptionSummaryResponse{
		ID:              prescription.ID,
		PrescriptionID:  prescription.PrescriptionID,
		Diagnosis:       prescription.Diagnosis,
		Medicines:       prescription.Medicines,
		LabTestsOrdered: prescription.LabTestsOrdered,
		Advice:          prescription.Advice,
		FollowUpDate:    prescription.FollowUpDate,
		CreatedAt:       prescription.CreatedAt,
	}
	if prescription.Doctor != nil {
		resp.DoctorName = prescription.Doctor.FullName
	}
	if prescription.Patient != nil && prescription.Patient.User != nil {
		resp.PatientName = prescription.Patient.User.FullName
	}
	return resp
}

func PrescriptionsToSummaries(prescriptions []entity.Prescription) []dto.PrescriptionSummaryResponse {
	responses := make([]dto.PrescriptionSummaryResponse, 0, len(prescriptions))
	for i := range prescriptions {
		responses = append(responses, *PrescriptionToSummary(&prescriptions[i]))
	}
	return responses
}

func PrescriptionToDetails(prescription *entity.Prescription) *dto.PrescriptionDetailsResponse {
	resp := &dto.PrescriptionDetailsResponse{
		ID:              prescription.ID,
		PrescriptionID:  prescription.PrescriptionID,
		Diagnosis:       prescription.Diagnosis,
		Symptoms:        prescription.Symptoms,
		VitalSigns:      vitalSigns(prescription),
		Medicines:       prescription.Medicines,
		LabTestsOrdered: prescription.LabTestsOrdered,
		Advice:          prescription.Advice,
		FollowUpDate:    prescription.FollowUpDate,
		CreatedAt:       prescription.CreatedAt,
	}
	if prescription.Doctor != nil {
		resp.DoctorName = prescription.Doctor.FullName
	}
	if prescription.Patient != nil && prescription.Patient.User != nil {
		resp.PatientName = prescription.Patient.User.FullName
	}
	return resp
}

func vitalSigns(prescription *entity.Prescription) map[string]interface{} {
	if len(prescription.VitalSigns) == 0 {
		return nil
	}
	var signs map[string]interface{}
	if err := json.Unmarshal(prescription.VitalSigns, &signs); err != nil {
		return nil
	}
	return signs
}
