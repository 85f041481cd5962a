package converter

import (
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
)

func LabAssistantToResponse(assistant *entity.LabAssistant) *dto.LabAssistantResponse {
	return &dto.LabAssistantResponse{
		ID:          assistant.ID,
		UserID:      assistant.UserID,
		DateOfBirth: assistant.DateOfBirth,
		Gender:      assistant.Gender,
		BloodGroup:  assistant.BloodGroup,
		ContactNo:   assistant.ContactNo,
		Hospital:    assistant.Hospital,
		Department:  assistant.Department,
		CreatedAt:   assistant.CreatedAt,
		UpdatedAt:   assistant.UpdatedAt,
	}
}

// ReportToResponse renders a report row. The patient argument is optional and
// fills in the display fields when the relation is not preloaded.
func ReportToResponse(report *entity.DiagnosticReport, patient *entity.Patient) *dto.DiagnosticReportResponse {
	resp := &dto.DiagnosticReportResponse{
		ID:         report.ID,
		ReportID:   report.ReportID,
		ReportType: report.ReportType,
		FileURL:    report.FileURL,
		Notes:      report.Notes,
		UploadedBy: report.UploadedBy,
		UploadedAt: report.UploadedAt,
	}
	if patient == nil {
		patient = report.Patient
	}
	if patient != nil {
		resp.PatientNumber = patient.PatientID
		if patient.User != nil {
			resp.PatientName = patient.User.FullName
		}
	}
	return resp
}

func ReportsToResponses(reports []entity.DiagnosticReport, patient *entity.Patient) []dto.DiagnosticReportResponse {
	responses := make([]dto.DiagnosticReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, *ReportToResponse(&reports[i], patient))
	}
	return responses
}
