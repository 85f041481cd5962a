package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"medicore/internal/delivery/dto"
	"medicore/internal/delivery/http/middleware"
	"medicore/internal/usecase"
	"medicore/pkg/response"
	"medicore/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type LabHandler struct {
	labUsecase usecase.LabUsecase
	validator  *validator.CustomValidator
}

func NewLabHandler(labUsecase usecase.LabUsecase, validator *validator.CustomValidator) *LabHandler {
	return &LabHandler{
		labUsecase: labUsecase,
		validator:  validator,
	}
}

func (h *LabHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req dto.CreateLabAssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.labUsecase.CreateProfile(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrLabProfileExists):
			response.Conflict(w, "Lab assistant profile already exists")
		case errors.Is(err, usecase.ErrInvalidDateOfBirth):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create lab assistant profile")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Lab assistant profile created successfully", profile)
}

func (h *LabHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	profile, err := h.labUsecase.GetMyProfile(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrLabProfileNotFound:
			response.NotFound(w, "Lab assistant profile not found")
		default:
			response.InternalServerError(w, "Failed to get lab assistant profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Lab assistant profile retrieved successfully", profile)
}

func (h *LabHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req dto.UpdateLabAssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.labUsecase.UpdateMyProfile(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrLabProfileNotFound):
			response.NotFound(w, "Lab assistant profile not found")
		case errors.Is(err, usecase.ErrInvalidDateOfBirth):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update lab assistant profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Lab assistant profile updated successfully", profile)
}

func (h *LabHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.labUsecase.ListPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *LabHandler) UploadReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	content, header, err := readUploadedFile(r, "file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "A file upload named 'file' is required", nil)
		return
	}

	input := &dto.UploadReportInput{
		ReportType:  r.FormValue("report_type"),
		Notes:       r.FormValue("notes"),
		FileName:    header.Filename,
		ContentType: uploadContentType(header),
		Content:     content,
	}
	if input.ReportType == "" {
		response.Error(w, http.StatusBadRequest, "Form field 'report_type' is required", nil)
		return
	}

	result, err := h.labUsecase.UploadReport(r.Context(), actor, patientID, input)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to upload report")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Report uploaded successfully", result)
}

func (h *LabHandler) ListAllReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.labUsecase.ListAllReports(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list reports")
		return
	}

	response.Success(w, http.StatusOK, "Reports retrieved successfully", reports)
}

func (h *LabHandler) ListPatientReports(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	reports, err := h.labUsecase.ListPatientReports(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to list reports")
		}
		return
	}

	response.Success(w, http.StatusOK, "Reports retrieved successfully", reports)
}

func (h *LabHandler) DeletePatientReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	vars := mux.Vars(r)
	patientID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}
	recordID, err := uuid.Parse(vars["reportId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid report ID", nil)
		return
	}

	if err := h.labUsecase.DeleteReportByRecordID(r.Context(), actor, patientID, recordID); err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrReportNotFound:
			response.NotFound(w, "Report not found")
		default:
			response.InternalServerError(w, "Failed to delete report")
		}
		return
	}

	response.Success(w, http.StatusOK, "Report deleted successfully", nil)
}

func (h *LabHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	reportID := mux.Vars(r)["reportId"]
	if reportID == "" {
		response.Error(w, http.StatusBadRequest, "Invalid report ID", nil)
		return
	}

	if err := h.labUsecase.DeleteReportByReportID(r.Context(), actor, reportID); err != nil {
		switch err {
		case usecase.ErrReportNotFound:
			response.NotFound(w, "Report not found")
		default:
			response.InternalServerError(w, "Failed to delete report")
		}
		return
	}

	response.Success(w, http.StatusOK, "Report deleted successfully", nil)
}

func (h *LabHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.labUsecase.Statistics(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get statistics")
		return
	}

	response.Success(w, http.StatusOK, "Statistics retrieved successfully", stats)
}

func (h *LabHandler) GetPatientDetails(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	details, err := h.labUsecase.GetPatientDetails(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get patient details")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient details retrieved successfully", details)
}
