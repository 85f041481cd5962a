package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"medicore/internal/converter"
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"
	"medicore/internal/service"
	"medicore/pkg/dateparse"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrLabProfileExists   = errors.New("lab assistant profile already exists")
	ErrLabProfileNotFound = errors.New("lab assistant profile not found")
	ErrReportNotFound     = errors.New("report not found")
)

type LabUsecase interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, req *dto.CreateLabAssistantRequest) (*dto.LabAssistantResponse, error)
	GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.LabAssistantResponse, error)
	UpdateMyProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateLabAssistantRequest) (*dto.LabAssistantResponse, error)
	ListPatients(ctx context.Context) ([]dto.PatientSummaryResponse, error)
	UploadReport(ctx context.Context, actor Actor, patientID uuid.UUID, input *dto.UploadReportInput) (*dto.UploadReportResponse, error)
	ListAllReports(ctx context.Context) ([]dto.DiagnosticReportResponse, error)
	ListPatientReports(ctx context.Context, patientID uuid.UUID) ([]dto.DiagnosticReportResponse, error)
	DeleteReportByRecordID(ctx context.Context, actor Actor, patientID, recordID uuid.UUID) error
	DeleteReportByReportID(ctx context.Context, actor Actor, reportID string) error
	Statistics(ctx context.Context) (*dto.LabStatisticsResponse, error)
	GetPatientDetails(ctx context.Context, patientID uuid.UUID) (*dto.PatientDetailsResponse, error)
}

type labUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	labRepo          repository.LabAssistantRepository
	patientRepo      repository.PatientRepository
	reportRepo       repository.DiagnosticReportRepository
	userRepo         repository.UserRepository
	prescriptionRepo repository.PrescriptionRepository
	appointmentRepo  repository.AppointmentRepository
	auditService     service.AuditService
}

func NewLabUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	labRepo repository.LabAssistantRepository,
	patientRepo repository.PatientRepository,
	reportRepo repository.DiagnosticReportRepository,
	userRepo repository.UserRepository,
	prescriptionRepo repository.PrescriptionRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) LabUsecase {
	return &labUsecase{
		db:               db,
		log:              log,
		labRepo:          labRepo,
		patientRepo:      patientRepo,
		reportRepo:       reportRepo,
		userRepo:         userRepo,
		prescriptionRepo: prescriptionRepo,
		appointmentRepo:  appointmentRepo,
		auditService:     auditService,
	}
}

func (u *labUsecase) CreateProfile(ctx context.Context, userID uuid.UUID, req *dto.CreateLabAssistantRequest) (*dto.LabAssistantResponse, error) {
	existing, err := u.labRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find lab profile: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrLabProfileExists
	}

	dob, err := dateparse.Date(req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDateOfBirth, err)
	}

	assistant := &entity.LabAssistant{
		UserID:      userID,
		DateOfBirth: dob,
		Gender:      entity.Gender(req.Gender),
		BloodGroup:  entity.BloodGroup(req.BloodGroup),
		ContactNo:   req.ContactNo,
		Hospital:    req.Hospital,
		Department:  req.Department,
	}

	if err := u.labRepo.Create(ctx, u.db, assistant); err != nil {
		if isDuplicateKeyError(err, "user_id") {
			return nil, ErrLabProfileExists
		}
		u.log.Warnf("Failed to create lab profile: %+v", err)
		return nil, err
	}

	return converter.LabAssistantToResponse(assistant), nil
}

func (u *labUsecase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.LabAssistantResponse, error) {
	assistant, err := u.labRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find lab profile: %+v", err)
		return nil, err
	}
	if assistant == nil {
		return nil, ErrLabProfileNotFound
	}
	return converter.LabAssistantToResponse(assistant), nil
}

func (u *labUsecase) UpdateMyProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateLabAssistantRequest) (*dto.LabAssistantResponse, error) {
	assistant, err := u.labRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find lab profile: %+v", err)
		return nil, err
	}
	if assistant == nil {
		return nil, ErrLabProfileNotFound
	}

	if req.DateOfBirth != nil {
		dob, err := dateparse.Date(*req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDateOfBirth, err)
		}
		assistant.DateOfBirth = dob
	}
	if req.Gender != nil {
		assistant.Gender = entity.Gender(*req.Gender)
	}
	if req.BloodGroup != nil {
		assistant.BloodGroup = entity.BloodGroup(*req.BloodGroup)
	}
	if req.ContactNo != nil {
		assistant.ContactNo = *req.ContactNo
	}
	if req.Hospital != nil {
		assistant.Hospital = *req.Hospital
	}
	if req.Department != nil {
		assistant.Department = *req.Department
	}

	if err := u.labRepo.Update(ctx, u.db, assistant); err != nil {
		u.log.Warnf("Failed to update lab profile: %+v", err)
		return nil, err
	}

	return converter.LabAssistantToResponse(assistant), nil
}

func (u *labUsecase) ListPatients(ctx context.Context) ([]dto.PatientSummaryResponse, error) {
	patients, err := u.patientRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	now := time.Now()
	result := make([]dto.PatientSummaryResponse, 0, len(patients))
	for i := range patients {
		result = append(result, *converter.PatientToSummary(&patients[i], now))
	}
	return result, nil
}

func (u *labUsecase) UploadReport(ctx context.Context, actor Actor, patientID uuid.UUID, input *dto.UploadReportInput) (*dto.UploadReportResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	uploader, err := u.userRepo.FindByID(ctx, u.db, actor.UserID)
	if err != nil {
		return nil, err
	}
	uploadedBy := ""
	if uploader != nil {
		uploadedBy = uploader.FullName
	}

	// Files are stored inline as data URIs, same shape browsers accept
	// directly in an <img>/<a> tag.
	fileURL := fmt.Sprintf("data:%s;base64,%s", input.ContentType, base64.StdEncoding.EncodeToString(input.Content))

	report := &entity.DiagnosticReport{
		ReportID:   uuid.New().String(),
		PatientID:  patient.ID,
		ReportType: input.ReportType,
		FileURL:    fileURL,
		Notes:      input.Notes,
		UploadedBy: uploadedBy,
		UploadedAt: time.Now().UTC(),
	}

	if err := u.reportRepo.Create(ctx, u.db, report); err != nil {
		u.log.Warnf("Failed to create report: %+v", err)
		return nil, err
	}

	u.auditService.LogAction(ctx, &actor.UserID, entity.AuditActionReportUpload, "diagnostic_report", report.ReportID, map[string]interface{}{
		"patient_id": patient.PatientID,
	})

	return &dto.UploadReportResponse{ReportID: report.ReportID}, nil
}

func (u *labUsecase) ListAllReports(ctx context.Context) ([]dto.DiagnosticReportResponse, error) {
	reports, err := u.reportRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list reports: %+v", err)
		return nil, err
	}
	return converter.ReportsToResponses(reports, nil), nil
}

func (u *labUsecase) ListPatientReports(ctx context.Context, patientID uuid.UUID) ([]dto.DiagnosticReportResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	reports, err := u.reportRepo.FindByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list reports: %+v", err)
		return nil, err
	}
	return converter.ReportsToResponses(reports, patient), nil
}

func (u *labUsecase) DeleteReportByRecordID(ctx context.Context, actor Actor, patientID, recordID uuid.UUID) error {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	affected, err := u.reportRepo.DeleteByRecordID(ctx, u.db, patient.ID, recordID)
	if err != nil {
		u.log.Warnf("Failed to delete report: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrReportNotFound
	}

	u.auditService.LogAction(ctx, &actor.UserID, entity.AuditActionReportDelete, "diagnostic_report", recordID.String(), nil)
	return nil
}

func (u *labUsecase) DeleteReportByReportID(ctx context.Context, actor Actor, reportID string) error {
	affected, err := u.reportRepo.DeleteByReportID(ctx, u.db, reportID)
	if err != nil {
		u.log.Warnf("Failed to delete report: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrReportNotFound
	}

	u.auditService.LogAction(ctx, &actor.UserID, entity.AuditActionReportDelete, "diagnostic_report", reportID, nil)
	return nil
}

func (u *labUsecase) Statistics(ctx context.Context) (*dto.LabStatisticsResponse, error) {
	totalPatients, err := u.patientRepo.Count(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}
	totalReports, err := u.reportRepo.Count(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count reports: %+v", err)
		return nil, err
	}

	return &dto.LabStatisticsResponse{
		TotalPatients:   totalPatients,
		ReportsUploaded: totalReports,
		PendingTests:    0,
	}, nil
}

func (u *labUsecase) GetPatientDetails(ctx context.Context, patientID uuid.UUID) (*dto.PatientDetailsResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	reports, err := u.reportRepo.FindByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		return nil, err
	}
	prescriptions, err := u.prescriptionRepo.FindByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		return nil, err
	}
	appointments, err := u.appointmentRepo.FindByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		return nil, err
	}

	return &dto.PatientDetailsResponse{
		Patient:           *converter.PatientToSearchResult(patient, reports, time.Now()),
		Prescriptions:     converter.PrescriptionsToSummaries(prescriptions),
		Appointments:      converter.AppointmentsToResponses(appointments),
		DiagnosticReports: converter.ReportsToResponses(reports, patient),
	}, nil
}
