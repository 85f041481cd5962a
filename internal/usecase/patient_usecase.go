package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"medicore/internal/converter"
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"
	"medicore/pkg/dateparse"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientProfileExists   = errors.New("patient profile already exists")
	ErrPatientProfileNotFound = errors.New("patient profile not found")
	ErrPatientNotFound        = errors.New("patient not found")
	ErrInvalidDateOfBirth     = errors.New("invalid date of birth")
)

type PatientUsecase interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error)
	UpdateMyProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	GetMyReports(ctx context.Context, userID uuid.UUID) ([]dto.DiagnosticReportResponse, error)
	Search(ctx context.Context, input *dto.PatientSearchInput) ([]dto.PatientSearchResult, error)
	GetDetails(ctx context.Context, patientID uuid.UUID) (*dto.PatientDetailsResponse, error)
	GetPatientAppointments(ctx context.Context, patientID uuid.UUID) ([]dto.AppointmentResponse, error)
	GetPatientPrescriptions(ctx context.Context, patientID uuid.UUID) ([]dto.PrescriptionSummaryResponse, error)
}

type patientUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	patientRepo      repository.PatientRepository
	reportRepo       repository.DiagnosticReportRepository
	appointmentRepo  repository.AppointmentRepository
	prescriptionRepo repository.PrescriptionRepository
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	reportRepo repository.DiagnosticReportRepository,
	appointmentRepo repository.AppointmentRepository,
	prescriptionRepo repository.PrescriptionRepository,
) PatientUsecase {
	return &patientUsecase{
		db:               db,
		log:              log,
		patientRepo:      patientRepo,
		reportRepo:       reportRepo,
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
	}
}

// GeneratePatientNumber builds a caller-facing patient identifier,
// e.g. MED2026123456.
func GeneratePatientNumber(now time.Time) string {
	return fmt.Sprintf("MED%d%06d", now.Year(), rand.Intn(1000000))
}

func (u *patientUsecase) CreateProfile(ctx context.Context, userID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	existing, err := u.patientRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient by user ID: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrPatientProfileExists
	}

	dob, err := dateparse.Date(req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDateOfBirth, err)
	}

	patient := &entity.Patient{
		PatientID:            GeneratePatientNumber(time.Now()),
		UserID:               userID,
		DateOfBirth:          dob,
		Gender:               entity.Gender(req.Gender),
		BloodGroup:           entity.BloodGroup(req.BloodGroup),
		Address:              req.Address,
		EmergencyContact:     req.EmergencyContact,
		EmergencyContactName: req.EmergencyContactName,
		Allergies:            emptyIfNil(req.Allergies),
		ChronicConditions:    emptyIfNil(req.ChronicConditions),
		CurrentMedications:   emptyIfNil(req.CurrentMedications),
	}
	if len(req.PastOperations) > 0 {
		raw, err := json.Marshal(req.PastOperations)
		if err != nil {
			return nil, err
		}
		patient.PastOperations = raw
	}

	// The generated number can collide; retry with a fresh one.
	for attempt := 0; ; attempt++ {
		err = u.patientRepo.Create(ctx, u.db, patient)
		if err == nil {
			break
		}
		if isDuplicateKeyError(err, "user_id") {
			return nil, ErrPatientProfileExists
		}
		if isDuplicateKeyError(err, "patient_id") && attempt < 2 {
			patient.PatientID = GeneratePatientNumber(time.Now())
			continue
		}
		u.log.Warnf("Failed to create patient profile: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient by user ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientProfileNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) UpdateMyProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient by user ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientProfileNotFound
	}

	if req.DateOfBirth != nil {
		dob, err := dateparse.Date(*req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDateOfBirth, err)
		}
		patient.DateOfBirth = dob
	}
	if req.Gender != nil {
		patient.Gender = entity.Gender(*req.Gender)
	}
	if req.BloodGroup != nil {
		patient.BloodGroup = entity.BloodGroup(*req.BloodGroup)
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.EmergencyContact != nil {
		patient.EmergencyContact = *req.EmergencyContact
	}
	if req.EmergencyContactName != nil {
		patient.EmergencyContactName = *req.EmergencyContactName
	}
	if req.Allergies != nil {
		patient.Allergies = *req.Allergies
	}
	if req.ChronicConditions != nil {
		patient.ChronicConditions = *req.ChronicConditions
	}
	if req.CurrentMedications != nil {
		patient.CurrentMedications = *req.CurrentMedications
	}
	if req.PastOperations != nil {
		raw, err := json.Marshal(*req.PastOperations)
		if err != nil {
			return nil, err
		}
		patient.PastOperations = raw
	}

	if err := u.patientRepo.Update(ctx, u.db, patient); err != nil {
		u.log.Warnf("Failed to update patient profile: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetMyReports(ctx context.Context, userID uuid.UUID) ([]dto.DiagnosticReportResponse, error) {
	patient, err := u.patientRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient by user ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientProfileNotFound
	}

	reports, err := u.reportRepo.FindByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list reports: %+v", err)
		return nil, err
	}

	return converter.ReportsToResponses(reports, patient), nil
}

// Search filters the patient roster in memory. The filters are small and the
// roster is hospital-sized, so this mirrors the listing endpoints instead of
// composing JSONB queries.
func (u *patientUsecase) Search(ctx context.Context, input *dto.PatientSearchInput) ([]dto.PatientSearchResult, error) {
	patients, err := u.patientRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	now := time.Now()
	results := make([]dto.PatientSearchResult, 0, len(patients))
	for i := range patients {
		patient := &patients[i]
		if !matchesSearch(patient, input, now) {
			continue
		}

		reports, err := u.reportRepo.FindByPatientID(ctx, u.db, patient.ID)
		if err != nil {
			u.log.Warnf("Failed to list reports for patient %s: %+v", patient.PatientID, err)
			return nil, err
		}

		results = append(results, *converter.PatientToSearchResult(patient, reports, now))
	}

	return results, nil
}

func matchesSearch(patient *entity.Patient, input *dto.PatientSearchInput, now time.Time) bool {
	if input.Query != "" {
		q := strings.ToLower(input.Query)
		name := ""
		if patient.User != nil {
			name = strings.ToLower(patient.User.FullName)
		}
		if !strings.Contains(name, q) && !strings.Contains(strings.ToLower(patient.PatientID), q) {
			return false
		}
	}
	if input.BloodGroup != "" && patient.BloodGroup != entity.BloodGroup(input.BloodGroup) {
		return false
	}
	if input.Condition != "" {
		found := false
		for _, c := range patient.ChronicConditions {
			if strings.EqualFold(c, input.Condition) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if input.MinAge != nil || input.MaxAge != nil {
		age := patient.Age(now)
		if input.MinAge != nil && age < *input.MinAge {
			return false
		}
		if input.MaxAge != nil && age > *input.MaxAge {
			return false
		}
	}
	return true
}

func (u *patientUsecase) GetDetails(ctx context.Context, patientID uuid.UUID) (*dto.PatientDetailsResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
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

	reportResponses := converter.ReportsToResponses(reports, patient)
	return &dto.PatientDetailsResponse{
		Patient:           *converter.PatientToSearchResult(patient, reports, time.Now()),
		Prescriptions:     converter.PrescriptionsToSummaries(prescriptions),
		Appointments:      converter.AppointmentsToResponses(appointments),
		DiagnosticReports: reportResponses,
	}, nil
}

func (u *patientUsecase) GetPatientAppointments(ctx context.Context, patientID uuid.UUID) ([]dto.AppointmentResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointments, err := u.appointmentRepo.FindByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *patientUsecase) GetPatientPrescriptions(ctx context.Context, patientID uuid.UUID) ([]dto.PrescriptionSummaryResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	prescriptions, err := u.prescriptionRepo.FindByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list prescriptions: %+v", err)
		return nil, err
	}
	return converter.PrescriptionsToSummaries(prescriptions), nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
