package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

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
	ErrPrescriptionNotFound  = errors.New("prescription not found")
	ErrPrescriptionForbidden = errors.New("not authorized for this prescription")
	ErrInvalidFollowUpDate   = errors.New("invalid follow-up date")
)

// GeneratePrescriptionNumber returns a short human-readable prescription
// code, e.g. RX3FA85F64.
func GeneratePrescriptionNumber() string {
	return "RX" + strings.ToUpper(uuid.New().String()[:8])
}

type PrescriptionUsecase interface {
	Create(ctx context.Context, doctorUserID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.CreatePrescriptionResponse, error)
	GetByPatientIdentifier(ctx context.Context, actor Actor, identifier string) ([]dto.PrescriptionSummaryResponse, error)
	GetMyPrescriptions(ctx context.Context, doctorUserID uuid.UUID) ([]dto.PrescriptionSummaryResponse, error)
	GetDetails(ctx context.Context, actor Actor, id uuid.UUID) (*dto.PrescriptionDetailsResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	patientRepo      repository.PatientRepository
	profileRepo      repository.DoctorProfileRepository
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	patientRepo repository.PatientRepository,
	profileRepo repository.DoctorProfileRepository,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		patientRepo:      patientRepo,
		profileRepo:      profileRepo,
	}
}

func (u *prescriptionUsecase) Create(ctx context.Context, doctorUserID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.CreatePrescriptionResponse, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, ErrPatientNotFound
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	prescription := &entity.Prescription{
		PrescriptionID:  GeneratePrescriptionNumber(),
		PatientID:       patient.ID,
		DoctorID:        doctorUserID,
		Diagnosis:       req.Diagnosis,
		Symptoms:        req.Symptoms,
		Medicines:       req.Medicines,
		LabTestsOrdered: req.LabTestsOrdered,
		Advice:          req.Advice,
	}

	if req.AppointmentID != nil {
		appointmentID, err := uuid.Parse(*req.AppointmentID)
		if err != nil {
			return nil, ErrAppointmentNotFound
		}
		prescription.AppointmentID = &appointmentID
	}
	if len(req.VitalSigns) > 0 {
		raw, err := json.Marshal(req.VitalSigns)
		if err != nil {
			return nil, fmt.Errorf("marshal vital signs: %w", err)
		}
		prescription.VitalSigns = raw
	}
	if req.FollowUpDate != nil && *req.FollowUpDate != "" {
		followUp, err := dateparse.Date(*req.FollowUpDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFollowUpDate, err)
		}
		prescription.FollowUpDate = &followUp
	}

	if err := u.prescriptionRepo.Create(ctx, u.db, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	// Consultation counter is informational; a write failure should not fail
	// the prescription itself.
	if err := u.profileRepo.IncrementConsultations(ctx, u.db, doctorUserID); err != nil {
		u.log.Warnf("Failed to increment consultation count: %+v", err)
	}

	return &dto.CreatePrescriptionResponse{
		ID:             prescription.ID,
		PrescriptionID: prescription.PrescriptionID,
	}, nil
}

// GetByPatientIdentifier accepts either a patient number (MED2026000123) or a
// patient record UUID. Patients may only look up their own history.
func (u *prescriptionUsecase) GetByPatientIdentifier(ctx context.Context, actor Actor, identifier string) ([]dto.PrescriptionSummaryResponse, error) {
	patient, err := u.patientRepo.FindByPatientNumber(ctx, u.db, identifier)
	if err != nil {
		u.log.Warnf("Failed to find patient by number: %+v", err)
		return nil, err
	}
	if patient == nil {
		if recordID, parseErr := uuid.Parse(identifier); parseErr == nil {
			patient, err = u.patientRepo.FindByID(ctx, u.db, recordID)
			if err != nil {
				return nil, err
			}
		}
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if actor.Role == entity.RolePatient && patient.UserID != actor.UserID {
		return nil, ErrPrescriptionForbidden
	}

	prescriptions, err := u.prescriptionRepo.FindByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list prescriptions: %+v", err)
		return nil, err
	}
	return converter.PrescriptionsToSummaries(prescriptions), nil
}

func (u *prescriptionUsecase) GetMyPrescriptions(ctx context.Context, doctorUserID uuid.UUID) ([]dto.PrescriptionSummaryResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindByDoctorID(ctx, u.db, doctorUserID)
	if err != nil {
		u.log.Warnf("Failed to list prescriptions: %+v", err)
		return nil, err
	}
	return converter.PrescriptionsToSummaries(prescriptions), nil
}

func (u *prescriptionUsecase) GetDetails(ctx context.Context, actor Actor, id uuid.UUID) (*dto.PrescriptionDetailsResponse, error) {
	prescription, err := u.prescriptionRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	switch actor.Role {
	case entity.RoleDoctor:
		if prescription.DoctorID != actor.UserID {
			return nil, ErrPrescriptionForbidden
		}
	case entity.RolePatient:
		if prescription.Patient == nil || prescription.Patient.UserID != actor.UserID {
			return nil, ErrPrescriptionForbidden
		}
	case entity.RoleAdmin:
	default:
		return nil, ErrPrescriptionForbidden
	}

	return converter.PrescriptionToDetails(prescription), nil
}
