package usecase

import (
	"context"
	"errors"

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
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrAppointmentForbidden   = errors.New("not authorized for this appointment")
	ErrPatientProfileRequired = errors.New("patient profile required before booking")
	ErrDoctorNotFound         = errors.New("doctor not found")
	ErrNotADoctor             = errors.New("selected user is not a doctor")
	ErrRescheduleAdminOnly    = errors.New("only admins can reschedule appointments")
	ErrStatusChangeAdminOnly  = errors.New("only admins can change status here")
	ErrInvalidAppointmentDate = errors.New("invalid appointment date")
)

// Actor identifies the authenticated caller inside usecases that branch on
// ownership and role.
type Actor struct {
	UserID uuid.UUID
	Role   entity.Role
}

func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

type AppointmentUsecase interface {
	GetDoctors(ctx context.Context) ([]dto.DoctorDirectoryResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context, userID uuid.UUID) ([]dto.AppointmentResponse, error)
	GetDoctorAppointments(ctx context.Context, doctorUserID uuid.UUID) ([]dto.AppointmentResponse, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	AdminDelete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	userRepo        repository.UserRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		userRepo:        userRepo,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) GetDoctors(ctx context.Context) ([]dto.DoctorDirectoryResponse, error) {
	doctors, err := u.userRepo.FindByRole(ctx, u.db, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	result := make([]dto.DoctorDirectoryResponse, 0, len(doctors))
	for i := range doctors {
		result = append(result, *converter.DoctorToDirectoryEntry(&doctors[i]))
	}
	return result, nil
}

func (u *appointmentUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	patient, err := u.patientRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient by user ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientProfileRequired
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, ErrDoctorNotFound
	}

	doctor, err := u.userRepo.FindByID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if doctor.Role != entity.RoleDoctor {
		return nil, ErrNotADoctor
	}

	date, err := dateparse.DateTime(req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidAppointmentDate
	}

	appointment := &entity.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentDate: date,
		Reason:          req.Reason,
		Notes:           req.Notes,
		Status:          entity.AppointmentStatusPending,
	}

	if err := u.appointmentRepo.Create(ctx, u.db, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	appointment.Patient = patient
	appointment.Doctor = doctor
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context, userID uuid.UUID) ([]dto.AppointmentResponse, error) {
	patient, err := u.patientRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient by user ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		// No profile yet means no appointments either.
		return []dto.AppointmentResponse{}, nil
	}

	appointments, err := u.appointmentRepo.FindByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, doctorUserID uuid.UUID) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(ctx, u.db, doctorUserID)
	if err != nil {
		u.log.Warnf("Failed to list doctor appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	isPatientOwner, err := u.isPatientOwner(ctx, actor, appointment)
	if err != nil {
		return nil, err
	}
	isDoctorOwner := actor.Role == entity.RoleDoctor && appointment.DoctorID == actor.UserID

	if !isPatientOwner && !isDoctorOwner && !actor.IsAdmin() {
		return nil, ErrAppointmentForbidden
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	isDoctorOwner := actor.Role == entity.RoleDoctor && appointment.DoctorID == actor.UserID
	if !isDoctorOwner && !actor.IsAdmin() {
		return nil, ErrAppointmentForbidden
	}

	// Any enumerated status is an acceptable target from any current state;
	// the doctor decides what the record should say.
	appointment.Status = entity.AppointmentStatus(req.Status)
	if req.DoctorNotes != "" {
		appointment.DoctorNotes = req.DoctorNotes
	}
	if req.RejectionReason != "" {
		appointment.RejectionReason = req.RejectionReason
	}
	if req.AdminNotes != "" && actor.IsAdmin() {
		appointment.AdminNotes = req.AdminNotes
	}

	if err := u.appointmentRepo.Update(ctx, u.db, appointment); err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}

	if actor.IsAdmin() {
		u.auditService.LogAction(ctx, &actor.UserID, entity.AuditActionAppointmentUpdate, "appointment", appointment.ID.String(), map[string]interface{}{
			"status": req.Status,
		})
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Update(ctx context.Context, actor Actor, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	isPatientOwner, err := u.isPatientOwner(ctx, actor, appointment)
	if err != nil {
		return nil, err
	}
	if !isPatientOwner && !actor.IsAdmin() {
		return nil, ErrAppointmentForbidden
	}

	if req.AppointmentDate != nil {
		if !actor.IsAdmin() {
			return nil, ErrRescheduleAdminOnly
		}
		date, err := dateparse.DateTime(*req.AppointmentDate)
		if err != nil {
			return nil, ErrInvalidAppointmentDate
		}
		appointment.AppointmentDate = date
	}
	if req.Reason != nil {
		appointment.Reason = *req.Reason
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}
	if req.Status != nil {
		if !actor.IsAdmin() {
			return nil, ErrStatusChangeAdminOnly
		}
		appointment.Status = entity.AppointmentStatus(*req.Status)
	}
	if req.AdminNotes != nil && actor.IsAdmin() {
		appointment.AdminNotes = *req.AdminNotes
	}

	if err := u.appointmentRepo.Update(ctx, u.db, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	if actor.IsAdmin() {
		u.auditService.LogAction(ctx, &actor.UserID, entity.AuditActionAppointmentUpdate, "appointment", appointment.ID.String(), nil)
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) AdminDelete(ctx context.Context, actor Actor, id uuid.UUID) error {
	affected, err := u.appointmentRepo.Delete(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	u.auditService.LogAction(ctx, &actor.UserID, entity.AuditActionAppointmentDelete, "appointment", id.String(), nil)
	return nil
}

func (u *appointmentUsecase) isPatientOwner(ctx context.Context, actor Actor, appointment *entity.Appointment) (bool, error) {
	if actor.Role != entity.RolePatient {
		return false, nil
	}
	patient, err := u.patientRepo.FindByUserID(ctx, u.db, actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to find patient by user ID: %+v", err)
		return false, err
	}
	return patient != nil && patient.ID == appointment.PatientID, nil
}
