package usecase

import (
	"context"
	"errors"
	"time"

	"medicore/internal/converter"
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"
	"medicore/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCannotDemoteSelf = errors.New("admins cannot remove their own admin role")
	ErrInvalidRole      = errors.New("invalid role")
)

type AdminUsecase interface {
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	ListPatients(ctx context.Context) ([]dto.PatientSummaryResponse, error)
	ListDoctors(ctx context.Context) ([]dto.DoctorDirectoryResponse, error)
	ListAppointments(ctx context.Context) ([]dto.AppointmentResponse, error)
	Statistics(ctx context.Context) (*dto.AdminStatisticsResponse, error)
	UpdateUserRole(ctx context.Context, actor Actor, userID uuid.UUID, req *dto.UpdateUserRoleRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, actor Actor, userID uuid.UUID) error
	DeletePatient(ctx context.Context, actor Actor, patientID uuid.UUID) error
}

type adminUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	userRepo        repository.UserRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	reportRepo      repository.DiagnosticReportRepository
	profileRepo     repository.DoctorProfileRepository
	labRepo         repository.LabAssistantRepository
	tokenService    service.TokenService
	auditService    service.AuditService
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	reportRepo repository.DiagnosticReportRepository,
	profileRepo repository.DoctorProfileRepository,
	labRepo repository.LabAssistantRepository,
	tokenService service.TokenService,
	auditService service.AuditService,
) AdminUsecase {
	return &adminUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		reportRepo:      reportRepo,
		profileRepo:     profileRepo,
		labRepo:         labRepo,
		tokenService:    tokenService,
		auditService:    auditService,
	}
}

func (u *adminUsecase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := u.userRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}
	return converter.UsersToResponses(users), nil
}

func (u *adminUsecase) ListPatients(ctx context.Context) ([]dto.PatientSummaryResponse, error) {
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

func (u *adminUsecase) ListDoctors(ctx context.Context) ([]dto.DoctorDirectoryResponse, error) {
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

func (u *adminUsecase) ListAppointments(ctx context.Context) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *adminUsecase) Statistics(ctx context.Context) (*dto.AdminStatisticsResponse, error) {
	totalUsers, err := u.userRepo.Count(ctx, u.db)
	if err != nil {
		return nil, err
	}
	totalPatients, err := u.patientRepo.Count(ctx, u.db)
	if err != nil {
		return nil, err
	}
	totalDoctors, err := u.userRepo.CountByRole(ctx, u.db, entity.RoleDoctor)
	if err != nil {
		return nil, err
	}
	totalAppointments, err := u.appointmentRepo.Count(ctx, u.db)
	if err != nil {
		return nil, err
	}

	byStatus := dto.AppointmentsByStatus{}
	for _, entry := range []struct {
		status entity.AppointmentStatus
		target *int64
	}{
		{entity.AppointmentStatusPending, &byStatus.Pending},
		{entity.AppointmentStatusConfirmed, &byStatus.Confirmed},
		{entity.AppointmentStatusRejected, &byStatus.Rejected},
		{entity.AppointmentStatusCompleted, &byStatus.Completed},
		{entity.AppointmentStatusCancelled, &byStatus.Cancelled},
	} {
		count, err := u.appointmentRepo.CountByStatus(ctx, u.db, entry.status)
		if err != nil {
			return nil, err
		}
		*entry.target = count
	}

	return &dto.AdminStatisticsResponse{
		TotalUsers:           totalUsers,
		TotalPatients:        totalPatients,
		TotalDoctors:         totalDoctors,
		TotalAppointments:    totalAppointments,
		AppointmentsByStatus: byStatus,
	}, nil
}

func (u *adminUsecase) UpdateUserRole(ctx context.Context, actor Actor, userID uuid.UUID, req *dto.UpdateUserRoleRequest) (*dto.UserResponse, error) {
	newRole := entity.Role(req.Role)
	if !newRole.IsValid() {
		return nil, ErrInvalidRole
	}

	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if actor.UserID == userID && user.Role == entity.RoleAdmin && newRole != entity.RoleAdmin {
		return nil, ErrCannotDemoteSelf
	}

	oldRole := user.Role
	user.Role = newRole
	if err := u.userRepo.Update(ctx, u.db, user); err != nil {
		u.log.Warnf("Failed to update user role: %+v", err)
		return nil, err
	}

	// Force a fresh login so new tokens carry the new role claim.
	if err := u.tokenService.RevokeAllForUser(ctx, userID); err != nil {
		u.log.Warnf("Failed to revoke tokens after role change: %+v", err)
	}

	u.auditService.LogAction(ctx, &actor.UserID, entity.AuditActionUserRoleChange, "user", userID.String(), map[string]interface{}{
		"old_role": string(oldRole),
		"new_role": string(newRole),
	})

	return converter.UserToResponse(user), nil
}

func (u *adminUsecase) DeleteUser(ctx context.Context, actor Actor, userID uuid.UUID) error {
	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	switch user.Role {
	case entity.RolePatient:
		patient, err := u.patientRepo.FindByUserID(ctx, u.db, userID)
		if err != nil {
			return err
		}
		if patient != nil {
			if _, err := u.appointmentRepo.DeleteByPatientID(ctx, u.db, patient.ID); err != nil {
				return err
			}
			if _, err := u.reportRepo.DeleteByPatientID(ctx, u.db, patient.ID); err != nil {
				return err
			}
		}
		if _, err := u.patientRepo.DeleteByUserID(ctx, u.db, userID); err != nil {
			return err
		}
	case entity.RoleDoctor:
		if _, err := u.profileRepo.DeleteByUserID(ctx, u.db, userID); err != nil {
			return err
		}
	case entity.RoleLabAssistant:
		if _, err := u.labRepo.DeleteByUserID(ctx, u.db, userID); err != nil {
			return err
		}
	}

	affected, err := u.userRepo.Delete(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	if err := u.tokenService.RevokeAllForUser(ctx, userID); err != nil {
		u.log.Warnf("Failed to revoke tokens for deleted user: %+v", err)
	}

	u.auditService.LogAction(ctx, &actor.UserID, entity.AuditActionUserDelete, "user", userID.String(), map[string]interface{}{
		"role": string(user.Role),
	})
	return nil
}

// DeletePatient removes a patient record together with the owning user
// account and everything hanging off the record.
func (u *adminUsecase) DeletePatient(ctx context.Context, actor Actor, patientID uuid.UUID) error {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	if _, err := u.appointmentRepo.DeleteByPatientID(ctx, u.db, patient.ID); err != nil {
		return err
	}
	if _, err := u.reportRepo.DeleteByPatientID(ctx, u.db, patient.ID); err != nil {
		return err
	}
	if _, err := u.patientRepo.Delete(ctx, u.db, patient.ID); err != nil {
		return err
	}
	if _, err := u.userRepo.Delete(ctx, u.db, patient.UserID); err != nil {
		return err
	}

	if err := u.tokenService.RevokeAllForUser(ctx, patient.UserID); err != nil {
		u.log.Warnf("Failed to revoke tokens for deleted patient: %+v", err)
	}

	u.auditService.LogAction(ctx, &actor.UserID, entity.AuditActionPatientDelete, "patient", patient.PatientID, nil)
	return nil
}
