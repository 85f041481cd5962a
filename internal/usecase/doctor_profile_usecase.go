package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"medicore/internal/converter"
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"
	"medicore/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrDoctorProfileExists   = errors.New("doctor profile already exists")
	ErrDoctorProfileNotFound = errors.New("doctor profile not found")
	ErrTooManyAvailability   = errors.New("maximum 3 availability days allowed")
	ErrInvalidSlotDate       = errors.New("invalid date, use YYYY-MM-DD")
)

// MaxAvailabilityDays caps the weekly consultation template.
const MaxAvailabilityDays = 3

type DoctorProfileUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateDoctorProfileRequest) (*dto.DoctorProfileResponse, error)
	GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.DoctorProfileResponse, error)
	UpdateMyProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorProfileResponse, error)
	UpdateAvailability(ctx context.Context, userID uuid.UUID, req *dto.UpdateAvailabilityRequest) error
	UploadPicture(ctx context.Context, userID uuid.UUID, fileURL string) error
	GetAvailableSlots(ctx context.Context, doctorUserID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error)
	AdminDelete(ctx context.Context, actor Actor, doctorUserID uuid.UUID) error
}

type doctorProfileUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	profileRepo     repository.DoctorProfileRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewDoctorProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	profileRepo repository.DoctorProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:              db,
		log:             log,
		profileRepo:     profileRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

func (u *doctorProfileUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateDoctorProfileRequest) (*dto.DoctorProfileResponse, error) {
	existing, err := u.profileRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDoctorProfileExists
	}

	profile := &entity.DoctorProfile{
		UserID:          userID,
		ProfilePicture:  req.ProfilePicture,
		About:           req.About,
		Qualifications:  req.Qualifications,
		Degrees:         req.Degrees,
		ExperienceYears: req.ExperienceYears,
		ConsultationFee: req.ConsultationFee,
		Languages:       req.Languages,
	}
	if req.ClinicInfo != nil {
		info := datatypes.NewJSONType(*req.ClinicInfo)
		profile.ClinicInfo = &info
	}

	if err := u.profileRepo.Create(ctx, u.db, profile); err != nil {
		if isDuplicateKeyError(err, "user_id") {
			return nil, ErrDoctorProfileExists
		}
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorProfileUsecase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.DoctorProfileResponse, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorProfileNotFound
	}
	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorProfileUsecase) UpdateMyProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorProfileResponse, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorProfileNotFound
	}

	if req.Qualifications != nil {
		profile.Qualifications = *req.Qualifications
	}
	if req.ExperienceYears != nil {
		profile.ExperienceYears = *req.ExperienceYears
	}
	if req.ConsultationFee != nil {
		profile.ConsultationFee = *req.ConsultationFee
	}
	if req.Languages != nil {
		profile.Languages = *req.Languages
	}
	if req.About != nil {
		profile.About = *req.About
	}
	if req.ProfilePicture != nil {
		profile.ProfilePicture = *req.ProfilePicture
	}
	if req.Degrees != nil {
		profile.Degrees = *req.Degrees
	}
	if req.ClinicInfo != nil {
		info := datatypes.NewJSONType(*req.ClinicInfo)
		profile.ClinicInfo = &info
	}

	if err := u.profileRepo.Update(ctx, u.db, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorProfileUsecase) UpdateAvailability(ctx context.Context, userID uuid.UUID, req *dto.UpdateAvailabilityRequest) error {
	if len(req.Availability) > MaxAvailabilityDays {
		return ErrTooManyAvailability
	}

	profile, err := u.profileRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return err
	}
	if profile == nil {
		return ErrDoctorProfileNotFound
	}

	profile.Availability = req.Availability
	if err := u.profileRepo.Update(ctx, u.db, profile); err != nil {
		u.log.Warnf("Failed to update availability: %+v", err)
		return err
	}
	return nil
}

func (u *doctorProfileUsecase) UploadPicture(ctx context.Context, userID uuid.UUID, fileURL string) error {
	profile, err := u.profileRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return err
	}
	if profile == nil {
		return ErrDoctorProfileNotFound
	}

	profile.ProfilePicture = fileURL
	if err := u.profileRepo.Update(ctx, u.db, profile); err != nil {
		u.log.Warnf("Failed to update profile picture: %+v", err)
		return err
	}
	return nil
}

func (u *doctorProfileUsecase) GetAvailableSlots(ctx context.Context, doctorUserID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, u.db, doctorUserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorProfileNotFound
	}

	target, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidSlotDate
	}
	dayName := target.Weekday().String()

	dayAvailability := profile.DayAvailability(dayName)
	if dayAvailability == nil {
		return &dto.AvailableSlotsResponse{
			Date:           date,
			Day:            dayName,
			AvailableSlots: []string{},
			BookedSlots:    []string{},
		}, nil
	}

	from := target
	to := target.Add(24*time.Hour - time.Nanosecond)
	appointments, err := u.appointmentRepo.FindActiveByDoctorAndRange(ctx, u.db, doctorUserID, from, to)
	if err != nil {
		u.log.Warnf("Failed to list appointments for slot lookup: %+v", err)
		return nil, err
	}

	times := make([]time.Time, 0, len(appointments))
	for i := range appointments {
		times = append(times, appointments[i].AppointmentDate)
	}

	available, booked := PartitionSlots(dayAvailability.TimeSlots, times)
	return &dto.AvailableSlotsResponse{
		Date:           date,
		Day:            dayName,
		AvailableSlots: available,
		BookedSlots:    booked,
	}, nil
}

// PartitionSlots splits a day's slot template into available and booked
// halves. A slot counts as booked when any appointment's HH:MM prefixes the
// slot label ("09:00" books "09:00-10:00"). Appointment times that match no
// slot contribute nothing; template order is preserved.
func PartitionSlots(template []string, appointmentTimes []time.Time) (available, booked []string) {
	available = []string{}
	booked = []string{}

	bookedSet := make(map[string]bool, len(template))
	for _, at := range appointmentTimes {
		prefix := at.Format("15:04")
		for _, slot := range template {
			if strings.HasPrefix(slot, prefix) {
				bookedSet[slot] = true
			}
		}
	}

	for _, slot := range template {
		if bookedSet[slot] {
			booked = append(booked, slot)
		} else {
			available = append(available, slot)
		}
	}
	return available, booked
}

func (u *doctorProfileUsecase) AdminDelete(ctx context.Context, actor Actor, doctorUserID uuid.UUID) error {
	affected, err := u.profileRepo.DeleteByUserID(ctx, u.db, doctorUserID)
	if err != nil {
		u.log.Warnf("Failed to delete doctor profile: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrDoctorProfileNotFound
	}

	u.auditService.LogAction(ctx, &actor.UserID, entity.AuditActionDoctorDelete, "doctor_profile", doctorUserID.String(), nil)
	return nil
}
