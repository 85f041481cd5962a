package usecase

import (
	"context"
	"testing"
	"time"

	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionSlots(t *testing.T) {
	template := []string{"09:00-10:00", "10:00-11:00", "11:00-12:00"}

	at := func(hour, minute int) time.Time {
		return time.Date(2026, 9, 7, hour, minute, 0, 0, time.UTC)
	}

	t.Run("no appointments", func(t *testing.T) {
		available, booked := PartitionSlots(template, nil)
		assert.Equal(t, template, available)
		assert.Empty(t, booked)
	})

	t.Run("one slot booked", func(t *testing.T) {
		available, booked := PartitionSlots(template, []time.Time{at(10, 0)})
		assert.Equal(t, []string{"09:00-10:00", "11:00-12:00"}, available)
		assert.Equal(t, []string{"10:00-11:00"}, booked)
	})

	t.Run("time outside template contributes nothing", func(t *testing.T) {
		available, booked := PartitionSlots(template, []time.Time{at(14, 30)})
		assert.Equal(t, template, available)
		assert.Empty(t, booked)
	})

	t.Run("duplicate bookings collapse", func(t *testing.T) {
		available, booked := PartitionSlots(template, []time.Time{at(9, 0), at(9, 0), at(11, 0)})
		assert.Equal(t, []string{"10:00-11:00"}, available)
		assert.Equal(t, []string{"09:00-10:00", "11:00-12:00"}, booked)
	})

	t.Run("empty template", func(t *testing.T) {
		available, booked := PartitionSlots(nil, []time.Time{at(9, 0)})
		assert.NotNil(t, available)
		assert.NotNil(t, booked)
		assert.Empty(t, available)
		assert.Empty(t, booked)
	})
}

type doctorProfileFixture struct {
	usecase      DoctorProfileUsecase
	profiles     *fakeDoctorProfileRepo
	appointments *fakeAppointmentRepo
	audit        *fakeAuditService
	doctorID     uuid.UUID
}

func newDoctorProfileFixture() *doctorProfileFixture {
	profiles := newFakeDoctorProfileRepo()
	appointments := newFakeAppointmentRepo()
	audit := &fakeAuditService{}
	doctorID := uuid.New()

	return &doctorProfileFixture{
		usecase:      NewDoctorProfileUsecase(nil, testLogger(), profiles, appointments, audit),
		profiles:     profiles,
		appointments: appointments,
		audit:        audit,
		doctorID:     doctorID,
	}
}

func TestUpdateAvailabilityLimit(t *testing.T) {
	f := newDoctorProfileFixture()
	f.profiles.add(&entity.DoctorProfile{UserID: f.doctorID})

	days := []entity.AvailabilityDay{
		{Day: "Monday", TimeSlots: []string{"09:00-10:00"}},
		{Day: "Tuesday", TimeSlots: []string{"09:00-10:00"}},
		{Day: "Wednesday", TimeSlots: []string{"09:00-10:00"}},
		{Day: "Thursday", TimeSlots: []string{"09:00-10:00"}},
	}

	err := f.usecase.UpdateAvailability(context.Background(), f.doctorID, &dto.UpdateAvailabilityRequest{Availability: days})
	assert.ErrorIs(t, err, ErrTooManyAvailability)

	err = f.usecase.UpdateAvailability(context.Background(), f.doctorID, &dto.UpdateAvailabilityRequest{Availability: days[:3]})
	assert.NoError(t, err)
}

func TestGetAvailableSlots(t *testing.T) {
	f := newDoctorProfileFixture()
	f.profiles.add(&entity.DoctorProfile{
		UserID: f.doctorID,
		Availability: []entity.AvailabilityDay{
			{Day: "Monday", TimeSlots: []string{"09:00-10:00", "10:00-11:00"}},
		},
	})

	// 2026-09-07 is a Monday.
	monday := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	f.appointments.add(&entity.Appointment{
		DoctorID:        f.doctorID,
		AppointmentDate: monday,
		Status:          entity.AppointmentStatusConfirmed,
	})
	// Rejected bookings free the slot again.
	f.appointments.add(&entity.Appointment{
		DoctorID:        f.doctorID,
		AppointmentDate: time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC),
		Status:          entity.AppointmentStatusRejected,
	})

	resp, err := f.usecase.GetAvailableSlots(context.Background(), f.doctorID, "2026-09-07")
	require.NoError(t, err)
	assert.Equal(t, "Monday", resp.Day)
	assert.Equal(t, []string{"09:00-10:00"}, resp.AvailableSlots)
	assert.Equal(t, []string{"10:00-11:00"}, resp.BookedSlots)
}

func TestGetAvailableSlotsNoTemplateForDay(t *testing.T) {
	f := newDoctorProfileFixture()
	f.profiles.add(&entity.DoctorProfile{
		UserID: f.doctorID,
		Availability: []entity.AvailabilityDay{
			{Day: "Monday", TimeSlots: []string{"09:00-10:00"}},
		},
	})

	// 2026-09-08 is a Tuesday.
	resp, err := f.usecase.GetAvailableSlots(context.Background(), f.doctorID, "2026-09-08")
	require.NoError(t, err)
	assert.Equal(t, "Tuesday", resp.Day)
	assert.Empty(t, resp.AvailableSlots)
	assert.Empty(t, resp.BookedSlots)
}

func TestGetAvailableSlotsBadDate(t *testing.T) {
	f := newDoctorProfileFixture()
	f.profiles.add(&entity.DoctorProfile{UserID: f.doctorID})

	_, err := f.usecase.GetAvailableSlots(context.Background(), f.doctorID, "09/07/2026")
	assert.ErrorIs(t, err, ErrInvalidSlotDate)
}

func TestAdminDeleteDoctorProfile(t *testing.T) {
	f := newDoctorProfileFixture()
	f.profiles.add(&entity.DoctorProfile{UserID: f.doctorID})
	admin := Actor{UserID: uuid.New(), Role: entity.RoleAdmin}

	require.NoError(t, f.usecase.AdminDelete(context.Background(), admin, f.doctorID))
	assert.Contains(t, f.audit.actions(), entity.AuditActionDoctorDelete)

	err := f.usecase.AdminDelete(context.Background(), admin, f.doctorID)
	assert.ErrorIs(t, err, ErrDoctorProfileNotFound)
}
