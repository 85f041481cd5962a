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

type appointmentFixture struct {
	usecase      AppointmentUsecase
	users        *fakeUserRepo
	patients     *fakePatientRepo
	appointments *fakeAppointmentRepo
	audit        *fakeAuditService

	doctor  *entity.User
	patient *entity.Patient
}

func newAppointmentFixture() *appointmentFixture {
	users := newFakeUserRepo()
	patients := newFakePatientRepo()
	appointments := newFakeAppointmentRepo()
	audit := &fakeAuditService{}

	doctor := users.add(&entity.User{Email: "doc@hospital.com", FullName: "Dr. Grey", Role: entity.RoleDoctor})
	patientUser := users.add(&entity.User{Email: "pat@example.com", FullName: "Pat Example", Role: entity.RolePatient})
	patient := patients.add(&entity.Patient{PatientID: "MED2026000001", UserID: patientUser.ID, User: patientUser})

	return &appointmentFixture{
		usecase:      NewAppointmentUsecase(nil, testLogger(), appointments, patients, users, audit),
		users:        users,
		patients:     patients,
		appointments: appointments,
		audit:        audit,
		doctor:       doctor,
		patient:      patient,
	}
}

func (f *appointmentFixture) book(t *testing.T) *dto.AppointmentResponse {
	t.Helper()
	resp, err := f.usecase.Create(context.Background(), f.patient.UserID, &dto.CreateAppointmentRequest{
		DoctorID:        f.doctor.ID.String(),
		AppointmentDate: time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		Reason:          "Checkup",
	})
	require.NoError(t, err)
	return resp
}

func TestCreateAppointmentRequiresPatientProfile(t *testing.T) {
	f := newAppointmentFixture()
	userWithoutProfile := f.users.add(&entity.User{Email: "new@example.com", Role: entity.RolePatient})

	_, err := f.usecase.Create(context.Background(), userWithoutProfile.ID, &dto.CreateAppointmentRequest{
		DoctorID:        f.doctor.ID.String(),
		AppointmentDate: "2026-09-01T09:00:00",
		Reason:          "Checkup",
	})
	assert.ErrorIs(t, err, ErrPatientProfileRequired)
}

func TestCreateAppointmentValidatesDoctor(t *testing.T) {
	f := newAppointmentFixture()

	_, err := f.usecase.Create(context.Background(), f.patient.UserID, &dto.CreateAppointmentRequest{
		DoctorID:        uuid.New().String(),
		AppointmentDate: "2026-09-01T09:00:00",
		Reason:          "Checkup",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	notADoctor := f.users.add(&entity.User{Email: "lab@hospital.com", Role: entity.RoleLabAssistant})
	_, err = f.usecase.Create(context.Background(), f.patient.UserID, &dto.CreateAppointmentRequest{
		DoctorID:        notADoctor.ID.String(),
		AppointmentDate: "2026-09-01T09:00:00",
		Reason:          "Checkup",
	})
	assert.ErrorIs(t, err, ErrNotADoctor)
}

func TestCreateAppointmentStartsPending(t *testing.T) {
	f := newAppointmentFixture()
	resp := f.book(t)
	assert.Equal(t, entity.AppointmentStatusPending, resp.Status)
	assert.Equal(t, f.patient.ID, resp.PatientID)
	assert.Equal(t, f.doctor.ID, resp.DoctorID)
}

func TestGetMyAppointmentsWithoutProfile(t *testing.T) {
	f := newAppointmentFixture()
	userWithoutProfile := f.users.add(&entity.User{Email: "new@example.com", Role: entity.RolePatient})

	appointments, err := f.usecase.GetMyAppointments(context.Background(), userWithoutProfile.ID)
	require.NoError(t, err)
	assert.Empty(t, appointments)
}

func TestGetAppointmentOwnership(t *testing.T) {
	f := newAppointmentFixture()
	booked := f.book(t)

	patientActor := Actor{UserID: f.patient.UserID, Role: entity.RolePatient}
	doctorActor := Actor{UserID: f.doctor.ID, Role: entity.RoleDoctor}
	adminActor := Actor{UserID: uuid.New(), Role: entity.RoleAdmin}
	strangerActor := Actor{UserID: uuid.New(), Role: entity.RoleDoctor}

	for _, actor := range []Actor{patientActor, doctorActor, adminActor} {
		_, err := f.usecase.Get(context.Background(), actor, booked.ID)
		assert.NoError(t, err)
	}

	_, err := f.usecase.Get(context.Background(), strangerActor, booked.ID)
	assert.ErrorIs(t, err, ErrAppointmentForbidden)
}

func TestUpdateStatusByDoctor(t *testing.T) {
	f := newAppointmentFixture()
	booked := f.book(t)
	doctorActor := Actor{UserID: f.doctor.ID, Role: entity.RoleDoctor}

	resp, err := f.usecase.UpdateStatus(context.Background(), doctorActor, booked.ID, &dto.UpdateAppointmentStatusRequest{
		Status:      "confirmed",
		DoctorNotes: "Bring previous reports",
		AdminNotes:  "should be ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusConfirmed, resp.Status)
	assert.Equal(t, "Bring previous reports", resp.DoctorNotes)
	assert.Empty(t, resp.AdminNotes)

	// Transitions are unrestricted; a completed appointment can be reopened.
	resp, err = f.usecase.UpdateStatus(context.Background(), doctorActor, booked.ID, &dto.UpdateAppointmentStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCompleted, resp.Status)

	resp, err = f.usecase.UpdateStatus(context.Background(), doctorActor, booked.ID, &dto.UpdateAppointmentStatusRequest{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusPending, resp.Status)

	assert.Empty(t, f.audit.entries)
}

func TestUpdateStatusByAdminKeepsAdminNotes(t *testing.T) {
	f := newAppointmentFixture()
	booked := f.book(t)
	adminActor := Actor{UserID: uuid.New(), Role: entity.RoleAdmin}

	resp, err := f.usecase.UpdateStatus(context.Background(), adminActor, booked.ID, &dto.UpdateAppointmentStatusRequest{
		Status:     "cancelled",
		AdminNotes: "Patient requested cancellation by phone",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCancelled, resp.Status)
	assert.Equal(t, "Patient requested cancellation by phone", resp.AdminNotes)
	assert.Contains(t, f.audit.actions(), entity.AuditActionAppointmentUpdate)
}

func TestUpdateStatusForbiddenForOtherDoctor(t *testing.T) {
	f := newAppointmentFixture()
	booked := f.book(t)

	otherDoctor := f.users.add(&entity.User{Email: "other@hospital.com", Role: entity.RoleDoctor})
	_, err := f.usecase.UpdateStatus(context.Background(), Actor{UserID: otherDoctor.ID, Role: entity.RoleDoctor}, booked.ID, &dto.UpdateAppointmentStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrAppointmentForbidden)
}

func TestPatientUpdateLimitedToReasonAndNotes(t *testing.T) {
	f := newAppointmentFixture()
	booked := f.book(t)
	patientActor := Actor{UserID: f.patient.UserID, Role: entity.RolePatient}

	reason := "Follow-up instead"
	notes := "Morning preferred"
	resp, err := f.usecase.Update(context.Background(), patientActor, booked.ID, &dto.UpdateAppointmentRequest{
		Reason: &reason,
		Notes:  &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, reason, resp.Reason)
	assert.Equal(t, notes, resp.Notes)

	newDate := "2026-10-01T10:00:00"
	_, err = f.usecase.Update(context.Background(), patientActor, booked.ID, &dto.UpdateAppointmentRequest{AppointmentDate: &newDate})
	assert.ErrorIs(t, err, ErrRescheduleAdminOnly)

	status := "confirmed"
	_, err = f.usecase.Update(context.Background(), patientActor, booked.ID, &dto.UpdateAppointmentRequest{Status: &status})
	assert.ErrorIs(t, err, ErrStatusChangeAdminOnly)
}

func TestAdminUpdateCanRescheduleAndChangeStatus(t *testing.T) {
	f := newAppointmentFixture()
	booked := f.book(t)
	adminActor := Actor{UserID: uuid.New(), Role: entity.RoleAdmin}

	newDate := "2026-10-01T10:00:00"
	status := "confirmed"
	resp, err := f.usecase.Update(context.Background(), adminActor, booked.ID, &dto.UpdateAppointmentRequest{
		AppointmentDate: &newDate,
		Status:          &status,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusConfirmed, resp.Status)
	assert.Equal(t, 2026, resp.AppointmentDate.Year())
	assert.Equal(t, time.October, resp.AppointmentDate.Month())
}

func TestAdminDeleteAppointment(t *testing.T) {
	f := newAppointmentFixture()
	booked := f.book(t)
	adminActor := Actor{UserID: uuid.New(), Role: entity.RoleAdmin}

	err := f.usecase.AdminDelete(context.Background(), adminActor, booked.ID)
	require.NoError(t, err)
	assert.Contains(t, f.audit.actions(), entity.AuditActionAppointmentDelete)

	err = f.usecase.AdminDelete(context.Background(), adminActor, booked.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
