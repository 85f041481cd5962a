package usecase

import (
	"context"
	"testing"

	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	usecase       AdminUsecase
	users         *fakeUserRepo
	patients      *fakePatientRepo
	appointments  *fakeAppointmentRepo
	reports       *fakeReportRepo
	profiles      *fakeDoctorProfileRepo
	labAssistants *fakeLabRepo
	tokens        *fakeTokenService
	audit         *fakeAuditService

	admin *entity.User
}

func newAdminFixture() *adminFixture {
	users := newFakeUserRepo()
	patients := newFakePatientRepo()
	appointments := newFakeAppointmentRepo()
	reports := newFakeReportRepo()
	profiles := newFakeDoctorProfileRepo()
	labAssistants := newFakeLabRepo()
	tokens := newFakeTokenService()
	audit := &fakeAuditService{}

	admin := users.add(&entity.User{Email: "admin@hospital.com", FullName: "Admin", Role: entity.RoleAdmin})

	return &adminFixture{
		usecase:       NewAdminUsecase(nil, testLogger(), users, patients, appointments, reports, profiles, labAssistants, tokens, audit),
		users:         users,
		patients:      patients,
		appointments:  appointments,
		reports:       reports,
		profiles:      profiles,
		labAssistants: labAssistants,
		tokens:        tokens,
		audit:         audit,
		admin:         admin,
	}
}

func (f *adminFixture) actor() Actor {
	return Actor{UserID: f.admin.ID, Role: entity.RoleAdmin}
}

func TestUpdateUserRole(t *testing.T) {
	f := newAdminFixture()
	target := f.users.add(&entity.User{Email: "pat@example.com", Role: entity.RolePatient})

	resp, err := f.usecase.UpdateUserRole(context.Background(), f.actor(), target.ID, &dto.UpdateUserRoleRequest{Role: "lab_assistant"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleLabAssistant, resp.Role)

	// Old tokens carry the old role claim and must die with the change.
	assert.Contains(t, f.tokens.revokedUsers, target.ID)
	assert.Contains(t, f.audit.actions(), entity.AuditActionUserRoleChange)
}

func TestUpdateUserRoleSelfDemotion(t *testing.T) {
	f := newAdminFixture()

	_, err := f.usecase.UpdateUserRole(context.Background(), f.actor(), f.admin.ID, &dto.UpdateUserRoleRequest{Role: "patient"})
	assert.ErrorIs(t, err, ErrCannotDemoteSelf)

	// Re-asserting the admin role on yourself is allowed.
	_, err = f.usecase.UpdateUserRole(context.Background(), f.actor(), f.admin.ID, &dto.UpdateUserRoleRequest{Role: "admin"})
	assert.NoError(t, err)
}

func TestUpdateUserRoleUnknownUser(t *testing.T) {
	f := newAdminFixture()

	_, err := f.usecase.UpdateUserRole(context.Background(), f.actor(), uuid.New(), &dto.UpdateUserRoleRequest{Role: "patient"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeletePatientUserCascades(t *testing.T) {
	f := newAdminFixture()
	user := f.users.add(&entity.User{Email: "pat@example.com", Role: entity.RolePatient})
	patient := f.patients.add(&entity.Patient{PatientID: "MED2026000001", UserID: user.ID})
	f.appointments.add(&entity.Appointment{PatientID: patient.ID})
	f.reports.Create(context.Background(), nil, &entity.DiagnosticReport{ReportID: "r1", PatientID: patient.ID})

	require.NoError(t, f.usecase.DeleteUser(context.Background(), f.actor(), user.ID))

	remaining, _ := f.users.FindByID(context.Background(), nil, user.ID)
	assert.Nil(t, remaining)
	count, _ := f.patients.Count(context.Background(), nil)
	assert.Zero(t, count)
	aptCount, _ := f.appointments.Count(context.Background(), nil)
	assert.Zero(t, aptCount)
	repCount, _ := f.reports.Count(context.Background(), nil)
	assert.Zero(t, repCount)
	assert.Contains(t, f.tokens.revokedUsers, user.ID)
	assert.Contains(t, f.audit.actions(), entity.AuditActionUserDelete)
}

func TestDeleteDoctorUserRemovesProfile(t *testing.T) {
	f := newAdminFixture()
	doctor := f.users.add(&entity.User{Email: "doc@hospital.com", Role: entity.RoleDoctor})
	f.profiles.add(&entity.DoctorProfile{UserID: doctor.ID})

	require.NoError(t, f.usecase.DeleteUser(context.Background(), f.actor(), doctor.ID))

	profile, _ := f.profiles.FindByUserID(context.Background(), nil, doctor.ID)
	assert.Nil(t, profile)
}

func TestDeletePatientRecord(t *testing.T) {
	f := newAdminFixture()
	user := f.users.add(&entity.User{Email: "pat@example.com", Role: entity.RolePatient})
	patient := f.patients.add(&entity.Patient{PatientID: "MED2026000001", UserID: user.ID})
	f.appointments.add(&entity.Appointment{PatientID: patient.ID})

	require.NoError(t, f.usecase.DeletePatient(context.Background(), f.actor(), patient.ID))

	remaining, _ := f.users.FindByID(context.Background(), nil, user.ID)
	assert.Nil(t, remaining)
	aptCount, _ := f.appointments.Count(context.Background(), nil)
	assert.Zero(t, aptCount)
	assert.Contains(t, f.audit.actions(), entity.AuditActionPatientDelete)

	err := f.usecase.DeletePatient(context.Background(), f.actor(), patient.ID)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestAdminStatistics(t *testing.T) {
	f := newAdminFixture()
	doctor := f.users.add(&entity.User{Email: "doc@hospital.com", Role: entity.RoleDoctor})
	patientUser := f.users.add(&entity.User{Email: "pat@example.com", Role: entity.RolePatient})
	patient := f.patients.add(&entity.Patient{PatientID: "MED2026000001", UserID: patientUser.ID})

	f.appointments.add(&entity.Appointment{PatientID: patient.ID, DoctorID: doctor.ID, Status: entity.AppointmentStatusPending})
	f.appointments.add(&entity.Appointment{PatientID: patient.ID, DoctorID: doctor.ID, Status: entity.AppointmentStatusConfirmed})
	f.appointments.add(&entity.Appointment{PatientID: patient.ID, DoctorID: doctor.ID, Status: entity.AppointmentStatusConfirmed})

	stats, err := f.usecase.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalPatients)
	assert.Equal(t, int64(1), stats.TotalDoctors)
	assert.Equal(t, int64(3), stats.TotalAppointments)
	assert.Equal(t, int64(1), stats.AppointmentsByStatus.Pending)
	assert.Equal(t, int64(2), stats.AppointmentsByStatus.Confirmed)
	assert.Zero(t, stats.AppointmentsByStatus.Cancelled)
}
