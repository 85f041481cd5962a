package usecase

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type labFixture struct {
	usecase       LabUsecase
	users         *fakeUserRepo
	patients      *fakePatientRepo
	reports       *fakeReportRepo
	labAssistants *fakeLabRepo
	audit         *fakeAuditService

	assistant *entity.User
	patient   *entity.Patient
}

func newLabFixture() *labFixture {
	users := newFakeUserRepo()
	patients := newFakePatientRepo()
	reports := newFakeReportRepo()
	labAssistants := newFakeLabRepo()
	prescriptions := newFakePrescriptionRepo()
	appointments := newFakeAppointmentRepo()
	audit := &fakeAuditService{}

	assistant := users.add(&entity.User{Email: "lab@hospital.com", FullName: "Lena Tech", Role: entity.RoleLabAssistant})
	patientUser := users.add(&entity.User{Email: "pat@example.com", FullName: "Pat Example", Role: entity.RolePatient})
	patient := patients.add(&entity.Patient{PatientID: "MED2026000001", UserID: patientUser.ID, User: patientUser})

	return &labFixture{
		usecase:       NewLabUsecase(nil, testLogger(), labAssistants, patients, reports, users, prescriptions, appointments, audit),
		users:         users,
		patients:      patients,
		reports:       reports,
		labAssistants: labAssistants,
		audit:         audit,
		assistant:     assistant,
		patient:       patient,
	}
}

func (f *labFixture) actor() Actor {
	return Actor{UserID: f.assistant.ID, Role: entity.RoleLabAssistant}
}

func TestUploadReportStoresDataURI(t *testing.T) {
	f := newLabFixture()

	content := []byte("%PDF-1.4 fake")
	resp, err := f.usecase.UploadReport(context.Background(), f.actor(), f.patient.ID, &dto.UploadReportInput{
		ReportType:  "Blood Test",
		Notes:       "Fasting sample",
		FileName:    "cbc.pdf",
		ContentType: "application/pdf",
		Content:     content,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ReportID)
	_, err = uuid.Parse(resp.ReportID)
	assert.NoError(t, err)

	reports, err := f.reports.FindByPatientID(context.Background(), nil, f.patient.ID)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	report := reports[0]
	assert.True(t, strings.HasPrefix(report.FileURL, "data:application/pdf;base64,"))
	encoded := strings.TrimPrefix(report.FileURL, "data:application/pdf;base64,")
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, content, decoded)

	assert.Equal(t, "Lena Tech", report.UploadedBy)
	assert.Contains(t, f.audit.actions(), entity.AuditActionReportUpload)
}

func TestUploadReportUnknownPatient(t *testing.T) {
	f := newLabFixture()

	_, err := f.usecase.UploadReport(context.Background(), f.actor(), uuid.New(), &dto.UploadReportInput{
		ReportType:  "Blood Test",
		ContentType: "application/pdf",
		Content:     []byte("x"),
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestDeleteReportByRecordID(t *testing.T) {
	f := newLabFixture()
	report := &entity.DiagnosticReport{ReportID: uuid.New().String(), PatientID: f.patient.ID}
	require.NoError(t, f.reports.Create(context.Background(), nil, report))

	// Wrong patient leaves the record in place.
	otherUser := f.users.add(&entity.User{Email: "other@example.com", Role: entity.RolePatient})
	other := f.patients.add(&entity.Patient{PatientID: "MED2026000002", UserID: otherUser.ID})
	err := f.usecase.DeleteReportByRecordID(context.Background(), f.actor(), other.ID, report.ID)
	assert.ErrorIs(t, err, ErrReportNotFound)

	require.NoError(t, f.usecase.DeleteReportByRecordID(context.Background(), f.actor(), f.patient.ID, report.ID))
	assert.Contains(t, f.audit.actions(), entity.AuditActionReportDelete)

	err = f.usecase.DeleteReportByRecordID(context.Background(), f.actor(), f.patient.ID, report.ID)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestDeleteReportByReportID(t *testing.T) {
	f := newLabFixture()
	reportID := uuid.New().String()
	require.NoError(t, f.reports.Create(context.Background(), nil, &entity.DiagnosticReport{ReportID: reportID, PatientID: f.patient.ID}))

	require.NoError(t, f.usecase.DeleteReportByReportID(context.Background(), f.actor(), reportID))

	err := f.usecase.DeleteReportByReportID(context.Background(), f.actor(), reportID)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestLabProfileLifecycle(t *testing.T) {
	f := newLabFixture()

	profile, err := f.usecase.CreateProfile(context.Background(), f.assistant.ID, &dto.CreateLabAssistantRequest{
		DateOfBirth: "1995-02-20",
		Gender:      "female",
		Hospital:    "Central",
		Department:  "Pathology",
	})
	require.NoError(t, err)
	assert.Equal(t, "Central", profile.Hospital)

	_, err = f.usecase.CreateProfile(context.Background(), f.assistant.ID, &dto.CreateLabAssistantRequest{
		DateOfBirth: "1995-02-20",
		Gender:      "female",
	})
	assert.ErrorIs(t, err, ErrLabProfileExists)

	department := "Radiology"
	updated, err := f.usecase.UpdateMyProfile(context.Background(), f.assistant.ID, &dto.UpdateLabAssistantRequest{Department: &department})
	require.NoError(t, err)
	assert.Equal(t, "Radiology", updated.Department)
	assert.Equal(t, "Central", updated.Hospital)
}

func TestLabStatistics(t *testing.T) {
	f := newLabFixture()
	require.NoError(t, f.reports.Create(context.Background(), nil, &entity.DiagnosticReport{ReportID: "r1", PatientID: f.patient.ID}))
	require.NoError(t, f.reports.Create(context.Background(), nil, &entity.DiagnosticReport{ReportID: "r2", PatientID: f.patient.ID}))

	stats, err := f.usecase.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalPatients)
	assert.Equal(t, int64(2), stats.ReportsUploaded)
	assert.Zero(t, stats.PendingTests)
}
