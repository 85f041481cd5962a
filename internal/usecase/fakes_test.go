package usecase

import (
	"context"
	"fmt"
	"time"

	"medicore/internal/domain/entity"
	"medicore/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. The real implementations are stateless and take
// the *gorm.DB per call, so usecases under test run against a nil DB.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (r *fakeUserRepo) add(user *entity.User) *entity.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.User, error) {
	result := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, *u)
	}
	return result, nil
}

func (r *fakeUserRepo) FindByRole(ctx context.Context, db *gorm.DB, role entity.Role) ([]entity.User, error) {
	var result []entity.User
	for _, u := range r.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, db *gorm.DB, role entity.Role) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: map[uuid.UUID]*entity.Patient{}}
}

func (r *fakePatientRepo) add(patient *entity.Patient) *entity.Patient {
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	r.patients[patient.ID] = patient
	return patient
}

func (r *fakePatientRepo) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	for _, p := range r.patients {
		if p.UserID == patient.UserID {
			return fmt.Errorf("duplicate user_id")
		}
	}
	r.add(patient)
	return nil
}

func (r *fakePatientRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return r.patients[id], nil
}

func (r *fakePatientRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Patient, error) {
	for _, p := range r.patients {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepo) FindByPatientNumber(ctx context.Context, db *gorm.DB, patientNumber string) (*entity.Patient, error) {
	for _, p := range r.patients {
		if p.PatientID == patientNumber {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Patient, error) {
	result := make([]entity.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		result = append(result, *p)
	}
	return result, nil
}

func (r *fakePatientRepo) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	r.patients[patient.ID] = patient
	return nil
}

func (r *fakePatientRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := r.patients[id]; !ok {
		return 0, nil
	}
	delete(r.patients, id)
	return 1, nil
}

func (r *fakePatientRepo) DeleteByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	for id, p := range r.patients {
		if p.UserID == userID {
			delete(r.patients, id)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakePatientRepo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	return int64(len(r.patients)), nil
}

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[uuid.UUID]*entity.Appointment{}}
}

func (r *fakeAppointmentRepo) add(appointment *entity.Appointment) *entity.Appointment {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	r.appointments[appointment.ID] = appointment
	return appointment
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	r.add(appointment)
	return nil
}

func (r *fakeAppointmentRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return r.appointments[id], nil
}

func (r *fakeAppointmentRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	result := []entity.Appointment{}
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *fakeAppointmentRepo) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	result := []entity.Appointment{}
	for _, a := range r.appointments {
		if a.DoctorID == doctorID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *fakeAppointmentRepo) FindActiveByDoctorAndRange(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error) {
	result := []entity.Appointment{}
	for _, a := range r.appointments {
		if a.DoctorID != doctorID || a.Status == entity.AppointmentStatusRejected {
			continue
		}
		if a.AppointmentDate.Before(from) || a.AppointmentDate.After(to) {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (r *fakeAppointmentRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Appointment, error) {
	result := make([]entity.Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		result = append(result, *a)
	}
	return result, nil
}

func (r *fakeAppointmentRepo) Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	r.appointments[appointment.ID] = appointment
	return nil
}

func (r *fakeAppointmentRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := r.appointments[id]; !ok {
		return 0, nil
	}
	delete(r.appointments, id)
	return 1, nil
}

func (r *fakeAppointmentRepo) DeleteByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (int64, error) {
	var n int64
	for id, a := range r.appointments {
		if a.PatientID == patientID {
			delete(r.appointments, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeAppointmentRepo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	return int64(len(r.appointments)), nil
}

func (r *fakeAppointmentRepo) CountByStatus(ctx context.Context, db *gorm.DB, status entity.AppointmentStatus) (int64, error) {
	var n int64
	for _, a := range r.appointments {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeDoctorProfileRepo struct {
	profiles map[uuid.UUID]*entity.DoctorProfile
	bumps    int
}

func newFakeDoctorProfileRepo() *fakeDoctorProfileRepo {
	return &fakeDoctorProfileRepo{profiles: map[uuid.UUID]*entity.DoctorProfile{}}
}

func (r *fakeDoctorProfileRepo) add(profile *entity.DoctorProfile) *entity.DoctorProfile {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	r.profiles[profile.UserID] = profile
	return profile
}

func (r *fakeDoctorProfileRepo) Create(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error {
	if _, ok := r.profiles[profile.UserID]; ok {
		return fmt.Errorf("duplicate user_id")
	}
	r.add(profile)
	return nil
}

func (r *fakeDoctorProfileRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	return r.profiles[userID], nil
}

func (r *fakeDoctorProfileRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.DoctorProfile, error) {
	result := make([]entity.DoctorProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		result = append(result, *p)
	}
	return result, nil
}

func (r *fakeDoctorProfileRepo) Update(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeDoctorProfileRepo) DeleteByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	if _, ok := r.profiles[userID]; !ok {
		return 0, nil
	}
	delete(r.profiles, userID)
	return 1, nil
}

func (r *fakeDoctorProfileRepo) IncrementConsultations(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	r.bumps++
	if p, ok := r.profiles[userID]; ok {
		p.TotalConsultations++
	}
	return nil
}

type fakeLabRepo struct {
	assistants map[uuid.UUID]*entity.LabAssistant
}

func newFakeLabRepo() *fakeLabRepo {
	return &fakeLabRepo{assistants: map[uuid.UUID]*entity.LabAssistant{}}
}

func (r *fakeLabRepo) Create(ctx context.Context, db *gorm.DB, assistant *entity.LabAssistant) error {
	if _, ok := r.assistants[assistant.UserID]; ok {
		return fmt.Errorf("duplicate user_id")
	}
	if assistant.ID == uuid.Nil {
		assistant.ID = uuid.New()
	}
	r.assistants[assistant.UserID] = assistant
	return nil
}

func (r *fakeLabRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.LabAssistant, error) {
	return r.assistants[userID], nil
}

func (r *fakeLabRepo) Update(ctx context.Context, db *gorm.DB, assistant *entity.LabAssistant) error {
	r.assistants[assistant.UserID] = assistant
	return nil
}

func (r *fakeLabRepo) DeleteByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	if _, ok := r.assistants[userID]; !ok {
		return 0, nil
	}
	delete(r.assistants, userID)
	return 1, nil
}

type fakeReportRepo struct {
	reports map[uuid.UUID]*entity.DiagnosticReport
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[uuid.UUID]*entity.DiagnosticReport{}}
}

func (r *fakeReportRepo) Create(ctx context.Context, db *gorm.DB, report *entity.DiagnosticReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	r.reports[report.ID] = report
	return nil
}

func (r *fakeReportRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.DiagnosticReport, error) {
	result := []entity.DiagnosticReport{}
	for _, rep := range r.reports {
		if rep.PatientID == patientID {
			result = append(result, *rep)
		}
	}
	return result, nil
}

func (r *fakeReportRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.DiagnosticReport, error) {
	result := make([]entity.DiagnosticReport, 0, len(r.reports))
	for _, rep := range r.reports {
		result = append(result, *rep)
	}
	return result, nil
}

func (r *fakeReportRepo) DeleteByRecordID(ctx context.Context, db *gorm.DB, patientID, recordID uuid.UUID) (int64, error) {
	rep, ok := r.reports[recordID]
	if !ok || rep.PatientID != patientID {
		return 0, nil
	}
	delete(r.reports, recordID)
	return 1, nil
}

func (r *fakeReportRepo) DeleteByReportID(ctx context.Context, db *gorm.DB, reportID string) (int64, error) {
	for id, rep := range r.reports {
		if rep.ReportID == reportID {
			delete(r.reports, id)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeReportRepo) DeleteByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (int64, error) {
	var n int64
	for id, rep := range r.reports {
		if rep.PatientID == patientID {
			delete(r.reports, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeReportRepo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	return int64(len(r.reports)), nil
}

type fakePrescriptionRepo struct {
	prescriptions map[uuid.UUID]*entity.Prescription
}

func newFakePrescriptionRepo() *fakePrescriptionRepo {
	return &fakePrescriptionRepo{prescriptions: map[uuid.UUID]*entity.Prescription{}}
}

func (r *fakePrescriptionRepo) Create(ctx context.Context, db *gorm.DB, prescription *entity.Prescription) error {
	if prescription.ID == uuid.Nil {
		prescription.ID = uuid.New()
	}
	r.prescriptions[prescription.ID] = prescription
	return nil
}

func (r *fakePrescriptionRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Prescription, error) {
	return r.prescriptions[id], nil
}

func (r *fakePrescriptionRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error) {
	result := []entity.Prescription{}
	for _, p := range r.prescriptions {
		if p.PatientID == patientID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *fakePrescriptionRepo) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Prescription, error) {
	result := []entity.Prescription{}
	for _, p := range r.prescriptions {
		if p.DoctorID == doctorID {
			result = append(result, *p)
		}
	}
	return result, nil
}

// fakeTokenService tracks validity in a map keyed the same way Redis would be.
type fakeTokenService struct {
	valid        map[string]bool
	revokedUsers []uuid.UUID
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{valid: map[string]bool{}}
}

func (s *fakeTokenService) key(userID uuid.UUID, tokenID string, tokenType jwt.TokenType) string {
	return fmt.Sprintf("%s:%s:%s", tokenType, userID, tokenID)
}

func (s *fakeTokenService) Store(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) error {
	s.valid[s.key(userID, tokenID, tokenType)] = true
	return nil
}

func (s *fakeTokenService) IsValid(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) (bool, error) {
	return s.valid[s.key(userID, tokenID, tokenType)], nil
}

func (s *fakeTokenService) Revoke(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) error {
	delete(s.valid, s.key(userID, tokenID, tokenType))
	return nil
}

func (s *fakeTokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	s.revokedUsers = append(s.revokedUsers, userID)
	for k := range s.valid {
		delete(s.valid, k)
	}
	return nil
}

type auditEntry struct {
	actorID *uuid.UUID
	action  string
}

type fakeAuditService struct {
	entries []auditEntry
}

func (s *fakeAuditService) LogAction(ctx context.Context, actorID *uuid.UUID, action string, entityName string, entityID string, metadata map[string]interface{}) error {
	s.entries = append(s.entries, auditEntry{actorID: actorID, action: action})
	return nil
}

func (s *fakeAuditService) actions() []string {
	result := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		result = append(result, e.action)
	}
	return result
}
