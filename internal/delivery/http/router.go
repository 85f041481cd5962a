package http

import (
	"net/http"

	"medicore/internal/delivery/http/handler"
	"medicore/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	patientHandler      *handler.PatientHandler
	appointmentHandler  *handler.AppointmentHandler
	doctorHandler       *handler.DoctorProfileHandler
	labHandler          *handler.LabHandler
	prescriptionHandler *handler.PrescriptionHandler
	adminHandler        *handler.AdminHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	appointmentHandler *handler.AppointmentHandler,
	doctorHandler *handler.DoctorProfileHandler,
	labHandler *handler.LabHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		patientHandler:      patientHandler,
		appointmentHandler:  appointmentHandler,
		doctorHandler:       doctorHandler,
		labHandler:          labHandler,
		prescriptionHandler: prescriptionHandler,
		adminHandler:        adminHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Doctor directory (public)
	api.HandleFunc("/appointments/doctors", r.appointmentHandler.GetDoctors).Methods(http.MethodGet)

	// Patient self-service (patient only)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequirePatient)
	patients.HandleFunc("", r.patientHandler.CreateProfile).Methods(http.MethodPost)
	patients.HandleFunc("/me", r.patientHandler.GetMyProfile).Methods(http.MethodGet)
	patients.HandleFunc("/me", r.patientHandler.UpdateMyProfile).Methods(http.MethodPut)
	patients.HandleFunc("/me/reports", r.patientHandler.GetMyReports).Methods(http.MethodGet)

	// Patient roster views (doctor only)
	doctorPatients := api.PathPrefix("/patients").Subrouter()
	doctorPatients.Use(r.authMiddleware.Authenticate)
	doctorPatients.Use(middleware.RequireDoctor)
	doctorPatients.HandleFunc("/search", r.patientHandler.Search).Methods(http.MethodGet)
	doctorPatients.HandleFunc("/{id}/details", r.patientHandler.GetDetails).Methods(http.MethodGet)
	doctorPatients.HandleFunc("/{id}/appointments", r.patientHandler.GetPatientAppointments).Methods(http.MethodGet)
	doctorPatients.HandleFunc("/{id}/prescriptions", r.patientHandler.GetPatientPrescriptions).Methods(http.MethodGet)

	// Appointment lifecycle
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.Create).Methods(http.MethodPost)
	appointments.HandleFunc("/my-appointments", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/doctor-appointments", r.appointmentHandler.GetDoctorAppointments).Methods(http.MethodGet)
	appointments.Handle("/admin/{id}", middleware.RequireAdmin(http.HandlerFunc(r.appointmentHandler.Delete))).Methods(http.MethodDelete)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)

	// Doctor profile management (doctor only)
	doctorProfile := api.PathPrefix("/doctor-profile").Subrouter()
	doctorProfile.Use(r.authMiddleware.Authenticate)
	doctorProfile.Use(middleware.RequireDoctor)
	doctorProfile.HandleFunc("", r.doctorHandler.Create).Methods(http.MethodPost)
	doctorProfile.HandleFunc("/me", r.doctorHandler.GetMyProfile).Methods(http.MethodGet)
	doctorProfile.HandleFunc("/me", r.doctorHandler.UpdateMyProfile).Methods(http.MethodPut)
	doctorProfile.HandleFunc("/availability", r.doctorHandler.UpdateAvailability).Methods(http.MethodPut)
	doctorProfile.HandleFunc("/upload-picture", r.doctorHandler.UploadPicture).Methods(http.MethodPost)

	// Slot lookup (any authenticated user) and admin profile removal
	doctorProfileShared := api.PathPrefix("/doctor-profile").Subrouter()
	doctorProfileShared.Use(r.authMiddleware.Authenticate)
	doctorProfileShared.Handle("/admin/{id}", middleware.RequireAdmin(http.HandlerFunc(r.doctorHandler.Delete))).Methods(http.MethodDelete)
	doctorProfileShared.HandleFunc("/{id}/available-slots", r.doctorHandler.GetAvailableSlots).Methods(http.MethodGet)

	// Lab assistant routes (lab only)
	lab := api.PathPrefix("/lab").Subrouter()
	lab.Use(r.authMiddleware.Authenticate)
	lab.Use(middleware.RequireLabAssistant)
	lab.HandleFunc("/profile", r.labHandler.CreateProfile).Methods(http.MethodPost)
	lab.HandleFunc("/profile/me", r.labHandler.GetMyProfile).Methods(http.MethodGet)
	lab.HandleFunc("/profile/me", r.labHandler.UpdateMyProfile).Methods(http.MethodPut)
	lab.HandleFunc("/patients", r.labHandler.ListPatients).Methods(http.MethodGet)
	lab.HandleFunc("/patients/{id}/details", r.labHandler.GetPatientDetails).Methods(http.MethodGet)
	lab.HandleFunc("/upload-report/{id}", r.labHandler.UploadReport).Methods(http.MethodPost)
	lab.HandleFunc("/reports", r.labHandler.ListAllReports).Methods(http.MethodGet)
	lab.HandleFunc("/reports/{id}", r.labHandler.ListPatientReports).Methods(http.MethodGet)
	lab.HandleFunc("/reports/{id}/{reportId}", r.labHandler.DeletePatientReport).Methods(http.MethodDelete)
	lab.HandleFunc("/reports/{reportId}", r.labHandler.DeleteReport).Methods(http.MethodDelete)
	lab.HandleFunc("/statistics", r.labHandler.Statistics).Methods(http.MethodGet)

	// Prescriptions
	prescriptionsWrite := api.PathPrefix("/prescriptions").Subrouter()
	prescriptionsWrite.Use(r.authMiddleware.Authenticate)
	prescriptionsWrite.Use(middleware.RequireDoctor)
	prescriptionsWrite.HandleFunc("", r.prescriptionHandler.Create).Methods(http.MethodPost)
	prescriptionsWrite.HandleFunc("/my/all", r.prescriptionHandler.GetMyPrescriptions).Methods(http.MethodGet)

	prescriptionsRead := api.PathPrefix("/prescriptions").Subrouter()
	prescriptionsRead.Use(r.authMiddleware.Authenticate)
	prescriptionsRead.Use(middleware.RequireDoctorOrPatient)
	prescriptionsRead.HandleFunc("/patient/{patientId}", r.prescriptionHandler.GetByPatient).Methods(http.MethodGet)
	prescriptionsRead.HandleFunc("/{id}", r.prescriptionHandler.GetDetails).Methods(http.MethodGet)

	// Admin routes (admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/users", r.adminHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/role", r.adminHandler.UpdateUserRole).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", r.adminHandler.DeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/patients", r.adminHandler.ListPatients).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}", r.adminHandler.DeletePatient).Methods(http.MethodDelete)
	admin.HandleFunc("/doctors", r.adminHandler.ListDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/appointments", r.adminHandler.ListAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/statistics", r.adminHandler.Statistics).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
