package dto

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=patient doctor lab_assistant admin"`
}

type AppointmentsByStatus struct {
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Rejected  int64 `json:"rejected"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

type AdminStatisticsResponse struct {
	TotalUsers           int64                `json:"total_users"`
	TotalPatients        int64                `json:"total_patients"`
	TotalDoctors         int64                `json:"total_doctors"`
	TotalAppointments    int64                `json:"total_appointments"`
	AppointmentsByStatus AppointmentsByStatus `json:"appointments_by_status"`
}
