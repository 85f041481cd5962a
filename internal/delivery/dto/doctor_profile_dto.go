package dto

import (
	"time"

	"medicore/internal/domain/entity"

	"github.com/google/uuid"
)

type CreateDoctorProfileRequest struct {
	Qualifications  []string           `json:"qualifications" validate:"required"`
	ExperienceYears int                `json:"experience_years" validate:"gte=0"`
	ConsultationFee float64            `json:"consultation_fee" validate:"gte=0"`
	Languages       []string           `json:"languages"`
	About           string             `json:"about" validate:"omitempty,max=5000"`
	ProfilePicture  string             `json:"profile_picture"`
	Degrees         []entity.Degree    `json:"degrees" validate:"omitempty,dive"`
	ClinicInfo      *entity.ClinicInfo `json:"clinic_info"`
}

type UpdateDoctorProfileRequest struct {
	Qualifications  *[]string          `json:"qualifications"`
	ExperienceYears *int               `json:"experience_years" validate:"omitempty,gte=0"`
	ConsultationFee *float64           `json:"consultation_fee" validate:"omitempty,gte=0"`
	Languages       *[]string          `json:"languages"`
	About           *string            `json:"about"`
	ProfilePicture  *string            `json:"profile_picture"`
	Degrees         *[]entity.Degree   `json:"degrees"`
	ClinicInfo      *entity.ClinicInfo `json:"clinic_info"`
}

type UpdateAvailabilityRequest struct {
	Availability []entity.AvailabilityDay `json:"availability" validate:"required,dive"`
}

type DoctorProfileResponse struct {
	ID                 uuid.UUID                `json:"id"`
	UserID             uuid.UUID                `json:"user_id"`
	ProfilePicture     string                   `json:"profile_picture,omitempty"`
	About              string                   `json:"about,omitempty"`
	Qualifications     []string                 `json:"qualifications"`
	Degrees            []entity.Degree          `json:"degrees"`
	ExperienceYears    int                      `json:"experience_years"`
	ConsultationFee    float64                  `json:"consultation_fee"`
	Languages          []string                 `json:"languages"`
	ClinicInfo         *entity.ClinicInfo       `json:"clinic_info,omitempty"`
	Availability       []entity.AvailabilityDay `json:"availability"`
	TotalConsultations int                      `json:"total_consultations"`
	AverageRating      float64                  `json:"average_rating"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

type AvailableSlotsResponse struct {
	Date           string   `json:"date"`
	Day            string   `json:"day"`
	AvailableSlots []string `json:"available_slots"`
	BookedSlots    []string `json:"booked_slots"`
}
