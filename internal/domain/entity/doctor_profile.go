package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Degree is one academic qualification entry
type Degree struct {
	Title       string `json:"title"`
	Institution string `json:"institution"`
	Year        int    `json:"year,omitempty"`
}

// ClinicInfo describes where the doctor consults
type ClinicInfo struct {
	ClinicName    string `json:"clinic_name,omitempty"`
	ClinicAddress string `json:"clinic_address,omitempty"`
	City          string `json:"city,omitempty"`
	Country       string `json:"country,omitempty"`
	ContactNumber string `json:"contact_number,omitempty"`
}

// AvailabilityDay is one weekday entry of the consultation template,
// e.g. {"day": "Monday", "time_slots": ["09:00-10:00", "10:00-11:00"]}
type AvailabilityDay struct {
	Day       string   `json:"day"`
	TimeSlots []string `json:"time_slots"`
}

// DoctorProfile represents the professional profile linked to a doctor user
type DoctorProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	ProfilePicture string `gorm:"type:text" json:"profile_picture,omitempty"`
	About          string `gorm:"type:text" json:"about,omitempty"`

	// Professional
	Qualifications  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"qualifications"`
	Degrees         datatypes.JSONSlice[Degree] `gorm:"type:jsonb" json:"degrees"`
	ExperienceYears int                         `gorm:"not null;default:0" json:"experience_years"`
	ConsultationFee float64                     `gorm:"not null;default:0" json:"consultation_fee"`
	Languages       datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"languages"`

	// Clinic
	ClinicInfo *datatypes.JSONType[ClinicInfo] `gorm:"type:jsonb" json:"clinic_info,omitempty"`

	// Availability template, at most 3 weekday entries
	Availability datatypes.JSONSlice[AvailabilityDay] `gorm:"type:jsonb" json:"availability"`

	// Statistics
	TotalConsultations int     `gorm:"not null;default:0" json:"total_consultations"`
	AverageRating      float64 `gorm:"not null;default:0" json:"average_rating"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// DayAvailability returns the template entry for a weekday name
// ("Monday", "Tuesday", ...) or nil when the doctor has none.
func (p *DoctorProfile) DayAvailability(day string) *AvailabilityDay {
	for i := range p.Availability {
		if p.Availability[i].Day == day {
			return &p.Availability[i]
		}
	}
	return nil
}
