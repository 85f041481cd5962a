package converter

import (
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
)

func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorProfileResponse {
	resp := &dto.DoctorProfileResponse{
		ID:                 profile.ID,
		UserID:             profile.UserID,
		ProfilePicture:     profile.ProfilePicture,
		About:              profile.About,
		Qualifications:     profile.Qualifications,
		Degrees:            profile.Degrees,
		ExperienceYears:    profile.ExperienceYears,
		ConsultationFee:    profile.ConsultationFee,
		Languages:          profile.Languages,
		Availability:       profile.Availability,
		TotalConsultations: profile.TotalConsultations,
		AverageRating:      profile.AverageRating,
		CreatedAt:          profile.CreatedAt,
		UpdatedAt:          profile.UpdatedAt,
	}
	if profile.ClinicInfo != nil {
		info := profile.ClinicInfo.Data()
		resp.ClinicInfo = &info
	}
	return resp
}

func DoctorToDirectoryEntry(user *entity.User) *dto.DoctorDirectoryResponse {
	return &dto.DoctorDirectoryResponse{
		ID:             user.ID,
		FullName:       user.FullName,
		Email:          user.Email,
		Specialization: user.Specialization,
	}
}
