package converter

import (
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
)

func UserToResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FullName:       user.FullName,
		Role:           user.Role,
		Phone:          user.Phone,
		IsActive:       user.Active(),
		IsVerified:     user.IsVerified,
		HospitalEmail:  user.HospitalEmail,
		Specialization: user.Specialization,
		LicenseNumber:  user.LicenseNumber,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *UserToResponse(&users[i]))
	}
	return responses
}
