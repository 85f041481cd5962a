package repository

import (
	"context"

	"medicore/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.DoctorProfile, error)
	Update(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error
	DeleteByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
	IncrementConsultations(ctx context.Context, db *gorm.DB, userID uuid.UUID) error
}
