package repository

import (
	"context"

	"medicore/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabAssistantRepository interface {
	Create(ctx context.Context, db *gorm.DB, assistant *entity.LabAssistant) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.LabAssistant, error)
	Update(ctx context.Context, db *gorm.DB, assistant *entity.LabAssistant) error
	DeleteByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
}
