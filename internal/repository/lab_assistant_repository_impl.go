package repository

import (
	"context"
	"errors"

	"medicore/internal/domain/entity"
	domainRepo "medicore/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type labAssistantRepository struct{}

func NewLabAssistantRepository() domainRepo.LabAssistantRepository {
	return &labAssistantRepository{}
}

func (r *labAssistantRepository) Create(ctx context.Context, db *gorm.DB, assistant *entity.LabAssistant) error {
	return db.WithContext(ctx).Create(assistant).Error
}

func (r *labAssistantRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.LabAssistant, error) {
	var assistant entity.LabAssistant
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&assistant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assistant, nil
}

func (r *labAssistantRepository) Update(ctx context.Context, db *gorm.DB, assistant *entity.LabAssistant) error {
	return db.WithContext(ctx).Save(assistant).Error
}

func (r *labAssistantRepository) DeleteByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.LabAssistant{})
	return result.RowsAffected, result.Error
}
