package service

import (
	"context"

	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records admin-sensitive mutations. Failures are logged and
// returned but callers treat them as best-effort.
type AuditService interface {
	LogAction(ctx context.Context, actorID *uuid.UUID, action string, entityName string, entityID string, metadata map[string]interface{}) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogAction(ctx context.Context, actorID *uuid.UUID, action string, entityName string, entityID string, metadata map[string]interface{}) error {
	meta := entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
	}
	for k, v := range metadata {
		meta[k] = v
	}

	auditLog := &entity.AuditLog{
		UserID:   actorID,
		Action:   action,
		Metadata: meta,
	}

	if err := s.auditRepo.Create(ctx, s.db, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
