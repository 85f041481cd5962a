package repository

import (
	"context"

	"medicore/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DiagnosticReportRepository interface {
	Create(ctx context.Context, db *gorm.DB, report *entity.DiagnosticReport) error
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.DiagnosticReport, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.DiagnosticReport, error)
	DeleteByRecordID(ctx context.Context, db *gorm.DB, patientID, recordID uuid.UUID) (int64, error)
	DeleteByReportID(ctx context.Context, db *gorm.DB, reportID string) (int64, error)
	DeleteByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (int64, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
