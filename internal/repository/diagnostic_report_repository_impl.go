package repository

import (
	"context"

	"medicore/internal/domain/entity"
	domainRepo "medicore/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type diagnosticReportRepository struct{}

func NewDiagnosticReportRepository() domainRepo.DiagnosticReportRepository {
	return &diagnosticReportRepository{}
}

func (r *diagnosticReportRepository) Create(ctx context.Context, db *gorm.DB, report *entity.DiagnosticReport) error {
	return db.WithContext(ctx).Create(report).Error
}

func (r *diagnosticReportRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.DiagnosticReport, error) {
	var reports []entity.DiagnosticReport
	err := db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("uploaded_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *diagnosticReportRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.DiagnosticReport, error) {
	var reports []entity.DiagnosticReport
	err := db.WithContext(ctx).
		Preload("Patient.User").
		Order("uploaded_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *diagnosticReportRepository) DeleteByRecordID(ctx context.Context, db *gorm.DB, patientID, recordID uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).
		Where("patient_id = ? AND id = ?", patientID, recordID).
		Delete(&entity.DiagnosticReport{})
	return result.RowsAffected, result.Error
}

func (r *diagnosticReportRepository) DeleteByReportID(ctx context.Context, db *gorm.DB, reportID string) (int64, error) {
	result := db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Delete(&entity.DiagnosticReport{})
	return result.RowsAffected, result.Error
}

func (r *diagnosticReportRepository) DeleteByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Delete(&entity.DiagnosticReport{})
	return result.RowsAffected, result.Error
}

func (r *diagnosticReportRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.DiagnosticReport{}).Count(&count).Error
	return count, err
}
