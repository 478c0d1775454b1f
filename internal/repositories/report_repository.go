package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskmarket.com/taskmarket/internal/constants"
	model "taskmarket.com/taskmarket/internal/models"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *model.Report) error {
	report.ID = uuid.NewString()
	report.Status = constants.ReportOpen
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*model.Report, error) {
	var report model.Report
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) ListForReporter(ctx context.Context, reporterID string, limit int) ([]model.Report, error) {
	var reports []model.Report
	err := r.db.WithContext(ctx).
		Where("reporter_id = ?", reporterID).
		Order("created_at desc").Limit(limit).
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) ListAll(ctx context.Context, status string, limit int) ([]model.Report, error) {
	query := r.db.WithContext(ctx).Model(&model.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []model.Report
	err := query.Order("created_at desc").Limit(limit).Find(&reports).Error
	return reports, err
}

// Resolve moves an open report to resolved or dismissed. A non-open report
// yields ErrStateConflict.
func (r *ReportRepository) Resolve(ctx context.Context, reportID string, status constants.ReportStatus, note, resolvedBy string) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Report{}).
		Where("id = ? AND status = ?", reportID, constants.ReportOpen).
		Updates(map[string]interface{}{
			"status":          status,
			"resolution_note": note,
			"resolved_by":     resolvedBy,
			"resolved_at":     now,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStateConflict
	}
	return nil
}
