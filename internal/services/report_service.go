package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"taskmarket.com/taskmarket/internal/apperrors"
	"taskmarket.com/taskmarket/internal/constants"
	model "taskmarket.com/taskmarket/internal/models"
	repository "taskmarket.com/taskmarket/internal/repositories"
)

const reportListLimit = 200

type ReportService struct {
	reports *repository.ReportRepository
}

func NewReportService(reports *repository.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

func (s *ReportService) Create(ctx context.Context, reporterID, targetType, targetID, reason string) (*model.Report, error) {
	reason = strings.TrimSpace(reason)

	var details []apperrors.Detail
	if targetType != string(constants.ReportTargetTask) && targetType != string(constants.ReportTargetUser) {
		details = append(details, apperrors.Detail{
			Field: "targetType", Message: "targetType must be task or user",
		})
	}
	if targetID == "" {
		details = append(details, apperrors.Detail{
			Field: "targetId", Message: "targetId is required",
		})
	}
	if len(reason) < 5 || len(reason) > 500 {
		details = append(details, apperrors.Detail{
			Field: "reason", Message: "reason must be between 5 and 500 characters",
		})
	}
	if len(details) > 0 {
		return nil, apperrors.Validation("Invalid input", details...)
	}

	report := &model.Report{
		ReporterID: reporterID,
		TargetType: constants.ReportTargetType(targetType),
		TargetID:   targetID,
		Reason:     reason,
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) ListMine(ctx context.Context, reporterID string) ([]model.Report, error) {
	return s.reports.ListForReporter(ctx, reporterID, reportListLimit)
}

func (s *ReportService) ListAll(ctx context.Context, status string) ([]model.Report, error) {
	switch constants.ReportStatus(status) {
	case constants.ReportOpen, constants.ReportResolved, constants.ReportDismissed:
	default:
		status = ""
	}
	return s.reports.ListAll(ctx, status, reportListLimit)
}

// Resolve moves an open report to resolved or dismissed.
func (s *ReportService) Resolve(ctx context.Context, reportID, adminID, status, note string) (*model.Report, error) {
	note = strings.TrimSpace(note)

	target := constants.ReportStatus(status)
	if target != constants.ReportResolved && target != constants.ReportDismissed {
		return nil, apperrors.Validation("Invalid input", apperrors.Detail{
			Field: "status", Message: "status must be resolved or dismissed",
		})
	}
	if len(note) > 500 {
		return nil, apperrors.Validation("Invalid input", apperrors.Detail{
			Field: "resolutionNote", Message: "resolutionNote must be at most 500 characters",
		})
	}

	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("REPORT_NOT_FOUND", "Report not found")
		}
		return nil, err
	}
	if report.Status != constants.ReportOpen {
		return nil, apperrors.Conflict("INVALID_REPORT_STATE", "Only open reports can be resolved")
	}

	if err := s.reports.Resolve(ctx, reportID, target, note, adminID); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, apperrors.Conflict("INVALID_REPORT_STATE", "Only open reports can be resolved")
		}
		return nil, err
	}

	return s.reports.FindByID(ctx, reportID)
}
