package services

import (
	"time"

	"gorm.io/gorm"

	"sakay_backend/internal/models"
	"sakay_backend/internal/repositories"
	"sakay_backend/internal/services/dto"
	"sakay_backend/pkg/apperrors"
)

// ReportService owns the triage workflow. A report is born pending and moves
// exactly once, to verified or rejected; repeating the same decision is a
// harmless no-op.
type ReportService interface {
	Submit(db *gorm.DB, submitter string, req *dto.SubmitReportRequest) (*models.Report, error)
	List(db *gorm.DB, status models.ReportStatus) ([]models.Report, error)
	SetStatus(db *gorm.DB, id string, status models.ReportStatus) (*models.Report, error)
	CountPending(db *gorm.DB) (int64, error)
}

type ReportServiceImpl struct {
	reportRepo repositories.ReportRepository
}

func NewReportService(reportRepo repositories.ReportRepository) ReportService {
	return &ReportServiceImpl{reportRepo: reportRepo}
}

func (s *ReportServiceImpl) Submit(db *gorm.DB, submitter string, req *dto.SubmitReportRequest) (*models.Report, error) {
	if submitter == "" {
		submitter = "Anonymous"
	}
	report := &models.Report{
		IssueType:     req.IssueType,
		Location:      req.Location,
		AffectedRoute: req.AffectedRoute,
		Description:   req.Description,
		User:          submitter,
		Status:        models.ReportStatusPending,
		Timestamp:     time.Now(),
	}
	if err := s.reportRepo.Create(db, report); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return report, nil
}

func (s *ReportServiceImpl) List(db *gorm.DB, status models.ReportStatus) ([]models.Report, error) {
	reports, err := s.reportRepo.FindAll(db, status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reports, nil
}

// SetStatus enforces the one-way transition. Reading first makes the guard
// explicit; UpdateStatus still re-checks existence via RowsAffected.
func (s *ReportServiceImpl) SetStatus(db *gorm.DB, id string, status models.ReportStatus) (*models.Report, error) {
	report, err := s.reportRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReportNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if report.Status == status {
		// Idempotent repeat of a past decision.
		return report, nil
	}
	if report.Status != models.ReportStatusPending {
		return nil, apperrors.ErrInvalidStatus("report", "report has already been triaged")
	}

	if err := s.reportRepo.UpdateStatus(db, id, status); err != nil {
		if apperrors.Is(err, repositories.ErrReportNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	report.Status = status
	return report, nil
}

func (s *ReportServiceImpl) CountPending(db *gorm.DB) (int64, error) {
	count, err := s.reportRepo.CountByStatus(db, models.ReportStatusPending)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}
