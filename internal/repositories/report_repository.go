package repositories

import (
	"errors"

	"gorm.io/gorm"

	"sakay_backend/internal/models"
)

var ErrReportNotFound = errors.New("report not found")

type ReportRepository interface {
	Create(db *gorm.DB, report *models.Report) error
	FindByID(db *gorm.DB, id string) (*models.Report, error)
	FindAll(db *gorm.DB, status models.ReportStatus) ([]models.Report, error)
	UpdateStatus(db *gorm.DB, id string, status models.ReportStatus) error
	CountByStatus(db *gorm.DB, status models.ReportStatus) (int64, error)
}

type ReportRepositoryImpl struct{}

func NewReportRepository() ReportRepository {
	return &ReportRepositoryImpl{}
}

func (r *ReportRepositoryImpl) Create(db *gorm.DB, report *models.Report) error {
	return db.Create(report).Error
}

func (r *ReportRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Report, error) {
	var report models.Report
	err := db.First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepositoryImpl) FindAll(db *gorm.DB, status models.ReportStatus) ([]models.Report, error) {
	var reports []models.Report
	query := db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("timestamp DESC").Find(&reports).Error
	return reports, err
}

func (r *ReportRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ReportStatus) error {
	result := db.Model(&models.Report{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (r *ReportRepositoryImpl) CountByStatus(db *gorm.DB, status models.ReportStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Report{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
