package services

import (
	"time"

	"gorm.io/gorm"

	"sakay_backend/internal/models"
	"sakay_backend/internal/repositories"
	"sakay_backend/internal/services/dto"
	"sakay_backend/pkg/apperrors"
)

// AdminService aggregates the dashboard cards from the other stores.
type AdminService interface {
	DashboardStats(db *gorm.DB) (*dto.DashboardStats, error)
}

type AdminServiceImpl struct {
	userRepo   repositories.UserRepository
	routeRepo  repositories.RouteRepository
	reportRepo repositories.ReportRepository
	searchRepo repositories.SearchRepository
}

func NewAdminService(
	userRepo repositories.UserRepository,
	routeRepo repositories.RouteRepository,
	reportRepo repositories.ReportRepository,
	searchRepo repositories.SearchRepository,
) AdminService {
	return &AdminServiceImpl{
		userRepo:   userRepo,
		routeRepo:  routeRepo,
		reportRepo: reportRepo,
		searchRepo: searchRepo,
	}
}

func (s *AdminServiceImpl) DashboardStats(db *gorm.DB) (*dto.DashboardStats, error) {
	users, err := s.userRepo.CountAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	routes, err := s.routeRepo.CountActive(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	pending, err := s.reportRepo.CountByStatus(db, models.ReportStatusPending)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// "Today" is the server's local midnight.
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	searches, err := s.searchRepo.CountSince(db, midnight)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.DashboardStats{
		TotalUsers:     users,
		ActiveRoutes:   routes,
		PendingReports: pending,
		SearchesToday:  searches,
	}, nil
}
