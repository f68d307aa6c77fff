package services

import (
	"time"

	"gorm.io/gorm"

	"sakay_backend/internal/models"
	"sakay_backend/internal/repositories"
	"sakay_backend/internal/services/dto"
	"sakay_backend/pkg/apperrors"
)

const topRoutesLimit = 10

// SearchService records destination lookups and aggregates them for the
// admin dashboard.
type SearchService interface {
	// Record logs the search and, for signed-in users, bumps their trip
	// counter. The counter bump is best effort.
	Record(db *gorm.DB, userEmail string, req *dto.RecordSearchRequest) error
	Stats(db *gorm.DB) ([]dto.RouteStatsEntry, error)
}

type SearchServiceImpl struct {
	searchRepo repositories.SearchRepository
	userRepo   repositories.UserRepository
}

func NewSearchService(searchRepo repositories.SearchRepository, userRepo repositories.UserRepository) SearchService {
	return &SearchServiceImpl{searchRepo: searchRepo, userRepo: userRepo}
}

func (s *SearchServiceImpl) Record(db *gorm.DB, userEmail string, req *dto.RecordSearchRequest) error {
	search := &models.Search{
		From: req.From,
		To:   req.To,
		Date: time.Now(),
	}
	if err := s.searchRepo.Create(db, search); err != nil {
		return apperrors.InternalError(err)
	}

	if userEmail != "" {
		// A missing row (account deleted mid-session) is not worth failing
		// the search over.
		_ = s.userRepo.IncrementTrips(db, userEmail)
	}
	return nil
}

func (s *SearchServiceImpl) Stats(db *gorm.DB) ([]dto.RouteStatsEntry, error) {
	rows, err := s.searchRepo.TopRoutes(db, topRoutesLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	entries := make([]dto.RouteStatsEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.RouteStatsEntry{
			ID:    dto.RoutePair{From: row.From, To: row.To},
			Count: row.Count,
		})
	}
	return entries, nil
}
