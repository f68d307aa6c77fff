package repositories

import (
	"time"

	"gorm.io/gorm"

	"sakay_backend/internal/models"
)

// RouteCount is one aggregated row of the search stats: the pair keeps the
// capitalization of its first recorded occurrence for display.
type RouteCount struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int64  `json:"count"`
}

type SearchRepository interface {
	Create(db *gorm.DB, search *models.Search) error
	// TopRoutes groups case-insensitively on from/to and returns the most
	// searched pairs, count descending.
	TopRoutes(db *gorm.DB, limit int) ([]RouteCount, error)
	CountSince(db *gorm.DB, since time.Time) (int64, error)
}

type SearchRepositoryImpl struct{}

func NewSearchRepository() SearchRepository {
	return &SearchRepositoryImpl{}
}

func (r *SearchRepositoryImpl) Create(db *gorm.DB, search *models.Search) error {
	return db.Create(search).Error
}

func (r *SearchRepositoryImpl) TopRoutes(db *gorm.DB, limit int) ([]RouteCount, error) {
	var rows []RouteCount
	// DISTINCT ON picks the earliest spelling per lowercased pair for
	// display, mirroring the "first occurrence wins" rule of the dashboard.
	err := db.Raw(`
		SELECT display.from_location AS "from", display.to_location AS "to", agg.count
		FROM (
			SELECT lower(from_location) AS lf, lower(to_location) AS lt, count(*) AS count
			FROM searches
			GROUP BY lower(from_location), lower(to_location)
		) agg
		JOIN (
			SELECT DISTINCT ON (lower(from_location), lower(to_location))
				lower(from_location) AS lf, lower(to_location) AS lt,
				from_location, to_location
			FROM searches
			ORDER BY lower(from_location), lower(to_location), date ASC
		) display ON display.lf = agg.lf AND display.lt = agg.lt
		ORDER BY agg.count DESC
		LIMIT ?`, limit).Scan(&rows).Error
	return rows, err
}

func (r *SearchRepositoryImpl) CountSince(db *gorm.DB, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Search{}).Where("date >= ?", since).Count(&count).Error
	return count, err
}
