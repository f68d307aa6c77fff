package repositories

import (
	"errors"

	"gorm.io/gorm"

	"sakay_backend/internal/models"
)

var ErrRouteNotFound = errors.New("route not found")

type RouteRepository interface {
	Create(db *gorm.DB, route *models.Route) error
	FindByID(db *gorm.DB, id string) (*models.Route, error)
	FindAll(db *gorm.DB) ([]models.Route, error)
	// FindByEndpoints is a case-sensitive exact match; commuters searching
	// with different casing get empty results (known limitation).
	FindByEndpoints(db *gorm.DB, start, end string) ([]models.Route, error)
	Update(db *gorm.DB, route *models.Route) error
	// Delete is idempotent: removing an absent id is not an error.
	Delete(db *gorm.DB, id string) error
	CountActive(db *gorm.DB) (int64, error)
}

type RouteRepositoryImpl struct{}

func NewRouteRepository() RouteRepository {
	return &RouteRepositoryImpl{}
}

func (r *RouteRepositoryImpl) Create(db *gorm.DB, route *models.Route) error {
	return db.Create(route).Error
}

func (r *RouteRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Route, error) {
	var route models.Route
	err := db.First(&route, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return &route, nil
}

func (r *RouteRepositoryImpl) FindAll(db *gorm.DB) ([]models.Route, error) {
	var routes []models.Route
	err := db.Order("created_at DESC").Find(&routes).Error
	return routes, err
}

func (r *RouteRepositoryImpl) FindByEndpoints(db *gorm.DB, start, end string) ([]models.Route, error) {
	var routes []models.Route
	err := db.Where(`"start" = ? AND "end" = ?`, start, end).Find(&routes).Error
	return routes, err
}

func (r *RouteRepositoryImpl) Update(db *gorm.DB, route *models.Route) error {
	result := db.Model(&models.Route{}).Where("id = ?", route.ID).Updates(map[string]interface{}{
		"name":        route.Name,
		"status":      route.Status,
		"start":       route.Start,
		"end":         route.End,
		"fare":        route.Fare,
		"travel_time": route.TravelTime,
		"steps":       route.Steps,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRouteNotFound
	}
	return nil
}

func (r *RouteRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Where("id = ?", id).Delete(&models.Route{}).Error
}

// CountActive excludes routes with empty endpoints and anything not in a
// serviceable status; feeds the dashboard card.
func (r *RouteRepositoryImpl) CountActive(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Route{}).
		Where(`"start" <> '' AND "end" <> ''`).
		Where("status <> ?", "deleted").
		Count(&count).Error
	return count, err
}
