package services

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sakay_backend/internal/models"
	"sakay_backend/internal/repositories"
	"sakay_backend/internal/services/dto"
	"sakay_backend/pkg/apperrors"
)

// RouteService is the registry behind both the admin route manager and the
// commuter destination search.
type RouteService interface {
	Create(db *gorm.DB, req *dto.RouteRequest) (*models.Route, error)
	Update(db *gorm.DB, id string, req *dto.RouteRequest) (*models.Route, error)
	Delete(db *gorm.DB, id string) error
	Get(db *gorm.DB, id string) (*models.Route, error)
	List(db *gorm.DB) ([]models.Route, error)
	FindByEndpoints(db *gorm.DB, start, end string) ([]models.Route, error)
}

type RouteServiceImpl struct {
	routeRepo repositories.RouteRepository
}

func NewRouteService(routeRepo repositories.RouteRepository) RouteService {
	return &RouteServiceImpl{routeRepo: routeRepo}
}

func (s *RouteServiceImpl) Create(db *gorm.DB, req *dto.RouteRequest) (*models.Route, error) {
	route := routeFromRequest(req)
	if err := s.routeRepo.Create(db, route); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return route, nil
}

// Update is a full replacement: every field comes from the request, fields
// omitted by the client fall back to their zero value.
func (s *RouteServiceImpl) Update(db *gorm.DB, id string, req *dto.RouteRequest) (*models.Route, error) {
	route := routeFromRequest(req)
	route.ID = id
	if err := s.routeRepo.Update(db, route); err != nil {
		if apperrors.Is(err, repositories.ErrRouteNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return s.Get(db, id)
}

func (s *RouteServiceImpl) Delete(db *gorm.DB, id string) error {
	if err := s.routeRepo.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *RouteServiceImpl) Get(db *gorm.DB, id string) (*models.Route, error) {
	route, err := s.routeRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRouteNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return route, nil
}

func (s *RouteServiceImpl) List(db *gorm.DB) ([]models.Route, error) {
	routes, err := s.routeRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return routes, nil
}

// FindByEndpoints never errors on an empty match; the destination page shows
// "no routes found" for an empty slice.
func (s *RouteServiceImpl) FindByEndpoints(db *gorm.DB, start, end string) ([]models.Route, error) {
	routes, err := s.routeRepo.FindByEndpoints(db, start, end)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if routes == nil {
		routes = []models.Route{}
	}
	return routes, nil
}

func routeFromRequest(req *dto.RouteRequest) *models.Route {
	var fare float64
	if req.Fare != nil {
		fare = *req.Fare
	}
	status := models.RouteStatus(req.Status)
	if status == "" {
		status = models.RouteStatusActive
	}
	return &models.Route{
		Name:       req.Name,
		Status:     status,
		Start:      req.Start,
		End:        req.End,
		Fare:       fare,
		TravelTime: req.TravelTime,
		Steps:      datatypes.JSONSlice[string](req.Steps),
	}
}
