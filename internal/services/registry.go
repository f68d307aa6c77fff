package services

import "sakay_backend/internal/email"

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService   AuthService
	UserService   UserService
	ReportService ReportService
	RouteService  RouteService
	SearchService SearchService
	AdminService  AdminService
	EmailService  email.Provider
}
