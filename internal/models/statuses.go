package models

type UserStatus string
type UserRole string
type ReportStatus string
type RouteStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	ReportStatusPending  ReportStatus = "pending"
	ReportStatusVerified ReportStatus = "verified"
	ReportStatusRejected ReportStatus = "rejected"

	RouteStatusActive      RouteStatus = "active"
	RouteStatusSuspended   RouteStatus = "suspended"
	RouteStatusMaintenance RouteStatus = "maintenance"
)
