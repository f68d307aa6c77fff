package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"sakay_backend/internal/models"
)

// registerCustomRules wires domain status/role checks into the validator.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-status", validateUserStatus)
	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-report-status", validateReportStatus)
	mustRegister("is-route-status", validateRouteStatus)
}

func validateUserStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empties
	}
	switch models.UserStatus(value) {
	case models.UserStatusActive, models.UserStatusSuspended:
		return true
	default:
		return false
	}
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleUser, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateReportStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ReportStatus(value) {
	case models.ReportStatusPending, models.ReportStatusVerified, models.ReportStatusRejected:
		return true
	default:
		return false
	}
}

func validateRouteStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.RouteStatus(value) {
	case models.RouteStatusActive, models.RouteStatusSuspended, models.RouteStatusMaintenance:
		return true
	default:
		return false
	}
}
