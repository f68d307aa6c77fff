package dto

import "sakay_backend/internal/models"

// AdminCreateUserRequest - admin adds an account directly, bypassing OTP.
type AdminCreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" validate:"is-user-role"`
	Status   string `json:"status" validate:"is-user-status"`
}

// SetUserStatusRequest - suspend/unsuspend toggle.
type SetUserStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"is-user-status"`
}

// UpdateProfileRequest - self-service profile edit.
type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// UpdatePreferencesRequest - the six profile toggles.
type UpdatePreferencesRequest struct {
	Preferences models.Preferences `json:"preferences"`
}

// UserResponse strips the password hash from list/detail payloads.
type UserResponse struct {
	ID          string             `json:"id"`
	Username    string             `json:"username"`
	Email       string             `json:"email"`
	Status      models.UserStatus  `json:"status"`
	Role        models.UserRole    `json:"role"`
	Preferences models.Preferences `json:"preferences"`
	TripsTaken  int64              `json:"tripsTaken"`
	CreatedAt   string             `json:"createdAt"`
}
