package dto

// SignupRequest - starts the OTP-gated registration flow. Nothing is
// persisted until the code is verified.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyOTPRequest - the 4-digit code from the OTP screen.
type VerifyOTPRequest struct {
	Code string `json:"code" binding:"required,len=4"`
}

// SigninRequest - direct credential sign-in.
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest - authenticated password change.
type ChangePasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// RedirectResponse tells the fetch client where to navigate next.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

// MessageResponse is the generic success envelope.
type MessageResponse struct {
	Message string `json:"message"`
}
