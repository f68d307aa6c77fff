package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"sakay_backend/internal/auth"
	"sakay_backend/internal/email"
	"sakay_backend/internal/models"
	"sakay_backend/internal/repositories"
	"sakay_backend/internal/services/dto"
	"sakay_backend/internal/session"
	"sakay_backend/pkg/apperrors"
)

// Post-auth navigation targets. The OTP screen lives at /verify-otp.
const (
	RedirectSignin      = "/signin"
	RedirectVerifyOTP   = "/verify-otp"
	RedirectAdmin       = "/admin"
	RedirectDestination = "/destination"
)

// AuthService drives the session auth state machine:
// Anonymous -> OtpPending(signup) -> Authenticated-after-signin for new
// accounts, and Anonymous -> Authenticated directly for credential sign-in.
// Every method takes the session state by pointer and mutates it; the caller
// persists the state only when the method returns nil.
type AuthService interface {
	Signup(db *gorm.DB, state *session.State, req *dto.SignupRequest) (string, error)
	VerifyOTP(db *gorm.DB, state *session.State, code string) (string, error)
	ResendOTP(state *session.State) error
	Signin(db *gorm.DB, state *session.State, req *dto.SigninRequest) (string, error)
	ChangePassword(db *gorm.DB, state *session.State, req *dto.ChangePasswordRequest) error
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	dispatch email.Provider
	now      func() time.Time
}

func NewAuthService(userRepo repositories.UserRepository, dispatch email.Provider) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		dispatch: dispatch,
		now:      time.Now,
	}
}

// Signup checks uniqueness, parks a PendingAction in the session and emails
// the code. No user row exists until VerifyOTP succeeds, so the store never
// holds unverified accounts.
func (s *AuthServiceImpl) Signup(db *gorm.DB, state *session.State, req *dto.SignupRequest) (string, error) {
	exists, err := s.userRepo.ExistsByEmailOrUsername(db, req.Email, req.Username)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	if exists {
		return "", apperrors.ErrAccountExists
	}

	code, err := session.GenerateCode()
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	// Overwrites any previous pending action for this session.
	state.SetPending(session.PendingAction{
		Code:     code,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Action:   session.ActionSignup,
		IssuedAt: s.now(),
	})

	// Delivery failure surfaces as a 500 but the pending action stays in
	// place, so the OTP screen can offer resend instead of restarting the
	// whole form.
	if err := s.dispatch.SendOTP(req.Email, code, email.PurposeSignup); err != nil {
		return "", apperrors.ErrEmailDeliveryFailed
	}

	return RedirectVerifyOTP, nil
}

// VerifyOTP consumes the pending action. A second call with the same correct
// code fails with ErrNoPendingAction: the state was cleared on success, which
// is what makes replay impossible.
func (s *AuthServiceImpl) VerifyOTP(db *gorm.DB, state *session.State, code string) (string, error) {
	pending := state.Pending
	if pending == nil {
		return "", apperrors.ErrNoPendingAction
	}

	if pending.Expired(s.now()) {
		state.ClearPending()
		return "", apperrors.ErrOTPExpired
	}

	if code != pending.Code {
		// Pending action stays intact; the user may retry until expiry.
		return "", apperrors.ErrOTPMismatch
	}

	switch pending.Action {
	case session.ActionSignup:
		return s.completeSignup(db, state, pending)
	case session.ActionSignin:
		return s.completeSignin(db, state, pending)
	default:
		state.ClearPending()
		return "", apperrors.ErrNoPendingAction
	}
}

func (s *AuthServiceImpl) completeSignup(db *gorm.DB, state *session.State, pending *session.PendingAction) (string, error) {
	// Re-check uniqueness: a concurrent session may have verified the same
	// email or username since the code was issued.
	exists, err := s.userRepo.ExistsByEmailOrUsername(db, pending.Email, pending.Username)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	if exists {
		state.ClearPending()
		return "", apperrors.ErrAccountExists
	}

	hash, err := auth.HashPassword(pending.Password)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	user := &models.User{
		Username:     pending.Username,
		Email:        pending.Email,
		PasswordHash: hash,
		Status:       models.UserStatusActive,
		Role:         models.UserRoleUser,
		Preferences:  models.DefaultPreferences(),
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			// Lost the race between the re-check and the insert.
			state.ClearPending()
			return "", apperrors.ErrAccountExists
		}
		return "", apperrors.InternalError(err)
	}

	state.ClearPending()
	return RedirectSignin, nil
}

func (s *AuthServiceImpl) completeSignin(db *gorm.DB, state *session.State, pending *session.PendingAction) (string, error) {
	user, err := s.userRepo.FindByEmail(db, pending.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			state.ClearPending()
			return "", apperrors.ErrNotFound(err)
		}
		return "", apperrors.InternalError(err)
	}

	state.Bind(user)
	return redirectFor(user), nil
}

// ResendOTP rotates the code and timestamp for the in-flight action; the
// identity and action kind never change. On dispatch failure the rotated
// state is not persisted by the handler, so the previous code remains valid.
func (s *AuthServiceImpl) ResendOTP(state *session.State) error {
	pending := state.Pending
	if pending == nil {
		return apperrors.ErrNoPendingAction
	}

	if pending.Expired(s.now()) {
		state.ClearPending()
		return apperrors.ErrOTPExpired
	}

	code, err := session.GenerateCode()
	if err != nil {
		return apperrors.InternalError(err)
	}
	pending.Code = code
	pending.IssuedAt = s.now()

	if err := s.dispatch.SendOTP(pending.Email, code, email.PurposeResend); err != nil {
		return apperrors.ErrEmailDeliveryFailed
	}
	return nil
}

// Signin is the direct, OTP-less variant. Unknown email and wrong password
// return the same error on purpose.
func (s *AuthServiceImpl) Signin(db *gorm.DB, state *session.State, req *dto.SigninRequest) (string, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return "", apperrors.ErrInvalidCredentials
	}

	if user.Status == models.UserStatusSuspended {
		return "", apperrors.ErrUserSuspended
	}

	state.Bind(user)
	return redirectFor(user), nil
}

// redirectFor picks the landing page. The email local-part sniff is a UX
// hint only; admin endpoints check User.role server-side regardless of where
// the browser lands.
func redirectFor(user *models.User) string {
	if user.Role == models.UserRoleAdmin {
		return RedirectAdmin
	}
	local := user.Email
	if i := strings.Index(local, "@"); i >= 0 {
		local = local[:i]
	}
	if strings.Contains(strings.ToLower(local), "admin") {
		return RedirectAdmin
	}
	return RedirectDestination
}

// ChangePassword lets the session's own user rotate their password. Other
// active sessions for the account stay valid (known limitation).
func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, state *session.State, req *dto.ChangePasswordRequest) error {
	if !state.Authenticated() {
		return apperrors.NewUnauthorizedError("Sign in to change your password")
	}

	if req.Email != state.UserEmail {
		return apperrors.NewForbiddenError("Cannot change another account's password")
	}

	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(db, user.ID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
