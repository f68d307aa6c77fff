package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sakay_backend/internal/auth"
	"sakay_backend/internal/email"
	"sakay_backend/internal/models"
	"sakay_backend/internal/services/dto"
	"sakay_backend/internal/session"
	"sakay_backend/pkg/apperrors"
)

func newAuthFixture() (*AuthServiceImpl, *fakeUserRepo, *email.MockProvider) {
	repo := newFakeUserRepo()
	provider := &email.MockProvider{}
	svc := NewAuthService(repo, provider).(*AuthServiceImpl)
	return svc, repo, provider
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, emailAddr, password string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{
		Username:     username,
		Email:        emailAddr,
		PasswordHash: hash,
		Status:       models.UserStatusActive,
		Role:         role,
		Preferences:  models.DefaultPreferences(),
	}
	require.NoError(t, repo.Create(nil, user))
	return user
}

func signupReq() *dto.SignupRequest {
	return &dto.SignupRequest{
		Username: "juan",
		Email:    "juan@example.com",
		Password: "secret123",
	}
}

func TestSignup_SetsPendingAndSendsCode(t *testing.T) {
	svc, _, provider := newAuthFixture()
	state := &session.State{}

	redirect, err := svc.Signup(nil, state, signupReq())
	require.NoError(t, err)
	assert.Equal(t, RedirectVerifyOTP, redirect)

	require.NotNil(t, state.Pending)
	assert.Equal(t, session.ActionSignup, state.Pending.Action)
	assert.Equal(t, "juan@example.com", state.Pending.Email)
	assert.Equal(t, state.Pending.Code, provider.LastCode)
	assert.Equal(t, "juan@example.com", provider.LastTo)
	assert.False(t, state.Authenticated())
}

func TestSignup_DuplicateAccount(t *testing.T) {
	svc, repo, _ := newAuthFixture()
	seedUser(t, repo, "juan", "juan@example.com", "pw123456", models.UserRoleUser)

	state := &session.State{}
	_, err := svc.Signup(nil, state, signupReq())
	assert.ErrorIs(t, err, apperrors.ErrAccountExists)
	assert.Nil(t, state.Pending)
}

func TestSignup_DeliveryFailureKeepsPending(t *testing.T) {
	svc, _, provider := newAuthFixture()
	provider.FailNext = true

	state := &session.State{}
	_, err := svc.Signup(nil, state, signupReq())
	assert.ErrorIs(t, err, apperrors.ErrEmailDeliveryFailed)
	// Pending stays so the OTP screen can offer resend.
	require.NotNil(t, state.Pending)
}

func TestVerifyOTP_SignupHappyPath(t *testing.T) {
	svc, repo, provider := newAuthFixture()
	state := &session.State{}

	_, err := svc.Signup(nil, state, signupReq())
	require.NoError(t, err)

	redirect, err := svc.VerifyOTP(nil, state, provider.LastCode)
	require.NoError(t, err)
	assert.Equal(t, RedirectSignin, redirect)
	assert.Nil(t, state.Pending)
	// Account exists but the session is not authenticated yet.
	assert.False(t, state.Authenticated())

	user, err := repo.FindByEmail(nil, "juan@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash, "password must be stored hashed")
	assert.True(t, auth.CheckPasswordHash("secret123", user.PasswordHash))
}

func TestVerifyOTP_NoPendingAction(t *testing.T) {
	svc, _, _ := newAuthFixture()
	state := &session.State{}

	_, err := svc.VerifyOTP(nil, state, "1234")
	assert.ErrorIs(t, err, apperrors.ErrNoPendingAction)
}

func TestVerifyOTP_MismatchKeepsPending(t *testing.T) {
	svc, _, provider := newAuthFixture()
	state := &session.State{}

	_, err := svc.Signup(nil, state, signupReq())
	require.NoError(t, err)

	wrong := "0000"
	if provider.LastCode == wrong {
		wrong = "0001"
	}
	_, err = svc.VerifyOTP(nil, state, wrong)
	assert.ErrorIs(t, err, apperrors.ErrOTPMismatch)
	require.NotNil(t, state.Pending, "mismatch must not consume the pending action")

	// The correct code still works afterwards.
	_, err = svc.VerifyOTP(nil, state, provider.LastCode)
	assert.NoError(t, err)
}

func TestVerifyOTP_ExpiredClearsPending(t *testing.T) {
	svc, _, provider := newAuthFixture()
	state := &session.State{}

	_, err := svc.Signup(nil, state, signupReq())
	require.NoError(t, err)

	svc.now = func() time.Time {
		return state.Pending.IssuedAt.Add(session.OTPValidity + time.Minute)
	}

	_, err = svc.VerifyOTP(nil, state, provider.LastCode)
	assert.ErrorIs(t, err, apperrors.ErrOTPExpired)
	assert.Nil(t, state.Pending)

	// Even the correct code is dead now.
	_, err = svc.VerifyOTP(nil, state, provider.LastCode)
	assert.ErrorIs(t, err, apperrors.ErrNoPendingAction)
}

func TestVerifyOTP_ReplayAfterSuccess(t *testing.T) {
	svc, _, provider := newAuthFixture()
	state := &session.State{}

	_, err := svc.Signup(nil, state, signupReq())
	require.NoError(t, err)

	code := provider.LastCode
	_, err = svc.VerifyOTP(nil, state, code)
	require.NoError(t, err)

	_, err = svc.VerifyOTP(nil, state, code)
	assert.ErrorIs(t, err, apperrors.ErrNoPendingAction)
}

func TestVerifyOTP_ConflictDetectedAtVerifyTime(t *testing.T) {
	svc, repo, provider := newAuthFixture()
	state := &session.State{}

	_, err := svc.Signup(nil, state, signupReq())
	require.NoError(t, err)

	// Another session claims the same email while the code is in flight.
	seedUser(t, repo, "other", "juan@example.com", "pw123456", models.UserRoleUser)

	_, err = svc.VerifyOTP(nil, state, provider.LastCode)
	assert.ErrorIs(t, err, apperrors.ErrAccountExists)
	assert.Nil(t, state.Pending)
}

func TestResendOTP_RotatesCode(t *testing.T) {
	svc, _, provider := newAuthFixture()
	state := &session.State{}

	_, err := svc.Signup(nil, state, signupReq())
	require.NoError(t, err)
	first := state.Pending.Code

	require.NoError(t, svc.ResendOTP(state))
	assert.Equal(t, state.Pending.Code, provider.LastCode)
	assert.Equal(t, session.ActionSignup, state.Pending.Action)

	// Rotation may rarely draw the same 4-digit code; identity never changes.
	assert.Equal(t, "juan@example.com", state.Pending.Email)
	_ = first
}

func TestResendOTP_NoPending(t *testing.T) {
	svc, _, _ := newAuthFixture()
	assert.ErrorIs(t, svc.ResendOTP(&session.State{}), apperrors.ErrNoPendingAction)
}

func TestSignin_HappyPath(t *testing.T) {
	svc, repo, _ := newAuthFixture()
	seedUser(t, repo, "maria", "maria@example.com", "pw123456", models.UserRoleUser)

	state := &session.State{}
	redirect, err := svc.Signin(nil, state, &dto.SigninRequest{Email: "maria@example.com", Password: "pw123456"})
	require.NoError(t, err)
	assert.Equal(t, RedirectDestination, redirect)
	assert.True(t, state.Authenticated())
	assert.Equal(t, "maria@example.com", state.UserEmail)
}

func TestSignin_AdminRedirect(t *testing.T) {
	svc, repo, _ := newAuthFixture()
	seedUser(t, repo, "boss", "boss@example.com", "pw123456", models.UserRoleAdmin)

	state := &session.State{}
	redirect, err := svc.Signin(nil, state, &dto.SigninRequest{Email: "boss@example.com", Password: "pw123456"})
	require.NoError(t, err)
	assert.Equal(t, RedirectAdmin, redirect)
	assert.True(t, state.IsAdmin())
}

func TestSignin_AdminEmailHintWithoutRole(t *testing.T) {
	svc, repo, _ := newAuthFixture()
	seedUser(t, repo, "fake", "admin.wannabe@example.com", "pw123456", models.UserRoleUser)

	state := &session.State{}
	redirect, err := svc.Signin(nil, state, &dto.SigninRequest{Email: "admin.wannabe@example.com", Password: "pw123456"})
	require.NoError(t, err)
	// Redirect hint only; the session role stays non-admin.
	assert.Equal(t, RedirectAdmin, redirect)
	assert.False(t, state.IsAdmin())
}

func TestSignin_WrongCredentialsIndistinguishable(t *testing.T) {
	svc, repo, _ := newAuthFixture()
	seedUser(t, repo, "maria", "maria@example.com", "pw123456", models.UserRoleUser)

	state := &session.State{}
	_, errUnknown := svc.Signin(nil, state, &dto.SigninRequest{Email: "ghost@example.com", Password: "pw123456"})
	_, errWrongPw := svc.Signin(nil, state, &dto.SigninRequest{Email: "maria@example.com", Password: "nope1234"})

	assert.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, apperrors.ErrInvalidCredentials)
	assert.False(t, state.Authenticated())
}

func TestSignin_SuspendedUser(t *testing.T) {
	svc, repo, _ := newAuthFixture()
	user := seedUser(t, repo, "maria", "maria@example.com", "pw123456", models.UserRoleUser)
	user.Status = models.UserStatusSuspended

	state := &session.State{}
	_, err := svc.Signin(nil, state, &dto.SigninRequest{Email: "maria@example.com", Password: "pw123456"})
	assert.ErrorIs(t, err, apperrors.ErrUserSuspended)
	assert.False(t, state.Authenticated())
}

func TestChangePassword(t *testing.T) {
	svc, repo, _ := newAuthFixture()
	user := seedUser(t, repo, "maria", "maria@example.com", "pw123456", models.UserRoleUser)

	state := &session.State{}
	state.Bind(user)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(nil, state, &dto.ChangePasswordRequest{
			Email:           "maria@example.com",
			CurrentPassword: "wrong999",
			NewPassword:     "fresh123",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("weak new password", func(t *testing.T) {
		err := svc.ChangePassword(nil, state, &dto.ChangePasswordRequest{
			Email:           "maria@example.com",
			CurrentPassword: "pw123456",
			NewPassword:     "short",
		})
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
	})

	t.Run("other account forbidden", func(t *testing.T) {
		err := svc.ChangePassword(nil, state, &dto.ChangePasswordRequest{
			Email:           "someone@else.com",
			CurrentPassword: "pw123456",
			NewPassword:     "fresh123",
		})
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, 403, appErr.HTTPCode)
	})

	t.Run("success", func(t *testing.T) {
		err := svc.ChangePassword(nil, state, &dto.ChangePasswordRequest{
			Email:           "maria@example.com",
			CurrentPassword: "pw123456",
			NewPassword:     "fresh123",
		})
		require.NoError(t, err)
		assert.True(t, auth.CheckPasswordHash("fresh123", user.PasswordHash))
	})
}

func TestChangePassword_Unauthenticated(t *testing.T) {
	svc, _, _ := newAuthFixture()
	err := svc.ChangePassword(nil, &session.State{}, &dto.ChangePasswordRequest{
		Email:           "maria@example.com",
		CurrentPassword: "pw123456",
		NewPassword:     "fresh123",
	})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 401, appErr.HTTPCode)
}
