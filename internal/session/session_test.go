package session

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sakay_backend/internal/models"
)

func TestGenerateCode_Range(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 4)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1000)
		assert.LessOrEqual(t, n, 9999)
	}
}

func TestPendingAction_Expired(t *testing.T) {
	issued := time.Now()
	p := &PendingAction{IssuedAt: issued}

	assert.False(t, p.Expired(issued.Add(OTPValidity)))
	assert.True(t, p.Expired(issued.Add(OTPValidity+time.Second)))
}

func TestState_Transitions(t *testing.T) {
	state := &State{}
	assert.False(t, state.Authenticated())
	assert.False(t, state.IsAdmin())

	state.SetPending(PendingAction{Code: "1234", Email: "a@b.c", Action: ActionSignup})
	require.NotNil(t, state.Pending)

	// A second request replaces the first pending action.
	state.SetPending(PendingAction{Code: "5678", Email: "x@y.z", Action: ActionSignin})
	assert.Equal(t, "5678", state.Pending.Code)
	assert.Equal(t, ActionSignin, state.Pending.Action)

	user := &models.User{
		Username: "juan",
		Email:    "juan@example.com",
		Role:     models.UserRoleUser,
	}
	state.Bind(user)
	assert.True(t, state.Authenticated())
	assert.False(t, state.IsAdmin())
	assert.Nil(t, state.Pending, "binding clears any pending action")

	state.Role = models.UserRoleAdmin
	assert.True(t, state.IsAdmin())

	state.Reset()
	assert.False(t, state.Authenticated())
	assert.Nil(t, state.Pending)
}
