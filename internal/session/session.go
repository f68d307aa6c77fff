// Package session models the browser session's auth state as an explicit
// value instead of loose key/value pairs: a session is Anonymous, has a
// PendingAction awaiting OTP confirmation, or is Authenticated. Services
// mutate a State value and never touch the HTTP layer, so the whole flow is
// unit-testable without a server.
package session

import (
	"crypto/rand"
	"encoding/gob"
	"fmt"
	"math/big"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"sakay_backend/internal/models"
)

// OTPValidity is how long a pending code stays usable. Expiry is evaluated
// lazily at verify/resend time; no background sweep.
const OTPValidity = 10 * time.Minute

// ActionKind is what the pending OTP confirms.
type ActionKind string

const (
	ActionSignup ActionKind = "signup"
	ActionSignin ActionKind = "signin"
)

// PendingAction is the ephemeral record behind the OTP screen. Password is
// plaintext until verification hashes it; it lives only in the server-side
// session store and must never be logged.
type PendingAction struct {
	Code     string
	Email    string
	Username string
	Password string
	Action   ActionKind
	IssuedAt time.Time
}

// Expired reports whether the code is past its validity window.
func (p *PendingAction) Expired(now time.Time) bool {
	return now.Sub(p.IssuedAt) > OTPValidity
}

// State is the per-session auth state. Zero value is Anonymous.
// At most one PendingAction exists per session; any new signup/signin
// request overwrites it.
type State struct {
	UserEmail string
	Username  string
	Role      models.UserRole
	Pending   *PendingAction
}

// Authenticated reports whether the session is bound to a user.
func (s *State) Authenticated() bool {
	return s.UserEmail != ""
}

// IsAdmin reports whether the bound user carries the admin role. This is the
// authorization check; the email-substring redirect hint is never used here.
func (s *State) IsAdmin() bool {
	return s.Authenticated() && s.Role == models.UserRoleAdmin
}

// SetPending replaces any in-flight action with a new one.
func (s *State) SetPending(p PendingAction) {
	s.Pending = &p
}

// ClearPending drops the in-flight action (after success, expiry, or replay).
func (s *State) ClearPending() {
	s.Pending = nil
}

// Bind marks the session authenticated as the given user.
func (s *State) Bind(user *models.User) {
	s.UserEmail = user.Email
	s.Username = user.Username
	s.Role = user.Role
	s.Pending = nil
}

// Reset returns the session to Anonymous.
func (s *State) Reset() {
	*s = State{}
}

// GenerateCode draws a uniform 4-digit code in [1000, 9999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}

const stateKey = "auth_state"

func init() {
	gob.Register(State{})
	gob.Register(&PendingAction{})
}

// Load pulls the auth state out of the request's session. Missing or
// malformed values degrade to Anonymous.
func Load(c *gin.Context) *State {
	sess := sessions.Default(c)
	v := sess.Get(stateKey)
	if v == nil {
		return &State{}
	}
	state, ok := v.(State)
	if !ok {
		return &State{}
	}
	return &state
}

// Save writes the auth state back to the session store. Handlers call this
// only after the service call succeeded, so a failed operation never
// persists a half-mutated state.
func Save(c *gin.Context, state *State) error {
	sess := sessions.Default(c)
	sess.Set(stateKey, *state)
	return sess.Save()
}

// Destroy wipes the whole session (signout).
func Destroy(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{MaxAge: -1, Path: "/"})
	return sess.Save()
}
