package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sakay_backend/internal/models"
)

// CreateUser inserts a user directly, hashing the password if it is still
// raw. The raw password stays usable by the caller for signing in.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	t.Helper()

	if user.PasswordHash != "" && user.PasswordHash[:1] != "$" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}
		user.PasswordHash = string(hashed)
	}

	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	if user.Role == "" {
		user.Role = models.UserRoleUser
	}

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("Failed to create user %s: %v", user.Email, result.Error)
		return result.Error
	}
	return nil
}

// CreateAndSigninUser inserts a user and signs them in through the API,
// returning the authenticated session.
func CreateAndSigninUser(t *testing.T, ts *TestServer, username, email, password string, role models.UserRole) (*Session, *models.User) {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: password,
		Role:         role,
		Preferences:  models.DefaultPreferences(),
	}
	err := CreateUser(t, ts.DB, user)
	require.NoError(t, err, "creating the test user must succeed")

	sess := ts.NewSession(t)
	res, bodyStr := sess.SendRequest(t, http.MethodPost, "/api/v1/auth/signin", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, "signin must succeed, got: "+bodyStr)

	var signinResponse struct {
		Redirect string `json:"redirect"`
	}
	err = json.Unmarshal([]byte(bodyStr), &signinResponse)
	require.NoError(t, err)
	assert.NotEmpty(t, signinResponse.Redirect)

	return sess, user
}

// SigninAdmin creates an admin account with a unique email and signs it in.
func SigninAdmin(t *testing.T, ts *TestServer) (*Session, *models.User) {
	t.Helper()
	email := fmt.Sprintf("admin_%d@test.com", time.Now().UnixNano())
	username := fmt.Sprintf("admin_%d", time.Now().UnixNano())
	return CreateAndSigninUser(t, ts, username, email, "password123", models.UserRoleAdmin)
}

// SigninCommuter creates a regular account with a unique email and signs it in.
func SigninCommuter(t *testing.T, ts *TestServer) (*Session, *models.User) {
	t.Helper()
	email := fmt.Sprintf("commuter_%d@test.com", time.Now().UnixNano())
	username := fmt.Sprintf("commuter_%d", time.Now().UnixNano())
	return CreateAndSigninUser(t, ts, username, email, "password123", models.UserRoleUser)
}

// CreateTestRoute inserts a route row directly.
func CreateTestRoute(t *testing.T, db *gorm.DB, name, start, end string) models.Route {
	t.Helper()
	route := models.Route{
		Name:   name,
		Status: models.RouteStatusActive,
		Start:  start,
		End:    end,
		Fare:   15,
		Steps:  datatypes.JSONSlice[string]{"Walk to terminal", "Ride jeepney"},
	}
	if err := db.Create(&route).Error; err != nil {
		t.Fatalf("Failed to create test route: %v", err)
	}
	return route
}

// CreateTestReport inserts a report row directly.
func CreateTestReport(t *testing.T, db *gorm.DB, user string, status models.ReportStatus) models.Report {
	t.Helper()
	report := models.Report{
		IssueType:   "delay",
		Location:    "EDSA Ortigas",
		Description: "Test description",
		User:        user,
		Status:      status,
		Timestamp:   time.Now(),
	}
	if err := db.Create(&report).Error; err != nil {
		t.Fatalf("Failed to create test report: %v", err)
	}
	return report
}
