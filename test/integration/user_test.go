package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sakay_backend/test/helpers"
)

func TestUser_ProfileAndPreferences(t *testing.T) {
	ts := GetTestServer(t)
	sess, user := helpers.SigninCommuter(t, ts)

	t.Run("profile update rebinds the session", func(t *testing.T) {
		newEmail := fmt.Sprintf("renamed_%d@test.com", timeNowNano())
		res, body := sess.SendRequest(t, http.MethodPut, "/api/v1/me/profile", map[string]interface{}{
			"username": user.Username + "_x",
			"email":    newEmail,
		})
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		// The session follows the new identity.
		res, body = sess.SendRequest(t, http.MethodGet, "/api/v1/me", nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		var me struct {
			Email string `json:"email"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &me))
		assert.Equal(t, newEmail, me.Email)
	})

	t.Run("preferences roundtrip", func(t *testing.T) {
		res, body := sess.SendRequest(t, http.MethodPut, "/api/v1/me/preferences", map[string]interface{}{
			"preferences": map[string]bool{
				"notifications": false,
				"push":          true,
				"inApp":         false,
				"autoSave":      true,
				"offline":       true,
				"location":      false,
			},
		})
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		res, body = sess.SendRequest(t, http.MethodGet, "/api/v1/me", nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		var me struct {
			Preferences struct {
				Push    bool `json:"push"`
				Offline bool `json:"offline"`
				InApp   bool `json:"inApp"`
			} `json:"preferences"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &me))
		assert.True(t, me.Preferences.Push)
		assert.True(t, me.Preferences.Offline)
		assert.False(t, me.Preferences.InApp)
	})

	t.Run("profile collision is rejected", func(t *testing.T) {
		_, other := helpers.SigninCommuter(t, ts)
		res, body := sess.SendRequest(t, http.MethodPut, "/api/v1/me/profile", map[string]interface{}{
			"username": other.Username,
			"email":    fmt.Sprintf("clash_%d@test.com", timeNowNano()),
		})
		assert.Equal(t, http.StatusConflict, res.StatusCode, body)
	})
}

func TestUser_AdminManagement(t *testing.T) {
	ts := GetTestServer(t)
	admin, _ := helpers.SigninAdmin(t, ts)

	email := fmt.Sprintf("created_%d@test.com", timeNowNano())
	res, body := admin.SendRequest(t, http.MethodPost, "/api/v1/admin/users", map[string]interface{}{
		"username": fmt.Sprintf("created_%d", timeNowNano()),
		"email":    email,
		"password": "password123",
		"role":     "user",
		"status":   "active",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	require.NotEmpty(t, created.ID)

	t.Run("suspend blocks signin", func(t *testing.T) {
		res, body := admin.SendRequest(t, http.MethodPatch, "/api/v1/admin/users/"+created.ID+"/status",
			map[string]interface{}{"status": "suspended"})
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		sess := ts.NewSession(t)
		res, _ = sess.SendRequest(t, http.MethodPost, "/api/v1/auth/signin", map[string]interface{}{
			"email":    email,
			"password": "password123",
		})
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
	})

	t.Run("list with status filter", func(t *testing.T) {
		res, body := admin.SendRequest(t, http.MethodGet, "/api/v1/admin/users?status=suspended", nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var users []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &users))
		found := false
		for _, u := range users {
			assert.Equal(t, "suspended", u.Status)
			if u.ID == created.ID {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("delete", func(t *testing.T) {
		res, _ := admin.SendRequest(t, http.MethodDelete, "/api/v1/admin/users/"+created.ID, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		res, _ = admin.SendRequest(t, http.MethodDelete, "/api/v1/admin/users/"+created.ID, nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func TestAdmin_DashboardStats(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()
	admin, _ := helpers.SigninAdmin(t, ts)

	helpers.CreateTestRoute(t, ts.DB, "Line A", "A", "B")
	helpers.CreateTestRoute(t, ts.DB, "Line B", "C", "D")
	helpers.CreateTestReport(t, ts.DB, "juan", "pending")
	recordSearch(t, ts.NewSession(t), "A", "B")

	res, body := admin.SendRequest(t, http.MethodGet, "/api/v1/admin/stats", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var stats struct {
		TotalUsers     int64 `json:"totalUsers"`
		ActiveRoutes   int64 `json:"activeRoutes"`
		PendingReports int64 `json:"pendingReports"`
		SearchesToday  int64 `json:"searchesToday"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &stats))
	assert.Equal(t, int64(1), stats.TotalUsers, "only the admin account exists")
	assert.Equal(t, int64(2), stats.ActiveRoutes)
	assert.Equal(t, int64(1), stats.PendingReports)
	assert.Equal(t, int64(1), stats.SearchesToday)
}
