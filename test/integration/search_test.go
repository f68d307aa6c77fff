package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sakay_backend/internal/models"
	"sakay_backend/test/helpers"
)

func recordSearch(t *testing.T, sess *helpers.Session, from, to string) {
	t.Helper()
	res, body := sess.SendRequest(t, http.MethodPost, "/api/v1/searches", map[string]interface{}{
		"from": from,
		"to":   to,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
}

func TestSearch_RecordIncrementsTrips(t *testing.T) {
	ts := GetTestServer(t)
	sess, user := helpers.SigninCommuter(t, ts)

	recordSearch(t, sess, "Cubao", "Makati")
	recordSearch(t, sess, "Cubao", "Pasay")

	var fresh models.User
	require.NoError(t, ts.DB.First(&fresh, "id = ?", user.ID).Error)
	assert.Equal(t, int64(2), fresh.TripsTaken)
}

func TestSearch_AnonymousCountsWithoutTrips(t *testing.T) {
	ts := GetTestServer(t)
	recordSearch(t, ts.NewSession(t), "Monumento", "Alabang")

	var count int64
	require.NoError(t, ts.DB.Model(&models.Search{}).
		Where("from_location = ? AND to_location = ?", "Monumento", "Alabang").
		Count(&count).Error)
	assert.GreaterOrEqual(t, count, int64(1))
}

func TestSearch_StatsCaseInsensitiveAggregation(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()
	admin, _ := helpers.SigninAdmin(t, ts)

	sess := ts.NewSession(t)
	// Three spellings of the same pair; first recorded spelling wins.
	recordSearch(t, sess, "Cubao", "Makati")
	recordSearch(t, sess, "cubao", "makati")
	recordSearch(t, sess, "CUBAO", "MAKATI")
	recordSearch(t, sess, "Pasig", "Taguig")

	res, body := admin.SendRequest(t, http.MethodGet, "/api/v1/admin/searches/stats", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var entries []struct {
		ID struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"_id"`
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &entries))
	require.Len(t, entries, 2)

	// Sorted by count descending.
	assert.Equal(t, "Cubao", entries[0].ID.From)
	assert.Equal(t, "Makati", entries[0].ID.To)
	assert.Equal(t, int64(3), entries[0].Count)
	assert.Equal(t, int64(1), entries[1].Count)
}

func TestSearch_StatsTopTen(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()
	admin, _ := helpers.SigninAdmin(t, ts)

	sess := ts.NewSession(t)
	for i := 0; i < 12; i++ {
		recordSearch(t, sess, fmt.Sprintf("Origin%d", i), fmt.Sprintf("Dest%d", i))
	}

	res, body := admin.SendRequest(t, http.MethodGet, "/api/v1/admin/searches/stats", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var entries []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &entries))
	assert.Len(t, entries, 10)
}

func TestSearch_StatsRequiresAdmin(t *testing.T) {
	ts := GetTestServer(t)
	sess, _ := helpers.SigninCommuter(t, ts)
	res, _ := sess.SendRequest(t, http.MethodGet, "/api/v1/admin/searches/stats", nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
