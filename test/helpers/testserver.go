package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sakay_backend/internal/app"
	"sakay_backend/internal/config"
)

// TestServer wraps an httptest server with its database handle.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
}

// NewTestServer connects to the test database (DATABASE_URL), migrates it
// and starts the full router on httptest.
func NewTestServer(t *testing.T) *TestServer {
	config.LoadConfig()
	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database (%s): %v", dsn, err)
	}

	if err := app.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	router := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)

	log.Printf("Test server started against %s", dsn)

	return &TestServer{
		Server: server,
		DB:     db,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// ClearTables truncates everything between test groups. Tests additionally
// use unique emails so groups cannot collide even without truncation.
func (ts *TestServer) ClearTables() {
	err := ts.DB.Exec("TRUNCATE TABLE users, reports, routes, searches RESTART IDENTITY CASCADE").Error
	if err != nil {
		log.Fatalf("Failed to clear tables: %v", err)
	}
}

// Session is one browser: a cookie jar bound to the test server. Auth state
// travels in the session cookie, so each actor in a test gets its own Session.
type Session struct {
	ts     *TestServer
	client *http.Client
}

// NewSession creates a fresh cookie jar, i.e. a brand new anonymous browser.
func (ts *TestServer) NewSession(t *testing.T) *Session {
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	return &Session{
		ts: ts,
		client: &http.Client{
			Jar: jar,
		},
	}
}

// SendRequest performs one JSON request through this session's cookie jar
// and returns the response plus its body.
func (s *Session) SendRequest(t *testing.T, method, path string, body interface{}) (*http.Response, string) {
	url := s.ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request JSON: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Failed to build HTTP request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("Failed to send HTTP request: %v", err)
	}

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBodyBytes)
}
