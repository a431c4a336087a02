package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"network/internal/models"
	"network/internal/router"
	"network/validators"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

// newTestServer wires the full route table against an in-memory SQLite
// database, so tests exercise routing, auth middleware, and handlers
// together.
func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	e := echo.New()
	e.Validator = validators.NewValidator()
	router.SetupRoutes(e, db)
	return e, db
}

// register creates an account through the API and returns its session
// token and user row
func register(t *testing.T, e *echo.Echo, db *gorm.DB, username string) (string, *models.User) {
	t.Helper()
	rec := request(e, http.MethodPost, "/register", "", fmt.Sprintf(`{"username":%q,"password":"123456"}`, username))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d: %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		t.Fatalf("load registered user: %v", err)
	}
	return resp.Token, &user
}

func request(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

// errorMessage extracts the message from echo's error envelope
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeJSON(t, rec)
	msg, _ := body["message"].(string)
	return msg
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("got status %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	if got := errorMessage(t, rec); got != message {
		t.Fatalf("got message %q, want %q", got, message)
	}
}
