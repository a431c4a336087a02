package handlers_test

import (
	"net/http"
	"testing"

	"network/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func TestRegisterAndLogin(t *testing.T) {
	e, db := newTestServer(t)
	register(t, e, db, "test")

	rec := request(e, http.MethodPost, "/login", "", `{"username":"test","password":"123456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status %d: %s", rec.Code, rec.Body.String())
	}
	if token, _ := decodeJSON(t, rec)["token"].(string); token == "" {
		t.Fatal("login response missing token")
	}

	rec = request(e, http.MethodPost, "/login", "", `{"username":"test","password":"wrong1"}`)
	assertError(t, rec, http.StatusUnauthorized, "Invalid username and/or password.")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	e, db := newTestServer(t)
	register(t, e, db, "test")

	rec := request(e, http.MethodPost, "/register", "", `{"username":"test","password":"123456"}`)
	assertError(t, rec, http.StatusBadRequest, "Username already taken.")
}

func TestInactiveUserCannotLogin(t *testing.T) {
	e, db := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &models.User{Username: "inactive", Password: string(hash)}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	// Deactivate after creation; the is_active column default would
	// override a zero-value Create.
	if err := db.Model(user).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	rec := request(e, http.MethodPost, "/login", "", `{"username":"inactive","password":"123456"}`)
	assertError(t, rec, http.StatusUnauthorized, "Invalid username and/or password.")
}

func TestEndpointsRequireAuth(t *testing.T) {
	e, _ := newTestServer(t)

	for _, target := range []string{"/posts/all", "/posts/1", "/profile"} {
		rec := request(e, http.MethodGet, target, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s without token: status %d", target, rec.Code)
		}
	}

	rec := request(e, http.MethodGet, "/posts/all", "garbage", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status %d", rec.Code)
	}
}

func TestProfileEndpoints(t *testing.T) {
	e, db := newTestServer(t)
	token, user := register(t, e, db, "test")
	tokenB, bob := register(t, e, db, "bob")

	if err := db.Create(&models.Follow{FollowerID: bob.ID, FollowingID: user.ID}).Error; err != nil {
		t.Fatalf("create follow: %v", err)
	}

	rec := request(e, http.MethodGet, "/profile", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("profile status %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeJSON(t, rec)
	if body["username"] != "test" || body["followers_count"] != float64(1) {
		t.Fatalf("unexpected profile: %v", body)
	}

	// Deleting the account leaves posts behind with no owner.
	post := &models.Post{UserID: &bob.ID, Body: "left behind"}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	rec = request(e, http.MethodDelete, "/profile", tokenB, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status %d: %s", rec.Code, rec.Body.String())
	}

	rec = request(e, http.MethodGet, "/posts/all", token, "")
	data := decodeJSON(t, rec)["data"].([]any)
	if data[0].(map[string]any)["user"] != "user removed" {
		t.Fatalf("orphaned post author: %v", data[0])
	}
}

func TestFollowEndpoints(t *testing.T) {
	e, db := newTestServer(t)
	tokenA, alice := register(t, e, db, "alice")
	_, bob := register(t, e, db, "bob")

	path := "/users/" + itoa(bob.ID) + "/follow"
	rec := request(e, http.MethodPost, path, tokenA, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("follow status %d: %s", rec.Code, rec.Body.String())
	}

	// Duplicate follow is rejected.
	rec = request(e, http.MethodPost, path, tokenA, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate follow status %d", rec.Code)
	}

	// Self-follow is not supported.
	rec = request(e, http.MethodPost, "/users/"+itoa(alice.ID)+"/follow", tokenA, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("self-follow status %d", rec.Code)
	}

	rec = request(e, http.MethodDelete, path, tokenA, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unfollow status %d: %s", rec.Code, rec.Body.String())
	}
	rec = request(e, http.MethodDelete, path, tokenA, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unfollow again status %d", rec.Code)
	}

	var count int64
	db.Model(&models.Follow{}).Count(&count)
	if count != 0 {
		t.Fatalf("follow rows remain: %d", count)
	}
}
