package api

import (
	"net/http"
	"testing"
	"time"

	"webmail/backend/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRegister(t *testing.T) {
	a := newTestAPI(t)

	w := doJSON(t, a, http.MethodPost, "/api/register", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotEmpty(t, user["id"])
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegisterValidation(t *testing.T) {
	a := newTestAPI(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing username", gin.H{"email": "a@b.com", "password": "password123"}},
		{"missing email", gin.H{"username": "alice", "password": "password123"}},
		{"bad email", gin.H{"username": "alice", "email": "nope", "password": "password123"}},
		{"short password", gin.H{"username": "alice", "email": "a@b.com", "password": "short"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, a, http.MethodPost, "/api/register", tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	a := newTestAPI(t)
	registerUser(t, a, "alice")

	w := doJSON(t, a, http.MethodPost, "/api/register", gin.H{
		"username": "alice",
		"email":    "other@example.com",
		"password": "password123",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists")

	w = doJSON(t, a, http.MethodPost, "/api/register", gin.H{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "password123",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exists")
}

func TestLogin(t *testing.T) {
	a := newTestAPI(t)
	registerUser(t, a, "alice")

	w := doJSON(t, a, http.MethodPost, "/api/login", gin.H{
		"username": "alice",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "alice", body["user"].(map[string]any)["username"])

	var hasSession bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_id" && c.Value != "" {
			hasSession = true
		}
	}
	assert.True(t, hasSession, "login should set a session cookie")
}

func TestLoginInvalidCredentials(t *testing.T) {
	a := newTestAPI(t)
	registerUser(t, a, "alice")

	// Wrong password and unknown username must be indistinguishable
	for _, body := range []gin.H{
		{"username": "alice", "password": "wrong password"},
		{"username": "nosuchuser", "password": "password123"},
	} {
		w := doJSON(t, a, http.MethodPost, "/api/login", body, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	}
}

func TestUserFetch(t *testing.T) {
	a := newTestAPI(t)
	alice := registerUser(t, a, "alice")

	// Bearer token only
	w := doJSON(t, a, http.MethodGet, "/api/user", nil, &authedUser{Token: alice.Token})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "alice", decodeBody(t, w)["username"])

	// Session cookie only
	w = doJSON(t, a, http.MethodGet, "/api/user", nil, &authedUser{Session: alice.Session})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "alice", decodeBody(t, w)["username"])

	// No credentials
	w = doJSON(t, a, http.MethodGet, "/api/user", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage bearer token
	w = doJSON(t, a, http.MethodGet, "/api/user", nil, &authedUser{Token: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout(t *testing.T) {
	a := newTestAPI(t)
	alice := registerUser(t, a, "alice")

	session := &authedUser{Session: alice.Session}

	w := doJSON(t, a, http.MethodPost, "/api/logout", nil, session)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The session is dead, the cookie no longer authenticates
	w = doJSON(t, a, http.MethodGet, "/api/user", nil, session)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The bearer token is stateless and stays valid until expiry
	w = doJSON(t, a, http.MethodGet, "/api/user", nil, &authedUser{Token: alice.Token})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutWithoutSession(t *testing.T) {
	a := newTestAPI(t)

	// Logout is not auth-gated, an anonymous caller still gets 200
	w := doJSON(t, a, http.MethodPost, "/api/logout", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Same for a stale cookie from an already-terminated session
	alice := registerUser(t, a, "alice")
	session := &authedUser{Session: alice.Session}

	w = doJSON(t, a, http.MethodPost, "/api/logout", nil, session)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, a, http.MethodPost, "/api/logout", nil, session)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRegisterRaceFallsBackToConstraint(t *testing.T) {
	a := newTestAPI(t)
	registerUser(t, a, "alice")

	// The unique index is the last word when the pre-checks race;
	// TranslateError must surface it as gorm.ErrDuplicatedKey so the
	// handler can tell a duplicate from a storage fault
	err := a.DB.Create(&model.User{
		ID:           "someotherid0000x",
		Username:     "alice",
		Email:        "alice2@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRegisterStorageFailureIs500(t *testing.T) {
	a := newTestAPI(t)

	sqlDB, err := a.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := doJSON(t, a, http.MethodPost, "/api/register", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
	}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "already exists")
}

func TestSessionStoreFailureIs500(t *testing.T) {
	a := newTestAPI(t)
	alice := registerUser(t, a, "alice")

	sqlDB, err := a.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// A backend fault while resolving a session is a 500, not a 401
	// pretending the cookie was bad
	w := doJSON(t, a, http.MethodGet, "/api/user", nil, &authedUser{Session: alice.Session})
	assert.Equal(t, http.StatusInternalServerError, w.Code, w.Body.String())
}

func TestHeartbeatAndValidate(t *testing.T) {
	a := newTestAPI(t)
	alice := registerUser(t, a, "alice")

	w := doJSON(t, a, http.MethodHead, "/api/heartbeat", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, a, http.MethodHead, "/api/validate", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, a, http.MethodHead, "/api/validate", nil, alice)
	assert.Equal(t, http.StatusOK, w.Code)
}
