// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/todo/internal/platform/router"
	"github.com/taibuivan/todo/internal/platform/sec"
	"github.com/taibuivan/todo/internal/users/auth"
)

type authFixture struct {
	handler   http.Handler
	users     *memoryUsers
	blacklist *memoryBlacklist
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := newMemoryUsers()
	blacklist := newMemoryBlacklist()
	authenticator := newTestAuthenticator(t, blacklist, &fakeClock{now: timeNow()})
	service := auth.NewService(users, authenticator, sec.PasswordHasher{Cost: bcrypt.MinCost}, discardLogger())

	routes := router.New()
	routes.Route("/api/v1", func(api *router.Router) {
		auth.NewHandler(service, authenticator).RegisterRoutes(api)
	})

	return &authFixture{
		handler:   router.NewDispatcher(routes, discardLogger()),
		users:     users,
		blacklist: blacklist,
	}
}

func (f *authFixture) do(t *testing.T, method, path, body, token string) (int, map[string]any) {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	f.handler.ServeHTTP(recorder, request)

	var decoded map[string]any
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder.Code, decoded
}

func (f *authFixture) signup(t *testing.T, username string) string {
	t.Helper()

	status, body := f.do(t, http.MethodPost, "/api/v1/auth/signup",
		`{"username":"`+username+`","email":"`+username+`@example.com","password":"correct-horse"}`, "")
	require.Equal(t, http.StatusCreated, status)
	return body["token"].(string)
}

/*
TestSignup covers the created response and the validation failures.
*/
func TestSignup(t *testing.T) {
	fixture := newAuthFixture(t)

	status, body := fixture.do(t, http.MethodPost, "/api/v1/auth/signup",
		`{"username":"  alice ","email":"alice@example.com","password":"correct-horse"}`, "")
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotEmpty(t, user["id"])
	assert.NotEmpty(t, user["createdAt"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "updatedAt")

	tests := []struct {
		name    string
		body    string
		status  int
		code    string
		message string
	}{
		{"duplicate", `{"username":"alice","email":"other@example.com","password":"correct-horse"}`, http.StatusConflict, "CONFLICT", "Username or email already exists"},
		{"missing_username", `{"email":"b@example.com","password":"correct-horse"}`, http.StatusBadRequest, "VALIDATION_ERROR", "username is required"},
		{"short_username", `{"username":"ab","email":"b@example.com","password":"correct-horse"}`, http.StatusBadRequest, "VALIDATION_ERROR", "username must be at least 3 characters"},
		{"short_password", `{"username":"bobby","email":"b@example.com","password":"short"}`, http.StatusBadRequest, "VALIDATION_ERROR", "password must be at least 8 characters"},
		{"bad_email", `{"username":"bobby","email":"not-an-email","password":"correct-horse"}`, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid email format"},
		{"invalid_json", `{"username":`, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON in request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := fixture.do(t, http.MethodPost, "/api/v1/auth/signup", tt.body, "")
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

/*
TestLogin verifies success and the single failure message.
*/
func TestLogin(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.signup(t, "alice")

	status, body := fixture.do(t, http.MethodPost, "/api/v1/auth/login", `{"username":"alice","password":"correct-horse"}`, "")
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "alice", body["user"].(map[string]any)["username"])

	for _, payload := range []string{
		`{"username":"alice","password":"wrong-horse"}`,
		`{"username":"nobody","password":"correct-horse"}`,
	} {
		status, body = fixture.do(t, http.MethodPost, "/api/v1/auth/login", payload, "")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid username or password", body["error"])
	}

	status, body = fixture.do(t, http.MethodPost, "/api/v1/auth/login", `{"username":"   ","password":"x"}`, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "username is required", body["error"])
}

/*
TestLogout_Idempotent checks that logout always succeeds and revokes the token.
*/
func TestLogout_Idempotent(t *testing.T) {
	fixture := newAuthFixture(t)
	token := fixture.signup(t, "alice")

	status, _ := fixture.do(t, http.MethodGet, "/api/v1/users/profile", "", token)
	require.Equal(t, http.StatusOK, status)

	for i := 0; i < 2; i++ {
		status, body := fixture.do(t, http.MethodPost, "/api/v1/auth/logout", "", token)
		assert.Equal(t, http.StatusNoContent, status)
		assert.Nil(t, body)
	}

	status, body := fixture.do(t, http.MethodGet, "/api/v1/users/profile", "", token)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", body["error"])

	// Only the first logout stored the token; the second saw it as revoked
	assert.Equal(t, 1, fixture.blacklist.addedCalls)
}

/*
TestLogout_WithoutUsableToken returns 204 without touching the blacklist.
*/
func TestLogout_WithoutUsableToken(t *testing.T) {
	fixture := newAuthFixture(t)

	status, _ := fixture.do(t, http.MethodPost, "/api/v1/auth/logout", "", "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = fixture.do(t, http.MethodPost, "/api/v1/auth/logout", "", "garbage")
	assert.Equal(t, http.StatusNoContent, status)

	assert.Zero(t, fixture.blacklist.addedCalls)
}

/*
TestLogout_StoreFailure still reports success when revocation cannot be stored.
*/
func TestLogout_StoreFailure(t *testing.T) {
	fixture := newAuthFixture(t)
	token := fixture.signup(t, "alice")
	fixture.blacklist.addErr = errStoreDown

	status, _ := fixture.do(t, http.MethodPost, "/api/v1/auth/logout", "", token)
	assert.Equal(t, http.StatusNoContent, status)
}

/*
TestProfile covers the authenticated response and both 401 messages.
*/
func TestProfile(t *testing.T) {
	fixture := newAuthFixture(t)
	token := fixture.signup(t, "alice")

	status, body := fixture.do(t, http.MethodGet, "/api/v1/users/profile", "", token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body["username"])
	assert.Contains(t, body, "updatedAt")
	assert.NotContains(t, body, "passwordHash")

	status, body = fixture.do(t, http.MethodGet, "/api/v1/users/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Missing or invalid authorization token", body["error"])

	status, body = fixture.do(t, http.MethodGet, "/api/v1/users/profile", "", "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", body["error"])
}
