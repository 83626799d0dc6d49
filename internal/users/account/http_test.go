// Copyright (c) 2026 FISBook. All rights reserved.

package account_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisbook/users-api/internal/platform/sec"
	"github.com/fisbook/users-api/internal/users/account"
)

// roleVerifier returns a principal with the role encoded in the token
// string itself, so each request picks its own role.
type roleVerifier struct{}

func (roleVerifier) Verify(tokenString string) (*sec.Claims, error) {
	switch tokenString {
	case "admin-token":
		return &sec.Claims{UserID: "admin-1", Role: sec.RoleAdmin}, nil
	case "user-token":
		return &sec.Claims{UserID: "user-1", Role: sec.RoleUser}, nil
	default:
		return nil, sec.ErrInvalidSignature
	}
}

func newAccountRouter(repo *fakeAccountRepository) *chi.Mux {
	handler := account.NewHandler(account.NewService(repo), roleVerifier{})
	router := chi.NewRouter()
	handler.Register(router)
	return router
}

func doRequest(router http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, body)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestListEndpoint_RequiresToken verifies the listing rejects anonymous
callers and admits both roles.
*/
func TestListEndpoint_RequiresToken(t *testing.T) {
	repo := newFakeAccountRepository()
	seedAccount(repo, "juan.perez", "juan@example.com")
	router := newAccountRouter(repo)

	// Anonymous
	recorder := doRequest(router, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	// User role
	recorder = doRequest(router, http.MethodGet, "/", "user-token", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	users := []map[string]any{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "juan.perez", users[0]["username"])

	// Admin role
	recorder = doRequest(router, http.MethodGet, "/", "admin-token", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestGetEndpoint verifies fetch-by-ID including the malformed-ID and
missing-account paths.
*/
func TestGetEndpoint(t *testing.T) {
	repo := newFakeAccountRepository()
	seeded := seedAccount(repo, "juan.perez", "juan@example.com")
	router := newAccountRouter(repo)

	recorder := doRequest(router, http.MethodGet, "/"+seeded.ID, "user-token", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	fetched := map[string]any{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &fetched))
	assert.Equal(t, seeded.ID, fetched["id"])

	recorder = doRequest(router, http.MethodGet, "/not-a-uuid", "user-token", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doRequest(router, http.MethodGet,
		"/0190e3a4-1111-7abc-8000-0123456789ab", "user-token", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestUpdateEndpoint verifies the partial update wire format.
*/
func TestUpdateEndpoint(t *testing.T) {
	repo := newFakeAccountRepository()
	seeded := seedAccount(repo, "juan.perez", "juan@example.com")
	router := newAccountRouter(repo)

	recorder := doRequest(router, http.MethodPut, "/"+seeded.ID, "user-token", map[string]any{
		"nombre": "Juan Carlos",
		"plan":   "Plan2",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	updated := map[string]any{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
	assert.Equal(t, "Juan Carlos", updated["nombre"])
	assert.Equal(t, "Plan2", updated["plan"])
	assert.Equal(t, "Pérez", updated["apellidos"])

	// Unknown enum values never reach storage.
	recorder = doRequest(router, http.MethodPut, "/"+seeded.ID, "user-token", map[string]any{
		"rol": "SuperAdmin",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestDeleteEndpoint_AdminOnly verifies the role gate on account deletion.
*/
func TestDeleteEndpoint_AdminOnly(t *testing.T) {
	repo := newFakeAccountRepository()
	seeded := seedAccount(repo, "juan.perez", "juan@example.com")
	router := newAccountRouter(repo)

	// User role is rejected by the Admin allow-list.
	recorder := doRequest(router, http.MethodDelete, "/"+seeded.ID, "user-token", nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	// Admin succeeds with the confirmation message.
	recorder = doRequest(router, http.MethodDelete, "/"+seeded.ID, "admin-token", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "User deleted successfully", body["message"])

	// Second delete finds nothing.
	recorder = doRequest(router, http.MethodDelete, "/"+seeded.ID, "admin-token", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestSetDownloadsEndpoint verifies the counter patch by username.
*/
func TestSetDownloadsEndpoint(t *testing.T) {
	repo := newFakeAccountRepository()
	seedAccount(repo, "juan.perez", "juan@example.com")
	router := newAccountRouter(repo)

	recorder := doRequest(router, http.MethodPatch, "/juan.perez/downloads", "user-token",
		map[string]any{"numDescargas": 5})
	require.Equal(t, http.StatusOK, recorder.Code)

	updated := map[string]any{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
	assert.Equal(t, float64(5), updated["numDescargas"])

	// Missing counter
	recorder = doRequest(router, http.MethodPatch, "/juan.perez/downloads", "user-token",
		map[string]any{})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// Negative counter
	recorder = doRequest(router, http.MethodPatch, "/juan.perez/downloads", "user-token",
		map[string]any{"numDescargas": -3})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// Unknown username
	recorder = doRequest(router, http.MethodPatch, "/ghost/downloads", "user-token",
		map[string]any{"numDescargas": 1})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
