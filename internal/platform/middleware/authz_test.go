// Copyright (c) 2026 FISBook. All rights reserved.

package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisbook/users-api/internal/platform/ctxutil"
	"github.com/fisbook/users-api/internal/platform/middleware"
	"github.com/fisbook/users-api/internal/platform/sec"
)

// fakeVerifier implements middleware.TokenVerifier with a programmable
// response, recording the token string it received.
type fakeVerifier struct {
	received string
	claims   *sec.Claims
	err      error
}

func (v *fakeVerifier) Verify(tokenString string) (*sec.Claims, error) {
	v.received = tokenString
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func decodeErrorBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := map[string]any{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestAuthenticate_AbsentHeader verifies that a request without an
Authorization header is rejected with 403 and never reaches the handler.
*/
func TestAuthenticate_AbsentHeader(t *testing.T) {
	verifier := &fakeVerifier{claims: &sec.Claims{UserID: "u1"}}
	handlerCalled := false

	protected := middleware.Authenticate(verifier)(http.HandlerFunc(
		func(writer http.ResponseWriter, request *http.Request) {
			handlerCalled = true
		}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()
	protected.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.False(t, handlerCalled)

	body := decodeErrorBody(t, recorder)
	assert.Equal(t, "Token not provided", body["message"])
}

/*
TestAuthenticate_HeaderConventions verifies that the raw and the
Bearer-prefixed Authorization forms are accepted equivalently.
*/
func TestAuthenticate_HeaderConventions(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"bearer_prefixed", "Bearer valid.token.value"},
		{"raw_token", "valid.token.value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{claims: &sec.Claims{UserID: "u1", Role: sec.RoleUser}}

			var seenPrincipal *sec.Claims
			protected := middleware.Authenticate(verifier)(http.HandlerFunc(
				func(writer http.ResponseWriter, request *http.Request) {
					seenPrincipal = ctxutil.GetPrincipal(request.Context())
				}))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set("Authorization", tt.header)
			recorder := httptest.NewRecorder()
			protected.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, "valid.token.value", verifier.received)
			require.NotNil(t, seenPrincipal)
			assert.Equal(t, "u1", seenPrincipal.UserID)
		})
	}
}

/*
TestAuthenticate_VerificationFailure verifies that every codec failure
collapses into one generic 403 response.
*/
func TestAuthenticate_VerificationFailure(t *testing.T) {
	for _, sentinel := range []error{
		sec.ErrMalformedToken,
		sec.ErrInvalidSignature,
		sec.ErrExpiredToken,
	} {
		verifier := &fakeVerifier{err: sentinel}
		handlerCalled := false

		protected := middleware.Authenticate(verifier)(http.HandlerFunc(
			func(writer http.ResponseWriter, request *http.Request) {
				handlerCalled = true
			}))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer whatever")
		recorder := httptest.NewRecorder()
		protected.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.False(t, handlerCalled)

		body := decodeErrorBody(t, recorder)
		assert.Equal(t, "Invalid or expired token", body["message"])
	}
}

// requireChain builds Authenticate + RequireRoles around a 200 handler.
func requireChain(verifier middleware.TokenVerifier, allowed ...sec.Role) http.Handler {
	final := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	return middleware.Authenticate(verifier)(middleware.RequireRoles(allowed...)(final))
}

/*
TestRequireRoles_AllowList verifies admission and rejection against a
configured allow-list.
*/
func TestRequireRoles_AllowList(t *testing.T) {
	tests := []struct {
		name        string
		role        sec.Role
		allowed     []sec.Role
		wantStatus  int
		wantMessage string
	}{
		{"admin_admitted", sec.RoleAdmin, []sec.Role{sec.RoleAdmin}, http.StatusOK, ""},
		{"user_rejected_by_admin_list", sec.RoleUser, []sec.Role{sec.RoleAdmin},
			http.StatusForbidden, "You do not have the necessary permissions"},
		{"user_admitted_by_mixed_list", sec.RoleUser, []sec.Role{sec.RoleAdmin, sec.RoleUser},
			http.StatusOK, ""},
		{"missing_role_distinct_reason", sec.Role(""), []sec.Role{sec.RoleAdmin},
			http.StatusForbidden, "No role information found"},
		{"unknown_role_fails_closed", sec.Role("SuperAdmin"), []sec.Role{sec.RoleAdmin},
			http.StatusForbidden, "No role information found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{claims: &sec.Claims{UserID: "u1", Role: tt.role}}
			chain := requireChain(verifier, tt.allowed...)

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set("Authorization", "Bearer token")
			recorder := httptest.NewRecorder()
			chain.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantMessage != "" {
				body := decodeErrorBody(t, recorder)
				assert.Equal(t, tt.wantMessage, body["message"])
			}
		})
	}
}

/*
TestRequireRoles_NoPrincipal verifies the gate rejects when no
authentication ran before it.
*/
func TestRequireRoles_NoPrincipal(t *testing.T) {
	gate := middleware.RequireRoles(sec.RoleAdmin)(http.HandlerFunc(
		func(writer http.ResponseWriter, request *http.Request) {
			t.Fatal("handler must not run without a principal")
		}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()
	gate.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)

	body := decodeErrorBody(t, recorder)
	assert.Equal(t, "Token not provided", body["message"])
}
