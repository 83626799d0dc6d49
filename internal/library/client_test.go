// Copyright (c) 2026 FISBook. All rights reserved.

package library_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisbook/users-api/internal/library"
	"github.com/fisbook/users-api/internal/platform/apperr"
)

/*
TestSiblingClient_Success verifies the body relay and the outbound Bearer
header normalization.
*/
func TestSiblingClient_Success(t *testing.T) {
	var receivedAuth string
	upstream := httptest.NewServer(http.HandlerFunc(
		func(writer http.ResponseWriter, request *http.Request) {
			receivedAuth = request.Header.Get("Authorization")
			writer.Header().Set("Content-Type", "application/json")
			_, _ = writer.Write([]byte(`[{"titulo":"Quijote"}]`))
		}))
	defer upstream.Close()

	client := library.NewSiblingClient("readings", upstream.URL, time.Second)

	payload, err := client.GetJSON(context.Background(), "/api/v1/readings/user/u1", "tok123")
	require.NoError(t, err)

	assert.JSONEq(t, `[{"titulo":"Quijote"}]`, string(payload))
	assert.Equal(t, "Bearer tok123", receivedAuth)
}

/*
TestSiblingClient_StatusMapping verifies the upstream status taxonomy.
*/
func TestSiblingClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		upstreamStatus int
		wantStatus     int
	}{
		{"not_found", http.StatusNotFound, http.StatusNotFound},
		{"unauthorized", http.StatusUnauthorized, http.StatusUnauthorized},
		{"forbidden_collapses_to_401", http.StatusForbidden, http.StatusUnauthorized},
		{"server_error", http.StatusInternalServerError, http.StatusBadGateway},
		{"teapot", http.StatusTeapot, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(
				func(writer http.ResponseWriter, request *http.Request) {
					writer.WriteHeader(tt.upstreamStatus)
				}))
			defer upstream.Close()

			client := library.NewSiblingClient("reviews", upstream.URL, time.Second)
			payload, err := client.GetJSON(context.Background(), "/whatever", "tok")

			assert.Nil(t, payload)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
		})
	}
}

/*
TestSiblingClient_Unreachable verifies connection failures surface as a 502.
*/
func TestSiblingClient_Unreachable(t *testing.T) {
	// Closed immediately so the port refuses connections.
	upstream := httptest.NewServer(http.HandlerFunc(
		func(writer http.ResponseWriter, request *http.Request) {}))
	upstream.Close()

	client := library.NewSiblingClient("readings", upstream.URL, time.Second)
	payload, err := client.GetJSON(context.Background(), "/whatever", "tok")

	assert.Nil(t, payload)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadGateway, ae.HTTPStatus)
}
