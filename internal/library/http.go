// Copyright (c) 2026 FISBook. All rights reserved.

package library

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fisbook/users-api/internal/platform/middleware"
	requestutil "github.com/fisbook/users-api/internal/platform/request"
	"github.com/fisbook/users-api/internal/platform/respond"
	"github.com/fisbook/users-api/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the proxy endpoints for sibling library data.
type Handler struct {
	libraryService *Service
	tokenVerifier  middleware.TokenVerifier
}

// NewHandler constructs a new library [Handler].
func NewHandler(service *Service, verifier middleware.TokenVerifier) *Handler {
	return &Handler{
		libraryService: service,
		tokenVerifier:  verifier,
	}
}

// Register attaches the proxy routes to the users subrouter. Both routes
// require a verified token; the same token is then forwarded upstream.
//
// # Endpoints
//   - GET /{id}/readings               : Reading lists of a user.
//   - GET /reviews/user/{userId}/book  : Book reviews authored by a user.
func (handler *Handler) Register(router chi.Router) {
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticate(handler.tokenVerifier))

		protected.Get("/{id}/readings", handler.getReadings)
		protected.Get("/reviews/user/{userId}/book", handler.getBookReviews)
	})
}

// readingsResponse wraps the relayed payload in the historical envelope.
type readingsResponse struct {
	Readings json.RawMessage `json:"readings"`
}

// reviewsResponse wraps the relayed payload in the historical envelope.
type reviewsResponse struct {
	Reviews json.RawMessage `json:"reviews"`
}

/*
GetReadings relays the user's reading lists from the readings service.

GET /api/v1/auth/users/{id}/readings

Response:
  - 200: {readings}: Raw payload from the readings service
  - 401: UNAUTHORIZED: Upstream rejected the forwarded token
  - 403: FORBIDDEN: Missing or invalid credential
  - 404: NOT_FOUND: User has no readings
  - 502: UPSTREAM_FAILURE: Readings service unreachable
*/
func (handler *Handler) getReadings(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", userID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	payload, err := handler.libraryService.GetReadings(
		request.Context(), userID, requestutil.BearerToken(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, readingsResponse{Readings: payload})
}

/*
GetBookReviews relays the user's book reviews from the reviews service.

GET /api/v1/auth/users/reviews/user/{userId}/book

Response:
  - 200: {reviews}: Raw payload from the reviews service
  - 401: UNAUTHORIZED: Upstream rejected the forwarded token
  - 403: FORBIDDEN: Missing or invalid credential
  - 404: NOT_FOUND: User has no reviews
  - 502: UPSTREAM_FAILURE: Reviews service unreachable
*/
func (handler *Handler) getBookReviews(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userId")

	validator := &validate.Validator{}
	if err := validator.UUID("userId", userID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	payload, err := handler.libraryService.GetBookReviews(
		request.Context(), userID, requestutil.BearerToken(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reviewsResponse{Reviews: payload})
}
