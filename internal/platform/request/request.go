// Copyright (c) 2026 FISBook. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fisbook/users-api/internal/platform/apperr"
	"github.com/fisbook/users-api/internal/platform/ctxutil"
	"github.com/fisbook/users-api/internal/platform/sec"
	"github.com/fisbook/users-api/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Principal extracts the authenticated token claims from the request context.

Returns nil if the request is not authenticated.
*/
func Principal(request *http.Request) *sec.Claims {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredPrincipal ensures the request is authenticated and returns the claims.

Returns:
  - *sec.Claims: The authenticated token claims
  - error: apperr.Forbidden if the request carries no verified credential
*/
func RequiredPrincipal(request *http.Request) (*sec.Claims, error) {

	// Get token claims
	claims := ctxutil.GetPrincipal(request.Context())

	// The historical contract uses 403 for requests without a credential
	if claims == nil {
		return nil, apperr.Forbidden("Token not provided")
	}

	return claims, nil
}

/*
BearerToken returns the raw credential from the Authorization header.

Both historical header conventions are supported: a bare token value and the
standard "Bearer <token>" form. Returns an empty string when the header is absent.
*/
func BearerToken(request *http.Request) string {
	return sec.StripBearerPrefix(request.Header.Get("Authorization"))
}
