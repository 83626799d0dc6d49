// Copyright (c) 2026 FISBook. All rights reserved.

// Package middleware provides the HTTP middleware chain for the users API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthZ/AuthN, Rate Limiting, and CORS.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/fisbook/users-api/internal/platform/apperr"
	"github.com/fisbook/users-api/internal/platform/constants"
	"github.com/fisbook/users-api/internal/platform/ctxutil"
	"github.com/fisbook/users-api/internal/platform/respond"
	"github.com/fisbook/users-api/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.Claims, error)
}

// Authenticate extracts and verifies the bearer token from the Authorization header.
//
// # Flow
//  1. Read the 'Authorization' header. Absent → reject immediately; the
//     downstream handler never executes.
//  2. Strip a leading "Bearer " prefix if present, else use the raw value
//     (both historical header conventions are accepted).
//  3. Verify the token via [TokenVerifier].
//  4. Inject [*sec.Claims] into the request context for downstream use.
//
// Rejections use HTTP 403 for both the absent and the invalid credential,
// replicating the historical contract. The distinguishing failure kind
// (malformed / bad signature / expired) is preserved in the logs only.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Absent Credential ──────────────────────────────────────────
			if strings.TrimSpace(authHeader) == "" {
				respond.Error(writer, request, apperr.Forbidden("Token not provided"))
				return
			}

			// ── 2. Token Extraction (dual header convention) ──────────────────
			tokenString := sec.StripBearerPrefix(authHeader)
			if tokenString == "" {
				respond.Error(writer, request, apperr.Forbidden("Invalid token format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.Verify(tokenString)
			if err != nil {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(),
					"token_verification_failed",
					slog.String("reason", err.Error()),
				)
				respond.Error(writer, request, apperr.Forbidden("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRoles blocks requests whose authenticated principal's role is not in
// the given allow-list.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. Each protected route
// declares its own allow-list at wiring time; there is no global role table.
//
// # Flow
//  1. Check that [*sec.Claims] exists in context (implies AuthN).
//  2. Check that the claims carry a known role at all.
//  3. Check membership in the allow-list.
//
// Every rejection surfaces as a generic 403, but the three cases (no
// credential / no role / role not permitted) are logged distinctly.
func RequireRoles(allowed ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetPrincipal(request.Context())
			logger := ctxutil.GetLogger(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if claims == nil {
				respond.Error(writer, request, apperr.Forbidden("Token not provided"))
				return
			}

			// ── 2. Role Presence Check ────────────────────────────────────────
			if !claims.Role.IsValid() {
				logger.WarnContext(request.Context(), "authorization_rejected",
					slog.String("reason", "no role information found in token"),
					slog.String("user_id", claims.UserID),
				)
				respond.Error(writer, request, apperr.Forbidden("No role information found"))
				return
			}

			// ── 3. Allow-List Check ───────────────────────────────────────────
			if !claims.Role.In(allowed...) {
				logger.WarnContext(request.Context(), "authorization_rejected",
					slog.String("reason", "insufficient permissions"),
					slog.String("user_id", claims.UserID),
					slog.String("role", string(claims.Role)),
				)
				respond.Error(writer, request, apperr.Forbidden("You do not have the necessary permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
