// Copyright (c) 2026 FISBook. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the auth package's TokenProvider interface.
package sec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StripBearerPrefix extracts the raw token from an Authorization header value.
//
// Two historical header conventions are in circulation: the value may be the
// bare token, or "Bearer <token>". Deployments standardize on the Bearer form
// but the legacy bare form is still accepted for compatibility.
func StripBearerPrefix(headerValue string) string {
	const prefix = "Bearer "
	trimmed := strings.TrimSpace(headerValue)
	if len(trimmed) >= len(prefix) && strings.EqualFold(trimmed[:len(prefix)], prefix) {
		return strings.TrimSpace(trimmed[len(prefix):])
	}
	return trimmed
}

// # Verification Failures

// Each verification failure mode is a distinct sentinel so that callers can
// log the precise reason while still collapsing all of them into a single
// generic rejection for the client.
var (
	// ErrMalformedToken means the string could not be parsed as a JWT at all.
	ErrMalformedToken = errors.New("sec: malformed token")

	// ErrInvalidSignature means the token parsed but was not signed with our secret.
	ErrInvalidSignature = errors.New("sec: invalid token signature")

	// ErrExpiredToken means the token is structurally valid but past its expiry.
	ErrExpiredToken = errors.New("sec: token expired")
)

// Claims represents the payload embedded inside an issued bearer token.
//
// # Why custom claims?
//
// By embedding the full public profile directly inside the JWT, downstream
// middleware can reconstruct the active principal WITHOUT querying the
// database on every single API request. The JSON field names replicate the
// historical wire format consumed by the sibling microservices, so they must
// not be renamed.
type Claims struct {
	jwt.RegisteredClaims

	UserID    string `json:"id"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellidos"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Plan      Plan   `json:"plan"`
	Role      Role   `json:"rol"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// The signing secret is loaded once at process start and is immutable
// afterwards, so the service is safe for concurrent use without locking.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration

	// now is swappable in tests to simulate clock skew and expiry.
	now func() time.Time
}

// NewTokenService creates a new TokenService.
// The secret must be non-empty; an empty secret is a critical security defect
// and is rejected here rather than discovered at the first signing call.
func NewTokenService(secret, issuer string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: signing secret must not be empty")
	}
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue creates a new signed bearer token carrying the given claims.
//
// The expiry is now + the configured TTL; issued-at is always set, so two
// tokens for the same user minted in different seconds differ byte-for-byte.
func (service *TokenService) Issue(claims Claims) (string, error) {
	currentTime := service.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		Issuer:    service.issuer,
		IssuedAt:  jwt.NewNumericDate(currentTime),
		ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity of a JWT string and returns the
// embedded claims.
//
// # Failure Modes
//
// Returns exactly one of [ErrMalformedToken], [ErrInvalidSignature] or
// [ErrExpiredToken] (wrapped), each separately observable via errors.Is.
func (service *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return service.now() }))

	if err != nil {
		return nil, classifyVerifyError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: unexpected claims shape", ErrMalformedToken)
	}

	return claims, nil
}

// classifyVerifyError maps jwt/v5 parse errors onto our sentinel taxonomy.
// Expiry is checked before signature shape: jwt/v5 joins multiple causes and
// an expired-but-valid token must surface as Expired, not Malformed.
func classifyVerifyError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpiredToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
}
