// Copyright (c) 2026 FISBook. All rights reserved.

/*
Package auth implements registration and token-based login.

Architecture:

  - Service: Orchestrates business logic (Register, Login).
  - Repository: Abstracted interface for PostgreSQL user storage.
  - Security: Bcrypt password hashes and HS256-signed JWTs via [TokenProvider].

Tokens are stateless: there is no session store, refresh flow, or revocation
list. A token remains valid until its one-hour expiry.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fisbook/users-api/internal/platform/apperr"
	"github.com/fisbook/users-api/internal/platform/ctxutil"
	"github.com/fisbook/users-api/internal/platform/sec"
	"github.com/fisbook/users-api/pkg/username"
	"github.com/fisbook/users-api/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for minting bearer tokens.
type TokenProvider interface {
	// Issue creates a signed token string carrying the given claims.
	// The expiry is fixed by the provider's configured TTL.
	Issue(claims sec.Claims) (string, error)
}

// Service implements user registration and authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
//
// Username is optional: when empty, one is derived from the first and last
// names. Plan and Role default to Plan1 / User when omitted.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
	Plan      sec.Plan
	Role      sec.Role
}

/*
Register validates, hashes, and persists a brand new user account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: apperr.Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict error.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Derive a username from the person's names when none was supplied.
	accountName := input.Username
	if accountName == "" {
		accountName = username.Derive(input.FirstName, input.LastName)
	}
	if accountName == "" {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldUsername,
			Message: "A username is required",
		})
	}

	// Verify username uniqueness. Return a client-safe Conflict error.
	_, err = service.userRepository.FindByUsername(context, accountName)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Default tier and role for accounts that omit them.
	plan := input.Plan
	if plan == "" {
		plan = sec.Plan1
	}
	role := input.Role
	if role == "" {
		role = sec.RoleUser
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     accountName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Plan:         plan,
		Role:         role,
		ReadingLists: []string{},
		Reviews:      []string{},
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the minted bearer token and the matching account.
type LoginResult struct {
	Token string
	User  *User
}

/*
Login validates user credentials and issues a bearer token.

The historical contract distinguishes an unknown email (404) from a wrong
password (403); both paths avoid echoing which field was wrong beyond that.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Token plus account snapshot
  - error: apperr.NotFound, apperr.Forbidden, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		return nil, apperr.NotFound("User")
	}

	// Constant-time comparison inside bcrypt prevents timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Forbidden("Invalid login credentials")
	}

	// Mint the stateless access token. Issuance failures must never escape
	// as panics: log the cause and report a generic login failure.
	token, err := service.tokenProvider.Issue(user.Claims())
	if err != nil {
		ctxutil.GetLogger(context).ErrorContext(context, "token_issuance_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return nil, apperr.Internal(fmt.Errorf("auth_service_token_generation_failed: %w", err))
	}

	return &LoginResult{Token: token, User: user}, nil
}
