// Copyright (c) 2026 FISBook. All rights reserved.

/*
Package auth implements the user identity layer of the FISBook platform.

It defines the core account entity and the registration/login logic that
mints bearer tokens for the rest of the microservice fleet.

# Architecture

This layer is the "Truth" of the system. The account record in PostgreSQL is
the source of truth for identity data; token claims are a denormalized,
immutable snapshot taken at login time.
*/
package auth

import (
	"time"

	"github.com/fisbook/users-api/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the FISBook platform.
//
// JSON field names replicate the historical wire format shared with the
// sibling readings and reviews services; they must not be renamed.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"nombre"`
	LastName     string    `json:"apellidos"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Plan         sec.Plan  `json:"plan"`
	Role         sec.Role  `json:"rol"`
	ReadingLists []string  `json:"listaLecturasId"`
	Downloads    int       `json:"numDescargas"`
	Reviews      []string  `json:"resenasId"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Claims builds the token payload snapshot for this user.
func (u *User) Claims() sec.Claims {
	return sec.Claims{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Plan:      u.Plan,
		Role:      u.Role,
	}
}

// # Validation Constraints

const (
	// UsernameMinLen and UsernameMaxLen bound the account username.
	UsernameMinLen = 3
	UsernameMaxLen = 30

	// NameMinLen applies to both first and last names.
	NameMinLen = 2

	// PasswordMinLen is the minimum accepted password length.
	PasswordMinLen = 6
)

// # Field Identifiers

// Wire-level field names used for validation details and response payloads.
const (
	FieldFirstName = "nombre"
	FieldLastName  = "apellidos"
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldPlan      = "plan"
	FieldRole      = "rol"
	FieldDownloads = "numDescargas"
	FieldToken     = "token"
	FieldMessage   = "message"
)
