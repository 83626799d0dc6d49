// Copyright (c) 2026 FISBook. All rights reserved.

/*
Package auth provides the HTTP delivery layer for registration and login.

It implements the public entry points of the users microservice. Everything
else under /api/v1/auth/users is protected and lives in the account package.

This layer is strictly responsible for transport concerns (status codes,
headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/fisbook/users-api/internal/platform/request"
	"github.com/fisbook/users-api/internal/platform/respond"
	"github.com/fisbook/users-api/internal/platform/sec"
	"github.com/fisbook/users-api/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the public authentication endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Register attaches the public auth routes to the users subrouter. The
// auth, account, and library handlers share one mount point, so each
// attaches onto the router the server provides.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and returns a bearer token.
func (handler *Handler) Register(router chi.Router) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
}

// # Request Payloads

type registerRequest struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellidos"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Plan      string `json:"plan"`
	Role      string `json:"rol"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/users/register

Request:
  - Body: registerRequest (nombre, apellidos, username?, email, password, plan?, rol?)

Response:
  - 201: User: Created user profile (no password field)
  - 400: VALIDATION_ERROR: Bad input or validation failure
  - 409: CONFLICT: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldFirstName, input.FirstName).
		MinLen(FieldFirstName, input.FirstName, NameMinLen).
		Required(FieldLastName, input.LastName).
		MinLen(FieldLastName, input.LastName, NameMinLen).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLen)

	// Username is optional (derived from the names when absent) but must be
	// well-formed when supplied.
	if input.Username != "" {
		validator.MinLen(FieldUsername, input.Username, UsernameMinLen).
			MaxLen(FieldUsername, input.Username, UsernameMaxLen).
			Username(FieldUsername, input.Username)
	}

	// Plan and role come from closed enumerations; unknown values are
	// rejected here so a typo can never reach the database.
	if input.Plan != "" {
		validator.OneOf(FieldPlan, input.Plan, string(sec.Plan1), string(sec.Plan2), string(sec.Plan3))
	}
	if input.Role != "" {
		validator.OneOf(FieldRole, input.Role, string(sec.RoleAdmin), string(sec.RoleUser))
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
		Plan:      sec.Plan(input.Plan),
		Role:      sec.Role(input.Role),
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and returns a bearer token.

POST /api/v1/auth/users/login

Request:
  - Body: loginRequest (email, password)

Response:
  - 200: {message, token, user}
  - 403: FORBIDDEN: Wrong password
  - 404: NOT_FOUND: Unknown email
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldMessage: "Login successful",
		FieldToken:   result.Token,
		"user":       result.User,
	})
}
