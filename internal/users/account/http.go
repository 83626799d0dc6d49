// Copyright (c) 2026 FISBook. All rights reserved.

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fisbook/users-api/internal/platform/apperr"
	"github.com/fisbook/users-api/internal/platform/middleware"
	requestutil "github.com/fisbook/users-api/internal/platform/request"
	"github.com/fisbook/users-api/internal/platform/respond"
	"github.com/fisbook/users-api/internal/platform/sec"
	"github.com/fisbook/users-api/internal/platform/validate"
	"github.com/fisbook/users-api/internal/users/auth"
)

// # Definitions & Constructors

// Handler implements the protected account management endpoints.
type Handler struct {
	accountService *Service
	tokenVerifier  middleware.TokenVerifier
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service, verifier middleware.TokenVerifier) *Handler {
	return &Handler{
		accountService: service,
		tokenVerifier:  verifier,
	}
}

// Register attaches the protected account routes to the users subrouter.
//
// Every route sits behind the authentication middleware. Listing is open to
// both roles; deletion is Admin only.
//
// # Endpoints
//   - GET    /                      : Lists all accounts.
//   - GET    /{id}                  : Fetches one account.
//   - PUT    /{id}                  : Applies a partial profile update.
//   - DELETE /{id}                  : Removes an account (Admin).
//   - PATCH  /{username}/downloads  : Sets the download counter.
func (handler *Handler) Register(router chi.Router) {
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticate(handler.tokenVerifier))

		protected.With(middleware.RequireRoles(sec.RoleAdmin, sec.RoleUser)).
			Get("/", handler.list)
		protected.Get("/{id}", handler.get)
		protected.Put("/{id}", handler.update)
		protected.With(middleware.RequireRoles(sec.RoleAdmin)).
			Delete("/{id}", handler.remove)
		protected.Patch("/{username}/downloads", handler.setDownloads)
	})
}

// # Account Endpoints

/*
List returns every registered account.

GET /api/v1/auth/users

Response:
  - 200: []User: Public account records (no password field)
  - 403: FORBIDDEN: Missing, invalid, or under-privileged credential
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.accountService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}

/*
Get fetches a single account by ID.

GET /api/v1/auth/users/{id}

Response:
  - 200: User: Hydrated account record
  - 400: VALIDATION_ERROR: Malformed ID
  - 404: NOT_FOUND: No account with that ID
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", userID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateRequest defines the partial update payload. Absent fields keep
// their stored values; JSON names follow the historical wire format.
type updateRequest struct {
	FirstName *string `json:"nombre"`
	LastName  *string `json:"apellidos"`
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Plan      *string `json:"plan"`
	Role      *string `json:"rol"`
}

/*
Update applies a partial profile update to an account.

PUT /api/v1/auth/users/{id}

Request:
  - Body: updateRequest (any subset of nombre, apellidos, username, email, plan, rol)

Response:
  - 200: User: The updated record
  - 400: VALIDATION_ERROR: Malformed ID or field values
  - 404: NOT_FOUND: No account with that ID
  - 409: CONFLICT: Username or email already taken
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "id")

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.UUID("id", userID)

	if input.FirstName != nil {
		validator.MinLen(auth.FieldFirstName, *input.FirstName, auth.NameMinLen)
	}
	if input.LastName != nil {
		validator.MinLen(auth.FieldLastName, *input.LastName, auth.NameMinLen)
	}
	if input.Username != nil {
		validator.MinLen(auth.FieldUsername, *input.Username, auth.UsernameMinLen).
			MaxLen(auth.FieldUsername, *input.Username, auth.UsernameMaxLen).
			Username(auth.FieldUsername, *input.Username)
	}
	if input.Email != nil {
		validator.Email(auth.FieldEmail, *input.Email)
	}
	if input.Plan != nil {
		validator.OneOf(auth.FieldPlan, *input.Plan,
			string(sec.Plan1), string(sec.Plan2), string(sec.Plan3))
	}
	if input.Role != nil {
		validator.OneOf(auth.FieldRole, *input.Role,
			string(sec.RoleAdmin), string(sec.RoleUser))
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	serviceInput := UpdateInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  input.Username,
		Email:     input.Email,
	}
	if input.Plan != nil {
		plan := sec.Plan(*input.Plan)
		serviceInput.Plan = &plan
	}
	if input.Role != nil {
		role := sec.Role(*input.Role)
		serviceInput.Role = &role
	}

	user, err := handler.accountService.Update(request.Context(), userID, serviceInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Remove permanently deletes an account. Admin only.

DELETE /api/v1/auth/users/{id}

Response:
  - 200: {message}: Deletion confirmation
  - 400: VALIDATION_ERROR: Malformed ID
  - 403: FORBIDDEN: Caller lacks the Admin role
  - 404: NOT_FOUND: No account with that ID
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", userID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.Delete(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "User deleted successfully")
}

// setDownloadsRequest carries the new download total. The pointer
// distinguishes an absent field from an explicit zero.
type setDownloadsRequest struct {
	Downloads *int `json:"numDescargas"`
}

/*
SetDownloads overwrites an account's download counter.

PATCH /api/v1/auth/users/{username}/downloads

Request:
  - Body: setDownloadsRequest ({numDescargas: int >= 0})

Response:
  - 200: User: The updated record
  - 400: VALIDATION_ERROR: Missing or negative counter
  - 404: NOT_FOUND: Unknown username
*/
func (handler *Handler) setDownloads(writer http.ResponseWriter, request *http.Request) {
	accountName := requestutil.Param(request, "username")

	var input setDownloadsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.Downloads == nil {
		respond.Error(writer, request, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   auth.FieldDownloads,
			Message: auth.FieldDownloads + " is required",
		}))
		return
	}

	validator := &validate.Validator{}
	if err := validator.Min(auth.FieldDownloads, *input.Downloads, 0).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.SetDownloads(request.Context(), accountName, *input.Downloads)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
