// Copyright (c) 2026 FISBook. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fisbook/users-api/internal/platform/ctxutil"
	"github.com/fisbook/users-api/internal/platform/sec"
	"github.com/fisbook/users-api/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for managed user accounts.
//
// It applies partial profile updates, guards the closed plan/role
// enumerations, and keeps the download counter consistent.
type Service struct {
	accountRepository AccountRepository
}

// NewService constructs a new account [Service].
func NewService(accountRepo AccountRepository) *Service {
	return &Service{accountRepository: accountRepo}
}

// # Account Queries

/*
List returns the public view of every registered account.

Parameters:
  - context: context.Context

Returns:
  - []*auth.User: All accounts (password hashes never serialize)
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context) ([]*auth.User, error) {
	users, err := service.accountRepository.List(context)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, nil
}

/*
Get retrieves a single account by its ID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: Hydrated entity
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) Get(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_failed: %w", err)
	}
	return user, nil
}

// # Account Mutations

// UpdateInput defines the mutable subset of account fields. Nil pointers
// leave the stored value untouched.
type UpdateInput struct {
	FirstName *string
	LastName  *string
	Username  *string
	Email     *string
	Plan      *sec.Plan
	Role      *sec.Role
}

/*
Update applies a partial set of changes to an existing account.

Description: Fetches the current state, overlays the provided fields, and
persists the result. Username and email uniqueness is enforced by storage
and surfaces as a Conflict error.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateInput

Returns:
  - *auth.User: The updated entity
  - error: apperr.NotFound, apperr.Conflict, or persistence failures
*/
func (service *Service) Update(context context.Context, userID string, input UpdateInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Plan != nil {
		user.Plan = *input.Plan
	}
	if input.Role != nil {
		user.Role = *input.Role
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_account_updated",
		slog.String("user_id", userID),
	)

	return user, nil
}

/*
Delete permanently removes an account.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: apperr.NotFound when the account does not exist
*/
func (service *Service) Delete(context context.Context, userID string) error {
	if err := service.accountRepository.Delete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	ctxutil.GetLogger(context).WarnContext(context, "user_account_deleted",
		slog.String("user_id", userID),
	)

	return nil
}

/*
SetDownloads overwrites the download counter of the account owning the
given username. The sibling downloads service reports the new total after
each completed download.

Parameters:
  - context: context.Context
  - username: string
  - downloads: int (Non-negative, validated at the transport layer)

Returns:
  - *auth.User: Updated entity
  - error: apperr.NotFound or persistence failures
*/
func (service *Service) SetDownloads(context context.Context, username string, downloads int) (*auth.User, error) {
	user, err := service.accountRepository.UpdateDownloads(context, username, downloads)
	if err != nil {
		return nil, fmt.Errorf("account_service_set_downloads_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_downloads_updated",
		slog.String("username", username),
		slog.Int("downloads", downloads),
	)

	return user, nil
}
