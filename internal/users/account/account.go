// Copyright (c) 2026 FISBook. All rights reserved.

/*
Package account implements the protected CRUD surface of the users service.

It operates on the same [auth.User] entity that registration creates, but
behind the authentication middleware: every endpoint here requires a verified
bearer token, and destructive operations additionally require the Admin role.
*/
package account

import (
	"context"

	"github.com/fisbook/users-api/internal/users/auth"
)

// # Account Data Access

// AccountRepository defines the storage contract for managed user accounts.
//
// All methods surface apperr-mapped errors (NotFound, Conflict) so the
// service layer never inspects storage-specific failures.
type AccountRepository interface {

	/*
		List returns every registered account, oldest first.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*auth.User: All accounts (possibly empty)
		  - error: Retrieval failures
	*/
	List(context context.Context) ([]*auth.User, error)

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *auth.User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		Update persists the mutable profile fields of an existing account.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Entity with updated fields)

		Returns:
		  - error: apperr.Conflict on unique violations, or persistence failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		Delete removes an account permanently.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound when no row matched, or persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		UpdateDownloads sets the download counter for the account owning
		the given username and returns the updated entity.

		Parameters:
		  - context: context.Context
		  - username: string
		  - downloads: int

		Returns:
		  - *auth.User: Updated entity
		  - error: apperr.NotFound or persistence failures
	*/
	UpdateDownloads(context context.Context, username string, downloads int) (*auth.User, error)
}
