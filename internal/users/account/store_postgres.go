// Copyright (c) 2026 FISBook. All rights reserved.

// PostgreSQL implementation of [AccountRepository].

package account

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fisbook/users-api/internal/platform/apperr"
	"github.com/fisbook/users-api/internal/platform/dberr"
	"github.com/fisbook/users-api/internal/users/auth"
)

const accountColumns = `
	id, nombre, apellidos, username, email, passwordhash,
	plan, rol, listalecturas, numdescargas, resenas, createdat, updatedat`

// PostgresAccountRepository implements the AccountRepository interface using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
List returns every account ordered by creation time.

Parameters:
  - context: context.Context

Returns:
  - []*auth.User: All accounts
  - error: Retrieval failures
*/
func (repository *PostgresAccountRepository) List(context context.Context) ([]*auth.User, error) {
	query := `SELECT` + accountColumns + ` FROM users.account ORDER BY createdat`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres_account_repo_list_failed: %w", err), "User")
	}
	defer rows.Close()

	users := []*auth.User{}
	for rows.Next() {
		user := &auth.User{}
		if err := scanUser(rows, user); err != nil {
			return nil, dberr.Wrap(err, "User")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return users, nil
}

/*
FindByID retrieves a single account by its ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *auth.User: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := `SELECT` + accountColumns + ` FROM users.account WHERE id = $1`

	user := &auth.User{}
	if err := scanUser(repository.pool.QueryRow(context, query, id), user); err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

/*
Update persists all mutable profile fields of an account.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: apperr.NotFound, apperr.Conflict on unique violations, or database errors
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	const query = `
		UPDATE users.account
		SET nombre = $2, apellidos = $3, username = $4, email = $5,
		    plan = $6, rol = $7, listalecturas = $8, numdescargas = $9,
		    resenas = $10, updatedat = $11
		WHERE id = $1`

	user.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(context, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Username,
		user.Email,
		user.Plan,
		user.Role,
		user.ReadingLists,
		user.Downloads,
		user.Reviews,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_account_repo_update_failed: %w", err), "User")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
Delete permanently removes an account row.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound when no row matched, or database errors
*/
func (repository *PostgresAccountRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM users.account WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_account_repo_delete_failed: %w", err), "User")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
UpdateDownloads sets the download counter for a username and returns the
updated row in one round trip.

Parameters:
  - context: context.Context
  - username: string
  - downloads: int

Returns:
  - *auth.User: Updated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) UpdateDownloads(context context.Context, username string, downloads int) (*auth.User, error) {
	query := `
		UPDATE users.account
		SET numdescargas = $2, updatedat = $3
		WHERE username = $1
		RETURNING` + accountColumns

	user := &auth.User{}
	row := repository.pool.QueryRow(context, query, username, downloads, time.Now())
	if err := scanUser(row, user); err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser hydrates a full account entity from a row.
func scanUser(row rowScanner, user *auth.User) error {
	return row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Plan,
		&user.Role,
		&user.ReadingLists,
		&user.Downloads,
		&user.Reviews,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}
