package db

import (
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/pharos-media/pharos/internal/model"
)

// creates the tenant a signing-up user will own and returns its id.
func CreateTenant(name string) (int, error) {
	var newID int
	query := `
	INSERT INTO tenants (name, created_at, updated_at)
	VALUES ($1, now(), now())
	RETURNING id;
	`
	if err := DB.QueryRow(query, name).Scan(&newID); err != nil {
		log.Error().Msg("failed to create tenant")
		return 0, err
	}
	return newID, nil
}

// inserts new user into table, returns new user ID.
func CreateUser(tenantID int, email, hashedPassword string, name *string) (int, error) {
	query := `
	INSERT INTO users (tenant_id, email, hashed_password, name, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	RETURNING id;
	`
	var newID int
	if err := DB.QueryRow(query, tenantID, email, hashedPassword, name).Scan(&newID); err != nil {
		log.Error().Msg("failed to create user")
		return 0, err
	}
	return newID, nil
}

// fetches user by email. Returns nil, sql.ErrNoRows if not found.
func GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, tenant_id, email, hashed_password, name, created_at, updated_at
	FROM users
	WHERE email = $1;
	`
	err := DB.Get(&u, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Msg("failed to get user by email")
		return nil, err
	}
	return &u, nil
}

// fetches a user by ID. Returns nil, sql.ErrNoRows if not found.
func GetUserByID(id int) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, tenant_id, email, hashed_password, name, created_at, updated_at
	FROM users
	WHERE id = $1;
	`
	err := DB.Get(&u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Msg("failed to get user by id")
		return nil, err
	}
	return &u, nil
}

// updates email/name of an existing user.
func UpdateUserProfile(id int, email string, name *string) error {
	query := `
	UPDATE users
	SET email = $2, name = $3, updated_at = now()
	WHERE id = $1;
	`
	if _, err := DB.Exec(query, id, email, name); err != nil {
		log.Error().Msg("failed to update user profile")
		return err
	}
	return nil
}
