package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
)

// ErrUsernameTaken is returned by UserRepo.Create on a duplicate username.
var ErrUsernameTaken error = &domain.ConflictError{Message: "Username already exists"}

// UserRepo defines the persistence operations for accounts.
type UserRepo interface {
	// Create inserts a user with an already hashed password.
	// Returns ErrUsernameTaken if the username is in use.
	Create(ctx context.Context, username, passwordHash string) (domain.User, error)

	// GetByUsername returns domain.ErrNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (domain.User, error)
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) Create(ctx context.Context, username, passwordHash string) (domain.User, error) {
	const q = `
		INSERT INTO users (username, password_hash)
		VALUES (@username, @password_hash)
		RETURNING id, username, password_hash, created_at`

	args := pgx.NamedArgs{"username": username, "password_hash": passwordHash}
	u, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", ErrUsernameTaken)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return u, nil
}

func (r *pgUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	const q = `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = @username`

	u, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"username": username}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByUsername: %w", err)
	}
	return u, nil
}

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	if err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
