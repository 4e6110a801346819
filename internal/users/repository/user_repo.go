package repository

import (
	"context"
	"database/sql"

	"github.com/nexview/nexview-backend/internal/users/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail retrieves a user by their unique email. Exact match only.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, username, avatar, streak, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user domain.User
	var avatar sql.NullString

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&avatar,
		&user.Streak,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if avatar.Valid {
		user.Avatar = avatar.String
	}

	return &user, nil
}

// Upsert creates the user record on first sign-in and refreshes profile
// fields on subsequent ones.
func (r *UserRepository) Upsert(ctx context.Context, req domain.SyncUserRequest) (*domain.User, error) {
	query := `
		INSERT INTO users (email, username, avatar)
		VALUES ($1, $2, NULLIF($3, ''))
		ON CONFLICT (email) DO UPDATE
		SET username = EXCLUDED.username,
		    avatar = COALESCE(EXCLUDED.avatar, users.avatar),
		    updated_at = NOW()
		RETURNING id, email, username, avatar, streak, created_at, updated_at
	`

	var user domain.User
	var avatar sql.NullString

	err := r.db.QueryRowContext(ctx, query, req.Email, req.Username, req.Avatar).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&avatar,
		&user.Streak,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if avatar.Valid {
		user.Avatar = avatar.String
	}

	return &user, nil
}

// UpdateProfile updates username and/or avatar, keeping current values for
// fields not provided.
func (r *UserRepository) UpdateProfile(ctx context.Context, email string, req domain.UpdateProfileRequest) (*domain.User, error) {
	query := `
		UPDATE users
		SET username = COALESCE($2, username),
		    avatar = COALESCE($3, avatar),
		    updated_at = NOW()
		WHERE email = $1
		RETURNING id, email, username, avatar, streak, created_at, updated_at
	`

	var user domain.User
	var avatar sql.NullString

	err := r.db.QueryRowContext(ctx, query, email, req.Username, req.Avatar).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&avatar,
		&user.Streak,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if avatar.Valid {
		user.Avatar = avatar.String
	}

	return &user, nil
}
