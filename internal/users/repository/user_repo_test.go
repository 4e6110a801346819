package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexview/nexview-backend/internal/users/domain"
)

func setupUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewUserRepository(db), mock, db
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "username", "avatar", "streak", "created_at", "updated_at"})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	repo, mock, db := setupUserRepo(t)
	defer db.Close()

	t.Run("returns the user for a known email", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT id, email, username, avatar, streak, created_at, updated_at`).
			WithArgs("ada@example.com").
			WillReturnRows(userRows().
				AddRow("user-1", "ada@example.com", "ada", "https://img/a.png", 3, now, now))

		user, err := repo.GetByEmail(context.Background(), "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "ada", user.Username)
		assert.Equal(t, "https://img/a.png", user.Avatar)
		assert.Equal(t, 3, user.Streak)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("null avatar maps to empty string", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT id, email, username, avatar, streak, created_at, updated_at`).
			WithArgs("ada@example.com").
			WillReturnRows(userRows().
				AddRow("user-1", "ada@example.com", "ada", nil, 0, now, now))

		user, err := repo.GetByEmail(context.Background(), "ada@example.com")
		require.NoError(t, err)
		assert.Empty(t, user.Avatar)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown email yields not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, email, username, avatar, streak, created_at, updated_at`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Upsert(t *testing.T) {
	repo, mock, db := setupUserRepo(t)
	defer db.Close()

	t.Run("creates on first sign-in", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("ada@example.com", "ada", "https://img/a.png").
			WillReturnRows(userRows().
				AddRow("user-1", "ada@example.com", "ada", "https://img/a.png", 0, now, now))

		user, err := repo.Upsert(context.Background(), domain.SyncUserRequest{
			Email:    "ada@example.com",
			Username: "ada",
			Avatar:   "https://img/a.png",
		})
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Zero(t, user.Streak)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	repo, mock, db := setupUserRepo(t)
	defer db.Close()

	t.Run("updates only the provided fields", func(t *testing.T) {
		now := time.Now()
		username := "ada2"
		mock.ExpectQuery(`UPDATE users`).
			WithArgs("ada@example.com", "ada2", nil).
			WillReturnRows(userRows().
				AddRow("user-1", "ada@example.com", "ada2", "https://img/a.png", 1, now, now))

		user, err := repo.UpdateProfile(context.Background(), "ada@example.com",
			domain.UpdateProfileRequest{Username: &username})
		require.NoError(t, err)
		assert.Equal(t, "ada2", user.Username)
		assert.Equal(t, "https://img/a.png", user.Avatar)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown email yields not found", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE users`).
			WithArgs("nobody@example.com", nil, nil).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdateProfile(context.Background(), "nobody@example.com", domain.UpdateProfileRequest{})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
