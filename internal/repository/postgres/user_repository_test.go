package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "email", "name", "avatar_url", "password_hash", "created_at", "updated_at"}

func setupUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	return NewUserRepository(db), mock
}

func TestUserRepository_Create(t *testing.T) {
	t.Run("успешное создание пользователя", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		now := time.Now()
		user := &domain.User{Email: "alice@example.com", Name: "Alice", PasswordHash: "hash"}

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(sqlmock.AnyArg(), "alice@example.com", "Alice", "", "hash", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, nil))

		err := repo.Create(context.Background(), user)

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, now, user.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("email уже занят", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(errors.New("duplicate key value violates unique constraint \"users_email_key\""))

		err := repo.Create(context.Background(), &domain.User{Email: "alice@example.com"})

		assert.True(t, errors.Is(err, domain.ErrRemote))
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	t.Run("пользователь найден", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow("u1", "alice@example.com", "Alice", "", "hash", time.Now(), nil))

		user, err := repo.GetByID(context.Background(), "u1")

		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)
		assert.Nil(t, user.UpdatedAt)
	})

	t.Run("пользователь не найден", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs("u9").
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		user, err := repo.GetByID(context.Background(), "u9")

		assert.Nil(t, user)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.Equal(t, "user with id u9 not found", err.Error())
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	repo, mock := setupUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u2", "bob@example.com", "Bob", "", "hash", time.Now(), time.Now()))

	user, err := repo.GetByEmail(context.Background(), "bob@example.com")

	require.NoError(t, err)
	assert.Equal(t, "u2", user.ID)
	assert.NotNil(t, user.UpdatedAt)
}

func TestUserRepository_List(t *testing.T) {
	repo, mock := setupUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY name").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u1", "alice@example.com", "Alice", "", "", time.Now(), nil).
			AddRow("u2", "bob@example.com", "Bob", "", "", time.Now(), nil))

	users, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
