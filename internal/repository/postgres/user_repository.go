package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

const userColumns = "id, email, name, avatar_url, password_hash, created_at, updated_at"

type userRepository struct {
	executor DBExecutor
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{executor: db}
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var updatedAt sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.AvatarURL,
		&user.PasswordHash,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.UpdatedAt = nullTimePtr(updatedAt)
	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = newID()
	}

	query := `
		INSERT INTO users (id, email, name, avatar_url, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	var updatedAt sql.NullTime
	err := r.executor.QueryRowContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Name,
		user.AvatarURL,
		user.PasswordHash,
		time.Now(),
	).Scan(&user.CreatedAt, &updatedAt)
	if err != nil {
		return normalizeError(err, "user")
	}

	user.UpdatedAt = nullTimePtr(updatedAt)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = $1"

	user, err := scanUser(r.executor.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, normalizeError(err, "user with id "+id)
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = $1"

	user, err := scanUser(r.executor.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, normalizeError(err, "user with email "+email)
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY name"

	rows, err := r.executor.QueryContext(ctx, query)
	if err != nil {
		return nil, normalizeError(err, "users")
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, normalizeError(err, "users")
		}
		users = append(users, user)
	}

	return users, normalizeError(rows.Err(), "users")
}
