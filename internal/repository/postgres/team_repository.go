package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

const teamColumns = "t.id, t.name, t.description, t.color, t.owner_id, t.created_at, t.updated_at"

type teamRepository struct {
	executor DBExecutor
}

func NewTeamRepository(db *sql.DB) *teamRepository {
	return &teamRepository{executor: db}
}

func scanTeam(row rowScanner) (*domain.Team, error) {
	team := &domain.Team{}
	var updatedAt sql.NullTime
	err := row.Scan(
		&team.ID,
		&team.Name,
		&team.Description,
		&team.Color,
		&team.OwnerID,
		&team.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	team.UpdatedAt = nullTimePtr(updatedAt)
	return team, nil
}

// ListByUser возвращает команды, в которых состоит пользователь, новые первыми
func (r *teamRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM teams t
		JOIN team_members tm ON tm.team_id = t.id
		WHERE tm.user_id = $1
		ORDER BY t.created_at DESC
	`

	rows, err := r.executor.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, normalizeError(err, "teams")
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, normalizeError(err, "teams")
		}
		teams = append(teams, team)
	}

	return teams, normalizeError(rows.Err(), "teams")
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM teams t
		WHERE t.id = $1
	`

	team, err := scanTeam(r.executor.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, normalizeError(err, "team with id "+id)
	}
	return team, nil
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	if team.ID == "" {
		team.ID = newID()
	}

	query := `
		INSERT INTO teams (id, name, description, color, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	var updatedAt sql.NullTime
	err := r.executor.QueryRowContext(
		ctx,
		query,
		team.ID,
		team.Name,
		team.Description,
		team.Color,
		team.OwnerID,
		time.Now(),
	).Scan(&team.CreatedAt, &updatedAt)
	if err != nil {
		return normalizeError(err, "team")
	}

	team.UpdatedAt = nullTimePtr(updatedAt)
	return nil
}

func (r *teamRepository) Update(ctx context.Context, id string, update domain.TeamUpdate) (*domain.Team, error) {
	set := &setClause{}
	if update.Name != nil {
		set.add("name", *update.Name)
	}
	if update.Description != nil {
		set.add("description", *update.Description)
	}
	if update.Color != nil {
		set.add("color", *update.Color)
	}

	query, args := set.build("teams t", id, teamColumns)
	team, err := scanTeam(r.executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, normalizeError(err, "team with id "+id)
	}
	return team, nil
}

func (r *teamRepository) Delete(ctx context.Context, id string) error {
	_, err := r.executor.ExecContext(ctx, "DELETE FROM teams WHERE id = $1", id)
	return normalizeError(err, "team with id "+id)
}
