package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

type membershipRepository struct {
	executor DBExecutor
}

func NewMembershipRepository(db *sql.DB) *membershipRepository {
	return &membershipRepository{executor: db}
}

// ListByTeam возвращает участников команды вместе с данными пользователей
func (r *membershipRepository) ListByTeam(ctx context.Context, teamID string) ([]*domain.TeamMember, error) {
	query := `
		SELECT tm.id, tm.team_id, tm.user_id, tm.role, tm.joined_at, u.email, u.name
		FROM team_members tm
		JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = $1
		ORDER BY tm.joined_at
	`

	rows, err := r.executor.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, normalizeError(err, "team members")
	}
	defer rows.Close()

	members := make([]*domain.TeamMember, 0)
	for rows.Next() {
		member := &domain.TeamMember{User: &domain.User{}}
		var role string
		err := rows.Scan(
			&member.ID,
			&member.TeamID,
			&member.UserID,
			&role,
			&member.JoinedAt,
			&member.User.Email,
			&member.User.Name,
		)
		if err != nil {
			return nil, normalizeError(err, "team members")
		}
		member.Role = domain.Role(role)
		member.User.ID = member.UserID
		members = append(members, member)
	}

	return members, normalizeError(rows.Err(), "team members")
}

func (r *membershipRepository) Get(ctx context.Context, teamID, userID string) (*domain.TeamMember, error) {
	query := `
		SELECT id, team_id, user_id, role, joined_at
		FROM team_members
		WHERE team_id = $1 AND user_id = $2
	`

	member := &domain.TeamMember{}
	var role string
	err := r.executor.QueryRowContext(ctx, query, teamID, userID).Scan(
		&member.ID,
		&member.TeamID,
		&member.UserID,
		&role,
		&member.JoinedAt,
	)
	if err != nil {
		return nil, normalizeError(err, "membership")
	}
	member.Role = domain.Role(role)
	return member, nil
}

// Upsert идемпотентно добавляет участника; при конфликте (team_id, user_id) обновляется роль
func (r *membershipRepository) Upsert(ctx context.Context, member *domain.TeamMember) error {
	if member.ID == "" {
		member.ID = newID()
	}

	query := `
		INSERT INTO team_members (id, team_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (team_id, user_id) DO UPDATE
		SET role = EXCLUDED.role
		RETURNING id, joined_at
	`

	err := r.executor.QueryRowContext(
		ctx,
		query,
		member.ID,
		member.TeamID,
		member.UserID,
		string(member.Role),
		time.Now(),
	).Scan(&member.ID, &member.JoinedAt)
	return normalizeError(err, "membership")
}

func (r *membershipRepository) Add(ctx context.Context, member *domain.TeamMember) error {
	if member.ID == "" {
		member.ID = newID()
	}

	query := `
		INSERT INTO team_members (id, team_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING joined_at
	`

	err := r.executor.QueryRowContext(
		ctx,
		query,
		member.ID,
		member.TeamID,
		member.UserID,
		string(member.Role),
		time.Now(),
	).Scan(&member.JoinedAt)
	return normalizeError(err, "membership")
}

func (r *membershipRepository) Remove(ctx context.Context, teamID, userID string) error {
	result, err := r.executor.ExecContext(
		ctx,
		"DELETE FROM team_members WHERE team_id = $1 AND user_id = $2",
		teamID,
		userID,
	)
	if err != nil {
		return normalizeError(err, "membership")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return normalizeError(err, "membership")
	}

	if rowsAffected == 0 {
		return domain.NewNotFoundError("membership")
	}

	return nil
}

func (r *membershipRepository) RemoveAllByTeam(ctx context.Context, teamID string) error {
	_, err := r.executor.ExecContext(ctx, "DELETE FROM team_members WHERE team_id = $1", teamID)
	return normalizeError(err, "team members")
}

func (r *membershipRepository) UpdateRole(ctx context.Context, teamID, userID string, role domain.Role) (*domain.TeamMember, error) {
	query := `
		UPDATE team_members
		SET role = $3
		WHERE team_id = $1 AND user_id = $2
		RETURNING id, team_id, user_id, role, joined_at
	`

	member := &domain.TeamMember{}
	var storedRole string
	err := r.executor.QueryRowContext(ctx, query, teamID, userID, string(role)).Scan(
		&member.ID,
		&member.TeamID,
		&member.UserID,
		&storedRole,
		&member.JoinedAt,
	)
	if err != nil {
		return nil, normalizeError(err, "membership")
	}
	member.Role = domain.Role(storedRole)
	return member, nil
}

func (r *membershipRepository) CountByTeam(ctx context.Context, teamID string) (int, error) {
	var count int
	err := r.executor.QueryRowContext(ctx, "SELECT COUNT(*) FROM team_members WHERE team_id = $1", teamID).Scan(&count)
	return count, normalizeError(err, "team members")
}
