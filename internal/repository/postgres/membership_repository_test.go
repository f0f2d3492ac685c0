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

func setupMembershipRepo(t *testing.T) (*membershipRepository, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	return NewMembershipRepository(db), mock
}

func TestMembershipRepository_ListByTeam(t *testing.T) {
	repo, mock := setupMembershipRepo(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "team_id", "user_id", "role", "joined_at", "email", "name"}).
		AddRow("m1", "t1", "u1", "owner", now, "alice@example.com", "Alice").
		AddRow("m2", "t1", "u2", "member", now, "bob@example.com", "Bob")
	mock.ExpectQuery("SELECT (.+) FROM team_members tm JOIN users u").
		WithArgs("t1").
		WillReturnRows(rows)

	members, err := repo.ListByTeam(context.Background(), "t1")

	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, domain.RoleOwner, members[0].Role)
	assert.Equal(t, "Alice", members[0].User.Name)
	assert.Equal(t, "u2", members[1].User.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_Get(t *testing.T) {
	t.Run("участник найден", func(t *testing.T) {
		repo, mock := setupMembershipRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM team_members WHERE team_id = \\$1 AND user_id = \\$2").
			WithArgs("t1", "u1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "team_id", "user_id", "role", "joined_at"}).
				AddRow("m1", "t1", "u1", "admin", time.Now()))

		member, err := repo.Get(context.Background(), "t1", "u1")

		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, member.Role)
	})

	t.Run("участник не найден", func(t *testing.T) {
		repo, mock := setupMembershipRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM team_members").
			WithArgs("t1", "u9").
			WillReturnRows(sqlmock.NewRows([]string{"id", "team_id", "user_id", "role", "joined_at"}))

		_, err := repo.Get(context.Background(), "t1", "u9")

		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestMembershipRepository_Upsert(t *testing.T) {
	t.Run("идемпотентная вставка владельца", func(t *testing.T) {
		repo, mock := setupMembershipRepo(t)

		now := time.Now()
		member := &domain.TeamMember{TeamID: "t1", UserID: "u1", Role: domain.RoleOwner}

		mock.ExpectQuery("INSERT INTO team_members (.+) ON CONFLICT \\(team_id, user_id\\) DO UPDATE").
			WithArgs(sqlmock.AnyArg(), "t1", "u1", "owner", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "joined_at"}).AddRow("m-existing", now))

		err := repo.Upsert(context.Background(), member)

		require.NoError(t, err)
		assert.Equal(t, "m-existing", member.ID, "при конфликте возвращается существующая строка")
		assert.Equal(t, now, member.JoinedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка бэкенда", func(t *testing.T) {
		repo, mock := setupMembershipRepo(t)

		mock.ExpectQuery("INSERT INTO team_members").
			WillReturnError(errors.New("new row violates row-level security policy"))

		err := repo.Upsert(context.Background(), &domain.TeamMember{TeamID: "t1", UserID: "u1", Role: domain.RoleOwner})

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrRemote))
		assert.Equal(t, "new row violates row-level security policy", err.Error())
	})
}

func TestMembershipRepository_Add(t *testing.T) {
	repo, mock := setupMembershipRepo(t)

	member := &domain.TeamMember{TeamID: "t1", UserID: "u2", Role: domain.RoleMember}
	mock.ExpectQuery("INSERT INTO team_members").
		WithArgs(sqlmock.AnyArg(), "t1", "u2", "member", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"joined_at"}).AddRow(time.Now()))

	require.NoError(t, repo.Add(context.Background(), member))
	assert.NotEmpty(t, member.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_Remove(t *testing.T) {
	t.Run("успешное удаление", func(t *testing.T) {
		repo, mock := setupMembershipRepo(t)

		mock.ExpectExec("DELETE FROM team_members WHERE team_id = \\$1 AND user_id = \\$2").
			WithArgs("t1", "u2").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Remove(context.Background(), "t1", "u2"))
	})

	t.Run("участник не найден", func(t *testing.T) {
		repo, mock := setupMembershipRepo(t)

		mock.ExpectExec("DELETE FROM team_members").
			WithArgs("t1", "u9").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Remove(context.Background(), "t1", "u9")

		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestMembershipRepository_RemoveAllByTeam(t *testing.T) {
	repo, mock := setupMembershipRepo(t)

	mock.ExpectExec("DELETE FROM team_members WHERE team_id = \\$1").
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, repo.RemoveAllByTeam(context.Background(), "t1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_UpdateRole(t *testing.T) {
	repo, mock := setupMembershipRepo(t)

	mock.ExpectQuery("UPDATE team_members SET role = \\$3").
		WithArgs("t1", "u2", "admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "team_id", "user_id", "role", "joined_at"}).
			AddRow("m2", "t1", "u2", "admin", time.Now()))

	member, err := repo.UpdateRole(context.Background(), "t1", "u2", domain.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, member.Role)
}

func TestMembershipRepository_CountByTeam(t *testing.T) {
	repo, mock := setupMembershipRepo(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM team_members").
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountByTeam(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
