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

var teamRowColumns = []string{"id", "name", "description", "color", "owner_id", "created_at", "updated_at"}

// setupTeamRepo создает мок БД и репозиторий для Team
func setupTeamRepo(t *testing.T) (*teamRepository, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	return NewTeamRepository(db), mock
}

func TestTeamRepository_ListByUser(t *testing.T) {
	t.Run("успешное получение команд пользователя", func(t *testing.T) {
		repo, mock := setupTeamRepo(t)
		ctx := context.Background()

		now := time.Now()
		rows := sqlmock.NewRows(teamRowColumns).
			AddRow("t2", "Beta", "", "#00f", "u1", now, nil).
			AddRow("t1", "Acme", "core team", "#f00", "u1", now.Add(-time.Hour), now)
		mock.ExpectQuery("SELECT (.+) FROM teams t JOIN team_members tm").
			WithArgs("u1").
			WillReturnRows(rows)

		// Выполнение
		teams, err := repo.ListByUser(ctx, "u1")

		// Проверки
		require.NoError(t, err)
		require.Len(t, teams, 2)
		assert.Equal(t, "t2", teams[0].ID)
		assert.Nil(t, teams[0].UpdatedAt)
		assert.Equal(t, "core team", teams[1].Description)
		assert.NotNil(t, teams[1].UpdatedAt)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("пустой список", func(t *testing.T) {
		repo, mock := setupTeamRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM teams t").
			WithArgs("u9").
			WillReturnRows(sqlmock.NewRows(teamRowColumns))

		teams, err := repo.ListByUser(context.Background(), "u9")

		require.NoError(t, err)
		assert.NotNil(t, teams)
		assert.Empty(t, teams)
	})

	t.Run("ошибка БД становится REMOTE", func(t *testing.T) {
		repo, mock := setupTeamRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM teams t").
			WithArgs("u1").
			WillReturnError(errors.New("permission denied for table teams"))

		teams, err := repo.ListByUser(context.Background(), "u1")

		require.Error(t, err)
		assert.Nil(t, teams)
		assert.True(t, errors.Is(err, domain.ErrRemote))
		assert.Equal(t, "permission denied for table teams", err.Error())
	})
}

func TestTeamRepository_GetByID(t *testing.T) {
	t.Run("успешное получение команды", func(t *testing.T) {
		repo, mock := setupTeamRepo(t)

		rows := sqlmock.NewRows(teamRowColumns).
			AddRow("t1", "Acme", "", "", "u1", time.Now(), nil)
		mock.ExpectQuery("SELECT (.+) FROM teams t WHERE t.id = \\$1").
			WithArgs("t1").
			WillReturnRows(rows)

		team, err := repo.GetByID(context.Background(), "t1")

		require.NoError(t, err)
		assert.Equal(t, "Acme", team.Name)
		assert.Equal(t, "u1", team.OwnerID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("команда не найдена", func(t *testing.T) {
		repo, mock := setupTeamRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM teams t").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(teamRowColumns))

		team, err := repo.GetByID(context.Background(), "missing")

		require.Error(t, err)
		assert.Nil(t, team)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestTeamRepository_Create(t *testing.T) {
	t.Run("успешное создание команды", func(t *testing.T) {
		repo, mock := setupTeamRepo(t)

		now := time.Now()
		team := &domain.Team{Name: "Acme", Color: "#f00", OwnerID: "u1"}

		mock.ExpectQuery("INSERT INTO teams").
			WithArgs(sqlmock.AnyArg(), "Acme", "", "#f00", "u1", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, nil))

		// Выполнение
		err := repo.Create(context.Background(), team)

		// Проверки
		require.NoError(t, err)
		assert.NotEmpty(t, team.ID, "идентификатор должен генерироваться на клиенте")
		assert.Equal(t, now, team.CreatedAt)
		assert.Nil(t, team.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("сохраняется переданный идентификатор", func(t *testing.T) {
		repo, mock := setupTeamRepo(t)

		team := &domain.Team{ID: "fixed", Name: "Acme", OwnerID: "u1"}

		mock.ExpectQuery("INSERT INTO teams").
			WithArgs("fixed", "Acme", "", "", "u1", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), nil))

		require.NoError(t, repo.Create(context.Background(), team))
		assert.Equal(t, "fixed", team.ID)
	})

	t.Run("ошибка: нарушение ограничения", func(t *testing.T) {
		repo, mock := setupTeamRepo(t)

		mock.ExpectQuery("INSERT INTO teams").
			WillReturnError(errors.New("insert or update on table \"teams\" violates foreign key constraint"))

		err := repo.Create(context.Background(), &domain.Team{Name: "Acme", OwnerID: "ghost"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrRemote))
	})
}

func TestTeamRepository_Update(t *testing.T) {
	t.Run("частичное обновление", func(t *testing.T) {
		repo, mock := setupTeamRepo(t)

		name := "Acme Corp"
		now := time.Now()
		rows := sqlmock.NewRows(teamRowColumns).
			AddRow("t1", "Acme Corp", "", "#f00", "u1", now.Add(-time.Hour), now)
		mock.ExpectQuery("UPDATE teams t SET name = \\$1, updated_at = \\$2 WHERE id = \\$3").
			WithArgs("Acme Corp", sqlmock.AnyArg(), "t1").
			WillReturnRows(rows)

		team, err := repo.Update(context.Background(), "t1", domain.TeamUpdate{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", team.Name)
		assert.NotNil(t, team.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("команда не найдена", func(t *testing.T) {
		repo, mock := setupTeamRepo(t)

		color := "#000"
		mock.ExpectQuery("UPDATE teams t").
			WithArgs("#000", sqlmock.AnyArg(), "missing").
			WillReturnRows(sqlmock.NewRows(teamRowColumns))

		team, err := repo.Update(context.Background(), "missing", domain.TeamUpdate{Color: &color})

		require.Error(t, err)
		assert.Nil(t, team)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestTeamRepository_Delete(t *testing.T) {
	t.Run("успешное удаление", func(t *testing.T) {
		repo, mock := setupTeamRepo(t)

		mock.ExpectExec("DELETE FROM teams WHERE id = \\$1").
			WithArgs("t1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), "t1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка бэкенда", func(t *testing.T) {
		repo, mock := setupTeamRepo(t)

		mock.ExpectExec("DELETE FROM teams").
			WithArgs("t1").
			WillReturnError(errors.New("update or delete on table \"teams\" violates foreign key constraint"))

		err := repo.Delete(context.Background(), "t1")

		assert.True(t, errors.Is(err, domain.ErrRemote))
	})
}
