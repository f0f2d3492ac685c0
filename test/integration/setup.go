//go:build integration
// +build integration

package integration

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bagdasarian/team-dashboard/internal/app"
	"github.com/bagdasarian/team-dashboard/internal/auth"
	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/bagdasarian/team-dashboard/internal/repository/postgres"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func setupTestDB(t *testing.T) *sql.DB {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:17.7",
		tcpostgres.WithDatabase("test_db"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	require.NoError(t, db.Ping())

	applyMigrations(t, db)

	t.Cleanup(func() {
		db.Close()
		require.NoError(t, container.Terminate(ctx))
	})

	return db
}

func applyMigrations(t *testing.T, db *sql.DB) {
	var migrationSQL []byte
	var err error

	paths := []string{
		filepath.Join("..", "..", "migrations", "000001_init.up.sql"),
		filepath.Join("migrations", "000001_init.up.sql"),
	}
	for _, path := range paths {
		migrationSQL, err = os.ReadFile(path)
		if err == nil {
			break
		}
	}
	require.NoError(t, err, "не удалось прочитать migrations/000001_init.up.sql")

	_, err = db.Exec(string(migrationSQL))
	require.NoError(t, err, "не удалось применить миграцию")
}

// fixedIdentity - пользователь, не прошедший через auth (например, отсутствующий в БД)
type fixedIdentity struct {
	mu   sync.Mutex
	user *domain.User
}

func (f *fixedIdentity) CurrentUser() *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}

func (f *fixedIdentity) Subscribe(func(*domain.User)) func() {
	return func() {}
}

type testEnv struct {
	db   *sql.DB
	app  *app.App
	auth *auth.Service
}

// setupEnv поднимает Postgres, miniredis и App поверх auth.Service
func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store, err := auth.NewSessionStore(client, "")
	require.NoError(t, err)

	users := postgres.NewUserRepository(db)
	authService := auth.NewService(users, store, auth.NewTokenIssuer("integration-secret", time.Hour), time.Hour, zap.NewNop())

	return &testEnv{
		db:   db,
		auth: authService,
		app:  newApp(t, db, authService),
	}
}

func newApp(t *testing.T, db *sql.DB, identity app.Identity) *app.App {
	t.Helper()

	a := app.New(app.Deps{
		Teams:       postgres.NewTeamRepository(db),
		Memberships: postgres.NewMembershipRepository(db),
		Users:       postgres.NewUserRepository(db),
		Tasks:       postgres.NewTaskRepository(db),
		Meetings:    postgres.NewMeetingRepository(db),
		Logs:        postgres.NewLogRepository(db),
		Identity:    identity,
		Registerer:  prometheus.NewRegistry(),
		Logger:      zap.NewNop(),
	})
	t.Cleanup(a.Close)
	return a
}
