package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("значения по умолчанию", func(t *testing.T) {
		t.Setenv("DB_HOST", "")
		t.Setenv("SESSION_TTL", "")

		cfg := Load()

		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	})

	t.Run("значения из окружения", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_NAME", "dash")
		t.Setenv("SESSION_TTL", "90m")
		t.Setenv("APP_ENV", "development")
		t.Setenv("SESSION_KEY", "00ff")

		cfg := Load()

		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "dash", cfg.Database.DBName)
		assert.Equal(t, 90*time.Minute, cfg.Auth.SessionTTL)
		assert.Equal(t, "development", cfg.Server.Env)
		assert.Equal(t, "00ff", cfg.Auth.SessionKey)
	})

	t.Run("некорректная длительность", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "forever")

		cfg := Load()

		assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "h",
		Port:     "5433",
		User:     "u",
		Password: "p",
		DBName:   "d",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=h port=5433 user=u password=p dbname=d sslmode=disable", cfg.DSN())
}
