package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/app"
	"github.com/bagdasarian/team-dashboard/internal/auth"
	"github.com/bagdasarian/team-dashboard/internal/config"
	"github.com/bagdasarian/team-dashboard/internal/db"
	"github.com/bagdasarian/team-dashboard/internal/handler"
	"github.com/bagdasarian/team-dashboard/internal/handler/server"
	"github.com/bagdasarian/team-dashboard/internal/logger"
	"github.com/bagdasarian/team-dashboard/internal/repository/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	database := db.MustLoad(cfg, log)
	defer database.Close()

	redisClient := db.MustLoadRedis(cfg, log)
	defer redisClient.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	userRepo := postgres.NewUserRepository(database)

	sessions, err := auth.NewSessionStore(redisClient, cfg.Auth.SessionKey)
	if err != nil {
		log.Fatal("invalid session store configuration", zap.Error(err))
	}
	authService := auth.NewService(
		userRepo,
		sessions,
		auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL),
		cfg.Auth.SessionTTL,
		log.Named("auth"),
	)

	dashboard := app.New(app.Deps{
		Teams:       postgres.NewTeamRepository(database),
		Memberships: postgres.NewMembershipRepository(database),
		Users:       userRepo,
		Tasks:       postgres.NewTaskRepository(database),
		Meetings:    postgres.NewMeetingRepository(database),
		Logs:        postgres.NewLogRepository(database),
		Identity:    authService,
		Registerer:  registry,
		Logger:      log,
	})
	defer dashboard.Close()

	h := handler.NewHandler(dashboard, authService, log.Named("http"))
	srv := server.NewServer(h, cfg.Server.Addr, registry, log)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
}
