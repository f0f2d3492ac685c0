package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/app"
	"github.com/bagdasarian/team-dashboard/internal/auth"
	"github.com/bagdasarian/team-dashboard/internal/domain"
	"go.uber.org/zap"
)

// Authenticator - операции входа, которые локальный API отдает слою представления
type Authenticator interface {
	SignUp(ctx context.Context, email, password, name string) (*auth.Session, error)
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
	SignOut(ctx context.Context) error
	CurrentUser() *domain.User
}

type Handler struct {
	app    *app.App
	auth   Authenticator
	logger *zap.Logger
}

func NewHandler(a *app.App, authenticator Authenticator, logger *zap.Logger) *Handler {
	return &Handler{
		app:    a,
		auth:   authenticator,
		logger: logger,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	return nil
}

// requiredParam читает обязательный query-параметр
func requiredParam(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return "", domain.NewValidationError(name, name+" parameter is required")
	}
	return value, nil
}

func requiredID(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, field+" is required")
	}
	return nil
}

// parseDate разбирает дату в формате YYYY-MM-DD
func parseDate(field, value string) (time.Time, error) {
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "invalid date format (YYYY-MM-DD)")
	}
	return date, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	date, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
