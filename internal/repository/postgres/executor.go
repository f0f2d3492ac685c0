package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/google/uuid"
)

// DBExecutor - общий интерфейс *sql.DB и *sql.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner - общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// newID генерирует идентификатор строки (UUID v7 упорядочен по времени)
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

// normalizeError переводит ошибку драйвера в доменную; sql.ErrNoRows становится NOT_FOUND
func normalizeError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError(resource)
	}
	return domain.NewRemoteError(err)
}

// setClause собирает SET часть UPDATE для частичного обновления
type setClause struct {
	columns []string
	args    []any
}

func (s *setClause) add(column string, value any) {
	s.args = append(s.args, value)
	s.columns = append(s.columns, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

// build возвращает UPDATE ... WHERE id = $n RETURNING returning; updated_at обновляется всегда
func (s *setClause) build(table string, id string, returning string) (string, []any) {
	s.add("updated_at", time.Now())
	args := append(s.args, id)
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table,
		strings.Join(s.columns, ", "),
		len(args),
		returning,
	)
	return query, args
}
