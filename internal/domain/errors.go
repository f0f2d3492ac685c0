package domain

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	CodeValidation      = "VALIDATION"
	CodeRemote          = "REMOTE"
	CodeNotFound        = "NOT_FOUND"
	CodePartialFailure  = "PARTIAL_FAILURE"
	CodeSession         = "SESSION"
	CodeNoActiveTeam    = "NO_ACTIVE_TEAM"
	CodeUnknownTeam     = "UNKNOWN_TEAM"
	CodeAlreadyMember   = "ALREADY_MEMBER"
	CodeOwnerMembership = "OWNER_MEMBERSHIP"
	CodeInvalidCreds    = "INVALID_CREDENTIALS"
	CodeEmailTaken      = "EMAIL_TAKEN"
)

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Это позволяет использовать errors.Is()
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	// ErrValidation - обязательное поле не заполнено или некорректно
	ErrValidation = &DomainError{
		Code:    CodeValidation,
		Message: "validation failed",
	}

	// ErrRemote - бэкенд отклонил запрос
	ErrRemote = &DomainError{
		Code:    CodeRemote,
		Message: "backend request failed",
	}

	// ErrNotFound - ресурс не найден
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "resource not found",
	}

	// ErrPartialFailure - составная операция выполнена частично
	ErrPartialFailure = &DomainError{
		Code:    CodePartialFailure,
		Message: "composite operation partially failed",
	}

	// ErrSession - нет аутентифицированного пользователя
	ErrSession = &DomainError{
		Code:    CodeSession,
		Message: "user not authenticated",
	}

	// ErrNoActiveTeam - активная команда не выбрана
	ErrNoActiveTeam = &DomainError{
		Code:    CodeNoActiveTeam,
		Message: "no team selected",
	}

	// ErrUnknownTeam - команда не входит в список известных команд
	ErrUnknownTeam = &DomainError{
		Code:    CodeUnknownTeam,
		Message: "team is not among the user's teams",
	}

	// ErrAlreadyMember - пользователь уже состоит в команде
	ErrAlreadyMember = &DomainError{
		Code:    CodeAlreadyMember,
		Message: "user is already a member of this team",
	}

	// ErrOwnerMembership - членство владельца нельзя удалить или понизить
	ErrOwnerMembership = &DomainError{
		Code:    CodeOwnerMembership,
		Message: "owner membership cannot be removed while the team exists",
	}

	// ErrInvalidCredentials - неверный email или пароль
	ErrInvalidCredentials = &DomainError{
		Code:    CodeInvalidCreds,
		Message: "invalid email or password",
	}

	// ErrEmailTaken - email уже зарегистрирован
	ErrEmailTaken = &DomainError{
		Code:    CodeEmailTaken,
		Message: "email already registered",
	}
)

// NewValidationError создает ошибку VALIDATION для конкретного поля
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("%s: %s", field, message),
	}
}

// NewNotFoundError создает ошибку NOT_FOUND с дополнительным контекстом
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewRemoteError приводит ошибку бэкенда к REMOTE, сохраняя сообщение бэкенда.
// Ошибки, уже являющиеся DomainError, возвращаются без изменений.
func NewRemoteError(err error) error {
	if err == nil {
		return nil
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	message := err.Error()
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		message = pgErr.Message
		if pgErr.Detail != "" {
			message += ": " + pgErr.Detail
		}
	}

	return &DomainError{
		Code:    CodeRemote,
		Message: message,
		Err:     err,
	}
}

// NewPartialFailureError создает ошибку PARTIAL_FAILURE для составной операции
func NewPartialFailureError(operation string, err error) *DomainError {
	return &DomainError{
		Code:    CodePartialFailure,
		Message: fmt.Sprintf("%s partially failed: %v", operation, err),
		Err:     err,
	}
}

// IsRemote сообщает, относится ли ошибка к ошибкам бэкенда
func IsRemote(err error) bool {
	return errors.Is(err, ErrRemote) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPartialFailure) ||
		errors.Is(err, ErrAlreadyMember) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrInvalidCredentials)
}
