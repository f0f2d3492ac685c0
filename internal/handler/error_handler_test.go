package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetStatusCode(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{domain.CodeValidation, http.StatusBadRequest},
		{domain.CodeOwnerMembership, http.StatusBadRequest},
		{domain.CodeSession, http.StatusUnauthorized},
		{domain.CodeInvalidCreds, http.StatusUnauthorized},
		{domain.CodeNotFound, http.StatusNotFound},
		{domain.CodeUnknownTeam, http.StatusNotFound},
		{domain.CodeAlreadyMember, http.StatusConflict},
		{domain.CodeEmailTaken, http.StatusConflict},
		{domain.CodeNoActiveTeam, http.StatusPreconditionFailed},
		{domain.CodeRemote, http.StatusBadGateway},
		{domain.CodePartialFailure, http.StatusBadGateway},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, getStatusCode(tt.code))
		})
	}
}

func TestHandleError(t *testing.T) {
	h := &Handler{logger: zap.NewNop()}

	t.Run("доменная ошибка", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)

		h.handleError(rec, req, domain.NewValidationError("title", "task title is required"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, domain.CodeValidation, body.Error.Code)
		assert.Equal(t, "title: task title is required", body.Error.Message)
	})

	t.Run("неизвестная ошибка скрывается", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)

		h.handleError(rec, req, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestParseDate(t *testing.T) {
	date, err := parseDate("date", "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 15, date.Day())

	_, err = parseDate("date", "15.03.2024")
	assert.ErrorIs(t, err, domain.ErrValidation)

	empty := ""
	parsed, err := parseOptionalDate("due_date", &empty)
	require.NoError(t, err)
	assert.Nil(t, parsed)
}
