package handler

import (
	"errors"
	"net/http"

	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/bagdasarian/team-dashboard/internal/logger"
	"go.uber.org/zap"
)

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		writeJSON(w, getStatusCode(domainErr.Code), ErrorResponse{
			Error: ErrorDetail{
				Code:    domainErr.Code,
				Message: domainErr.Message,
			},
		})
		return
	}

	logger.WithContext(r.Context(), h.logger).Error("unhandled error",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		},
	})
}

func getStatusCode(errorCode string) int {
	switch errorCode {
	case domain.CodeValidation, domain.CodeOwnerMembership:
		return http.StatusBadRequest
	case domain.CodeSession, domain.CodeInvalidCreds:
		return http.StatusUnauthorized
	case domain.CodeNotFound, domain.CodeUnknownTeam:
		return http.StatusNotFound
	case domain.CodeAlreadyMember, domain.CodeEmailTaken:
		return http.StatusConflict
	case domain.CodeNoActiveTeam:
		return http.StatusPreconditionFailed
	case domain.CodeRemote, domain.CodePartialFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
