package handler

import (
	"net/http"

	"github.com/bagdasarian/team-dashboard/internal/auth"
	"github.com/bagdasarian/team-dashboard/internal/domain"
)

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	session, err := h.auth.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionToHTTP(session))
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	session, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionToHTTP(session))
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context()); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.auth.CurrentUser()
	if user == nil {
		h.handleError(w, r, domain.ErrSession)
		return
	}
	writeJSON(w, http.StatusOK, domainUserToHTTP(user))
}

func sessionToHTTP(session *auth.Session) AuthResponse {
	return AuthResponse{
		Token:     session.Token,
		ExpiresAt: formatTime(session.ExpiresAt),
		User:      domainUserToHTTP(session.User),
	}
}
