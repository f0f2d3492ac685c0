package handler

import "net/http"

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.app.Users.GetUsers(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainUsersToHTTP(users))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := requiredParam(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.app.Users.GetUser(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainUserToHTTP(user))
}
