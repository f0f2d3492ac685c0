package handler

import (
	"net/http"
	"strings"
)

func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.app.Logs.GetLogs(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainLogsToHTTP(logs))
}

func (h *Handler) GetLog(w http.ResponseWriter, r *http.Request) {
	id, err := requiredParam(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	entry, err := h.app.Logs.GetLog(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainLogToHTTP(entry))
}

// GetLogsByDateRange - GET /logs/range?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) GetLogsByDateRange(w http.ResponseWriter, r *http.Request) {
	fromParam, err := requiredParam(r, "from")
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	toParam, err := requiredParam(r, "to")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	from, err := parseDate("from", fromParam)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	to, err := parseDate("to", toParam)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	logs, err := h.app.Logs.GetByDateRange(r.Context(), from, to)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainLogsToHTTP(logs))
}

// GetLogsByTags - GET /logs/tags?tags=release,bug
func (h *Handler) GetLogsByTags(w http.ResponseWriter, r *http.Request) {
	tags := strings.Split(r.URL.Query().Get("tags"), ",")

	logs, err := h.app.Logs.GetByTags(r.Context(), tags)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainLogsToHTTP(logs))
}

func (h *Handler) SearchLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.app.Logs.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainLogsToHTTP(logs))
}

func (h *Handler) CreateLog(w http.ResponseWriter, r *http.Request) {
	var req LogRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	input, err := httpLogToDomain(req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	entry, err := h.app.Logs.CreateLog(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, domainLogToHTTP(entry))
}

func (h *Handler) UpdateLog(w http.ResponseWriter, r *http.Request) {
	var req LogUpdateRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := requiredID("id", req.ID); err != nil {
		h.handleError(w, r, err)
		return
	}

	update, err := httpLogUpdateToDomain(req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	entry, err := h.app.Logs.UpdateLog(r.Context(), req.ID, update)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainLogToHTTP(entry))
}

func (h *Handler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	var req IDRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := requiredID("id", req.ID); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.app.Logs.DeleteLog(r.Context(), req.ID); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
