package handler

import (
	"net/http"

	"github.com/bagdasarian/team-dashboard/internal/service"
)

// GetStats возвращает счетчики активной команды; без активной команды - null
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.app.Stats.GetTeamStats(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if stats == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, domainStatsToHTTP(stats))
}

func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	items := h.app.Notifier.Recent()
	if items == nil {
		items = []service.Notification{}
	}
	writeJSON(w, http.StatusOK, items)
}
