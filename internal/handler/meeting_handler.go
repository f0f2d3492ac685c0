package handler

import (
	"net/http"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

func (h *Handler) GetMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.app.Meetings.GetMeetings(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainMeetingsToHTTP(meetings))
}

func (h *Handler) GetUpcomingMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.app.Meetings.GetUpcoming(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainMeetingsToHTTP(meetings))
}

func (h *Handler) GetPastMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.app.Meetings.GetPast(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainMeetingsToHTTP(meetings))
}

func (h *Handler) GetMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := requiredParam(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	meeting, err := h.app.Meetings.GetMeeting(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainMeetingToHTTP(meeting))
}

func (h *Handler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req MeetingRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	input, err := httpMeetingToDomain(req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	meeting, err := h.app.Meetings.CreateMeeting(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, domainMeetingToHTTP(meeting))
}

func (h *Handler) UpdateMeeting(w http.ResponseWriter, r *http.Request) {
	var req MeetingUpdateRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := requiredID("id", req.ID); err != nil {
		h.handleError(w, r, err)
		return
	}

	update, err := httpMeetingUpdateToDomain(req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	meeting, err := h.app.Meetings.UpdateMeeting(r.Context(), req.ID, update)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainMeetingToHTTP(meeting))
}

func (h *Handler) UpdateMeetingStatus(w http.ResponseWriter, r *http.Request) {
	var req MeetingStatusRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := requiredID("id", req.ID); err != nil {
		h.handleError(w, r, err)
		return
	}

	meeting, err := h.app.Meetings.UpdateStatus(r.Context(), req.ID, domain.MeetingStatus(req.Status))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainMeetingToHTTP(meeting))
}

func (h *Handler) AddTranscript(w http.ResponseWriter, r *http.Request) {
	var req TranscriptRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := requiredID("id", req.ID); err != nil {
		h.handleError(w, r, err)
		return
	}

	meeting, err := h.app.Meetings.AddTranscript(r.Context(), req.ID, req.Transcript)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainMeetingToHTTP(meeting))
}

func (h *Handler) AttachVideo(w http.ResponseWriter, r *http.Request) {
	var req VideoRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := requiredID("id", req.ID); err != nil {
		h.handleError(w, r, err)
		return
	}

	meeting, err := h.app.Meetings.AttachVideo(r.Context(), req.ID, req.VideoURL)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainMeetingToHTTP(meeting))
}

func (h *Handler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	var req IDRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := requiredID("id", req.ID); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.app.Meetings.DeleteMeeting(r.Context(), req.ID); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
