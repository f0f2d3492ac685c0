package handler

import (
	"net/http"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

func (h *Handler) GetTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.app.Tasks.GetTasks(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainTasksToHTTP(tasks))
}

func (h *Handler) GetTaskBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.app.Tasks.GetTaskBoard(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainBoardToHTTP(board))
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := requiredParam(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	task, err := h.app.Tasks.GetTask(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainTaskToHTTP(task))
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	input, err := httpTaskToDomain(req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	task, err := h.app.Tasks.CreateTask(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, domainTaskToHTTP(task))
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskUpdateRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := requiredID("id", req.ID); err != nil {
		h.handleError(w, r, err)
		return
	}

	update, err := httpTaskUpdateToDomain(req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	task, err := h.app.Tasks.UpdateTask(r.Context(), req.ID, update)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainTaskToHTTP(task))
}

func (h *Handler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req TaskStatusRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := requiredID("id", req.ID); err != nil {
		h.handleError(w, r, err)
		return
	}

	task, err := h.app.Tasks.UpdateTaskStatus(r.Context(), req.ID, domain.TaskStatus(req.Status))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainTaskToHTTP(task))
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	var req IDRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := requiredID("id", req.ID); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.app.Tasks.DeleteTask(r.Context(), req.ID); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
