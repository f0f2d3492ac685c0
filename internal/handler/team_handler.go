package handler

import (
	"net/http"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.app.Teams.GetTeams(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainTeamsToHTTP(teams))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := requiredParam(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	team, err := h.app.Teams.GetTeam(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainTeamToHTTP(team))
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	team, err := h.app.Teams.CreateTeam(r.Context(), domain.TeamInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, domainTeamToHTTP(team))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamUpdateRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := requiredID("id", req.ID); err != nil {
		h.handleError(w, r, err)
		return
	}

	team, err := h.app.Teams.UpdateTeam(r.Context(), req.ID, domain.TeamUpdate{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainTeamToHTTP(team))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	var req IDRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := requiredID("id", req.ID); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.app.Teams.DeleteTeam(r.Context(), req.ID); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetActiveTeam(w http.ResponseWriter, r *http.Request) {
	var response ActiveTeamResponse
	if team := h.app.ActiveTeam(); team != nil {
		dto := domainTeamToHTTP(team)
		response.Team = &dto
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) SetActiveTeam(w http.ResponseWriter, r *http.Request) {
	var req SetActiveTeamRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.app.SetActiveTeam(req.TeamID); err != nil {
		h.handleError(w, r, err)
		return
	}
	h.GetActiveTeam(w, r)
}

func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	teamID, err := requiredParam(r, "team_id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	members, err := h.app.Teams.GetMembers(r.Context(), teamID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainMembersToHTTP(members))
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := requiredID("team_id", req.TeamID); err != nil {
		h.handleError(w, r, err)
		return
	}

	member, err := h.app.Teams.AddMember(r.Context(), req.TeamID, req.UserID, domain.Role(req.Role))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, domainMemberToHTTP(member))
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := requiredID("team_id", req.TeamID); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.app.Teams.RemoveMember(r.Context(), req.TeamID, req.UserID); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := requiredID("team_id", req.TeamID); err != nil {
		h.handleError(w, r, err)
		return
	}

	member, err := h.app.Teams.UpdateMemberRole(r.Context(), req.TeamID, req.UserID, domain.Role(req.Role))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainMemberToHTTP(member))
}
