package server

import (
	"net/http"

	"github.com/bagdasarian/team-dashboard/internal/handler"
)

func SetupRoutes(mux *http.ServeMux, h *handler.Handler) {
	mux.HandleFunc("POST /auth/signUp", h.SignUp)
	mux.HandleFunc("POST /auth/signIn", h.SignIn)
	mux.HandleFunc("POST /auth/signOut", h.SignOut)
	mux.HandleFunc("GET /auth/me", h.Me)

	mux.HandleFunc("GET /users", h.GetUsers)
	mux.HandleFunc("GET /users/get", h.GetUser)

	mux.HandleFunc("GET /teams", h.GetTeams)
	mux.HandleFunc("GET /teams/get", h.GetTeam)
	mux.HandleFunc("POST /teams/create", h.CreateTeam)
	mux.HandleFunc("POST /teams/update", h.UpdateTeam)
	mux.HandleFunc("POST /teams/delete", h.DeleteTeam)
	mux.HandleFunc("GET /teams/active", h.GetActiveTeam)
	mux.HandleFunc("POST /teams/active", h.SetActiveTeam)
	mux.HandleFunc("GET /teams/members", h.GetMembers)
	mux.HandleFunc("POST /teams/members/add", h.AddMember)
	mux.HandleFunc("POST /teams/members/remove", h.RemoveMember)
	mux.HandleFunc("POST /teams/members/role", h.UpdateMemberRole)

	mux.HandleFunc("GET /tasks", h.GetTasks)
	mux.HandleFunc("GET /tasks/board", h.GetTaskBoard)
	mux.HandleFunc("GET /tasks/get", h.GetTask)
	mux.HandleFunc("POST /tasks/create", h.CreateTask)
	mux.HandleFunc("POST /tasks/update", h.UpdateTask)
	mux.HandleFunc("POST /tasks/status", h.UpdateTaskStatus)
	mux.HandleFunc("POST /tasks/delete", h.DeleteTask)

	mux.HandleFunc("GET /meetings", h.GetMeetings)
	mux.HandleFunc("GET /meetings/get", h.GetMeeting)
	mux.HandleFunc("GET /meetings/upcoming", h.GetUpcomingMeetings)
	mux.HandleFunc("GET /meetings/past", h.GetPastMeetings)
	mux.HandleFunc("POST /meetings/create", h.CreateMeeting)
	mux.HandleFunc("POST /meetings/update", h.UpdateMeeting)
	mux.HandleFunc("POST /meetings/status", h.UpdateMeetingStatus)
	mux.HandleFunc("POST /meetings/transcript", h.AddTranscript)
	mux.HandleFunc("POST /meetings/video", h.AttachVideo)
	mux.HandleFunc("POST /meetings/delete", h.DeleteMeeting)

	mux.HandleFunc("GET /logs", h.GetLogs)
	mux.HandleFunc("GET /logs/get", h.GetLog)
	mux.HandleFunc("GET /logs/range", h.GetLogsByDateRange)
	mux.HandleFunc("GET /logs/tags", h.GetLogsByTags)
	mux.HandleFunc("GET /logs/search", h.SearchLogs)
	mux.HandleFunc("POST /logs/create", h.CreateLog)
	mux.HandleFunc("POST /logs/update", h.UpdateLog)
	mux.HandleFunc("POST /logs/delete", h.DeleteLog)

	mux.HandleFunc("GET /stats", h.GetStats)
	mux.HandleFunc("GET /notifications", h.GetNotifications)
}
