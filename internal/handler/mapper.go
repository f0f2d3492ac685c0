package handler

import (
	"time"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func domainUserToHTTP(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}
}

func optionalUserToHTTP(user *domain.User) *UserResponse {
	if user == nil {
		return nil
	}
	response := domainUserToHTTP(user)
	return &response
}

func domainUsersToHTTP(users []*domain.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, domainUserToHTTP(user))
	}
	return result
}

func domainTeamToHTTP(team *domain.Team) TeamResponse {
	return TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		Color:       team.Color,
		OwnerID:     team.OwnerID,
		CreatedAt:   formatTime(team.CreatedAt),
	}
}

func domainTeamsToHTTP(teams []*domain.Team) []TeamResponse {
	result := make([]TeamResponse, 0, len(teams))
	for _, team := range teams {
		result = append(result, domainTeamToHTTP(team))
	}
	return result
}

func domainMemberToHTTP(member *domain.TeamMember) MemberResponse {
	return MemberResponse{
		ID:       member.ID,
		TeamID:   member.TeamID,
		UserID:   member.UserID,
		Role:     string(member.Role),
		JoinedAt: formatTime(member.JoinedAt),
		User:     optionalUserToHTTP(member.User),
	}
}

func domainMembersToHTTP(members []*domain.TeamMember) []MemberResponse {
	result := make([]MemberResponse, 0, len(members))
	for _, member := range members {
		result = append(result, domainMemberToHTTP(member))
	}
	return result
}

func domainTaskToHTTP(task *domain.Task) TaskResponse {
	var dueDate *string
	if task.DueDate != nil {
		formatted := task.DueDate.Format(time.DateOnly)
		dueDate = &formatted
	}

	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		TeamID:      task.TeamID,
		CreatedBy:   task.CreatedBy,
		AssigneeID:  task.AssigneeID,
		DueDate:     dueDate,
		CreatedAt:   formatTime(task.CreatedAt),
		Creator:     optionalUserToHTTP(task.Creator),
		Assignee:    optionalUserToHTTP(task.Assignee),
	}
}

func domainTasksToHTTP(tasks []*domain.Task) []TaskResponse {
	result := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, domainTaskToHTTP(task))
	}
	return result
}

func domainBoardToHTTP(board *domain.TaskBoard) TaskBoardResponse {
	return TaskBoardResponse{
		Todo:  domainTasksToHTTP(board.Todo),
		Doing: domainTasksToHTTP(board.Doing),
		Done:  domainTasksToHTTP(board.Done),
	}
}

func domainMeetingToHTTP(meeting *domain.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:          meeting.ID,
		Name:        meeting.Name,
		Description: meeting.Description,
		Date:        meeting.Date.Format(time.DateOnly),
		StartTime:   meeting.StartTime,
		EndTime:     meeting.EndTime,
		VideoURL:    meeting.VideoURL,
		VideoID:     meeting.VideoID,
		Transcript:  meeting.Transcript,
		Status:      string(meeting.Status),
		TeamID:      meeting.TeamID,
		CreatedBy:   meeting.CreatedBy,
	}
}

func domainMeetingsToHTTP(meetings []*domain.Meeting) []MeetingResponse {
	result := make([]MeetingResponse, 0, len(meetings))
	for _, meeting := range meetings {
		result = append(result, domainMeetingToHTTP(meeting))
	}
	return result
}

func domainLogToHTTP(entry *domain.Log) LogResponse {
	return LogResponse{
		ID:         entry.ID,
		Title:      entry.Title,
		Content:    entry.Content,
		Date:       entry.Date.Format(time.DateOnly),
		Time:       entry.Time,
		Tags:       entry.Tags,
		TeamID:     entry.TeamID,
		CreatedBy:  entry.CreatedBy,
		AuthorName: entry.AuthorName,
	}
}

func domainLogsToHTTP(entries []*domain.Log) []LogResponse {
	result := make([]LogResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, domainLogToHTTP(entry))
	}
	return result
}

func domainStatsToHTTP(stats *domain.TeamStats) StatsResponse {
	tasks := make(map[string]int, len(stats.Tasks))
	for status, count := range stats.Tasks {
		tasks[string(status)] = count
	}

	return StatsResponse{
		TeamID:           stats.TeamID,
		Tasks:            tasks,
		Meetings:         stats.Meetings,
		UpcomingMeetings: stats.UpcomingMeetings,
		Logs:             stats.Logs,
		Members:          stats.Members,
	}
}

func httpTaskToDomain(req TaskRequest) (domain.TaskInput, error) {
	dueDate, err := parseOptionalDate("due_date", req.DueDate)
	if err != nil {
		return domain.TaskInput{}, err
	}
	return domain.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.Priority(req.Priority),
		AssigneeID:  req.AssigneeID,
		DueDate:     dueDate,
	}, nil
}

func httpTaskUpdateToDomain(req TaskUpdateRequest) (domain.TaskUpdate, error) {
	dueDate, err := parseOptionalDate("due_date", req.DueDate)
	if err != nil {
		return domain.TaskUpdate{}, err
	}

	update := domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		DueDate:     dueDate,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		update.Status = &status
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		update.Priority = &priority
	}
	return update, nil
}

func httpMeetingToDomain(req MeetingRequest) (domain.MeetingInput, error) {
	var date time.Time
	if req.Date != "" {
		parsed, err := parseDate("date", req.Date)
		if err != nil {
			return domain.MeetingInput{}, err
		}
		date = parsed
	}
	return domain.MeetingInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		VideoURL:    req.VideoURL,
		Transcript:  req.Transcript,
		Status:      domain.MeetingStatus(req.Status),
	}, nil
}

func httpMeetingUpdateToDomain(req MeetingUpdateRequest) (domain.MeetingUpdate, error) {
	date, err := parseOptionalDate("date", req.Date)
	if err != nil {
		return domain.MeetingUpdate{}, err
	}

	update := domain.MeetingUpdate{
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		VideoURL:    req.VideoURL,
		Transcript:  req.Transcript,
	}
	if req.Status != nil {
		status := domain.MeetingStatus(*req.Status)
		update.Status = &status
	}
	return update, nil
}

func httpLogToDomain(req LogRequest) (domain.LogInput, error) {
	var date time.Time
	if req.Date != "" {
		parsed, err := parseDate("date", req.Date)
		if err != nil {
			return domain.LogInput{}, err
		}
		date = parsed
	}
	return domain.LogInput{
		Title:   req.Title,
		Content: req.Content,
		Date:    date,
		Time:    req.Time,
		Tags:    req.Tags,
	}, nil
}

func httpLogUpdateToDomain(req LogUpdateRequest) (domain.LogUpdate, error) {
	date, err := parseOptionalDate("date", req.Date)
	if err != nil {
		return domain.LogUpdate{}, err
	}
	return domain.LogUpdate{
		Title:   req.Title,
		Content: req.Content,
		Date:    date,
		Time:    req.Time,
		Tags:    req.Tags,
	}, nil
}
