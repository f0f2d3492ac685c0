package handler

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type IDRequest struct {
	ID string `json:"id"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse не содержит хеш пароля
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type TeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type TeamUpdateRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

type TeamResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	OwnerID     string `json:"owner_id"`
	CreatedAt   string `json:"created_at"`
}

type SetActiveTeamRequest struct {
	TeamID string `json:"team_id"`
}

type ActiveTeamResponse struct {
	Team *TeamResponse `json:"team"`
}

type MemberRequest struct {
	TeamID string `json:"team_id"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type MemberResponse struct {
	ID       string        `json:"id"`
	TeamID   string        `json:"team_id"`
	UserID   string        `json:"user_id"`
	Role     string        `json:"role"`
	JoinedAt string        `json:"joined_at"`
	User     *UserResponse `json:"user,omitempty"`
}

type TaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	AssigneeID  *string `json:"assignee_id"`
	DueDate     *string `json:"due_date"`
}

type TaskUpdateRequest struct {
	ID          string  `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	AssigneeID  *string `json:"assignee_id"`
	DueDate     *string `json:"due_date"`
}

type TaskStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type TaskResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Priority    string        `json:"priority"`
	TeamID      string        `json:"team_id"`
	CreatedBy   string        `json:"created_by"`
	AssigneeID  *string       `json:"assignee_id,omitempty"`
	DueDate     *string       `json:"due_date,omitempty"`
	CreatedAt   string        `json:"created_at"`
	Creator     *UserResponse `json:"creator,omitempty"`
	Assignee    *UserResponse `json:"assignee,omitempty"`
}

type TaskBoardResponse struct {
	Todo  []TaskResponse `json:"todo"`
	Doing []TaskResponse `json:"doing"`
	Done  []TaskResponse `json:"done"`
}

type MeetingRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	VideoURL    string `json:"video_url"`
	Transcript  string `json:"transcript"`
	Status      string `json:"status"`
}

type MeetingUpdateRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	VideoURL    *string `json:"video_url"`
	Transcript  *string `json:"transcript"`
	Status      *string `json:"status"`
}

type MeetingStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type TranscriptRequest struct {
	ID         string `json:"id"`
	Transcript string `json:"transcript"`
}

type VideoRequest struct {
	ID       string `json:"id"`
	VideoURL string `json:"video_url"`
}

type MeetingResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	VideoURL    string `json:"video_url,omitempty"`
	VideoID     string `json:"video_id,omitempty"`
	Transcript  string `json:"transcript,omitempty"`
	Status      string `json:"status"`
	TeamID      string `json:"team_id"`
	CreatedBy   string `json:"created_by"`
}

type LogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Tags    string `json:"tags"`
}

type LogUpdateRequest struct {
	ID      string  `json:"id"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Date    *string `json:"date"`
	Time    *string `json:"time"`
	Tags    *string `json:"tags"`
}

type LogResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Tags       string `json:"tags"`
	TeamID     string `json:"team_id"`
	CreatedBy  string `json:"created_by"`
	AuthorName string `json:"author_name"`
}

type StatsResponse struct {
	TeamID           string         `json:"team_id"`
	Tasks            map[string]int `json:"tasks"`
	Meetings         int            `json:"meetings"`
	UpcomingMeetings int            `json:"upcoming_meetings"`
	Logs             int            `json:"logs"`
	Members          int            `json:"members"`
}
