package domain

// TeamStats - счетчики для дашборда команды
type TeamStats struct {
	TeamID           string
	Tasks            map[TaskStatus]int
	Meetings         int
	UpcomingMeetings int
	Logs             int
	Members          int
}
