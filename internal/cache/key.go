package cache

import (
	"strings"
	"time"
)

const keySeparator = ":"

// Key идентифицирует запись кэша: вид ресурса и параметры области видимости
type Key struct {
	Resource string
	Scope    []string
}

func NewKey(resource string, scope ...string) Key {
	return Key{Resource: resource, Scope: scope}
}

func (k Key) String() string {
	return strings.Join(k.segments(), keySeparator)
}

func (k Key) segments() []string {
	return append([]string{k.Resource}, k.Scope...)
}

// Matches сообщает, покрывает ли шаблон k ключ other: сегменты other начинаются с сегментов k
func (k Key) Matches(other Key) bool {
	pattern := k.segments()
	target := other.segments()
	if len(pattern) > len(target) {
		return false
	}
	for i, segment := range pattern {
		if target[i] != segment {
			return false
		}
	}
	return true
}

const (
	ResourceTeams    = "teams"
	ResourceTasks    = "tasks"
	ResourceTask     = "task"
	ResourceBoard    = "tasks-by-status"
	ResourceMeetings = "meetings"
	ResourceMeeting  = "meeting"
	ResourceLogs     = "logs"
	ResourceLog      = "log"
	ResourceStats    = "stats"
)

// TeamsKey покрывает все ключи команд, включая детали и участников
func TeamsKey() Key { return NewKey(ResourceTeams) }

func TeamKey(id string) Key { return NewKey(ResourceTeams, id) }

func TeamMembersKey(teamID string) Key { return NewKey(ResourceTeams, teamID, "members") }

func TasksKey(teamID string) Key { return NewKey(ResourceTasks, teamID) }

// TaskBoardKey - отдельный ключ группировки задач по статусам
func TaskBoardKey(teamID string) Key { return NewKey(ResourceBoard, teamID) }

func TaskKey(id string) Key { return NewKey(ResourceTask, id) }

// MeetingsKey как шаблон покрывает также ближайшие и прошедшие встречи команды
func MeetingsKey(teamID string) Key { return NewKey(ResourceMeetings, teamID) }

func UpcomingMeetingsKey(teamID string) Key { return NewKey(ResourceMeetings, teamID, "upcoming") }

func PastMeetingsKey(teamID string) Key { return NewKey(ResourceMeetings, teamID, "past") }

func MeetingKey(id string) Key { return NewKey(ResourceMeeting, id) }

// LogsKey как шаблон покрывает все фильтрованные выборки журнала команды
func LogsKey(teamID string) Key { return NewKey(ResourceLogs, teamID) }

func LogsRangeKey(teamID string, from, to time.Time) Key {
	return NewKey(ResourceLogs, teamID, "range", from.Format(time.DateOnly), to.Format(time.DateOnly))
}

func LogsTagsKey(teamID string, tags []string) Key {
	return NewKey(ResourceLogs, teamID, "tags", strings.Join(tags, ","))
}

func LogsSearchKey(teamID, term string) Key {
	return NewKey(ResourceLogs, teamID, "search", term)
}

func LogKey(id string) Key { return NewKey(ResourceLog, id) }

func StatsKey(teamID string) Key { return NewKey(ResourceStats, teamID) }

const ResourceUsers = "users"

func UsersKey() Key { return NewKey(ResourceUsers) }
