package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKey_String(t *testing.T) {
	assert.Equal(t, "teams", TeamsKey().String())
	assert.Equal(t, "teams:t1:members", TeamMembersKey("t1").String())
	assert.Equal(t, "tasks-by-status:t1", TaskBoardKey("t1").String())
	assert.Equal(t, "logs:t1:range:2024-05-01:2024-05-07",
		LogsRangeKey("t1", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)).String())
}

func TestKey_Matches(t *testing.T) {
	tests := []struct {
		name    string
		pattern Key
		key     Key
		want    bool
	}{
		{"список команд покрывает участников", TeamsKey(), TeamMembersKey("t1"), true},
		{"ключ покрывает сам себя", TasksKey("t1"), TasksKey("t1"), true},
		{"другая команда", TasksKey("t1"), TasksKey("t2"), false},
		{"список задач не покрывает доску", TasksKey("t1"), TaskBoardKey("t1"), false},
		{"встречи покрывают ближайшие", MeetingsKey("t1"), UpcomingMeetingsKey("t1"), true},
		{"журнал покрывает поиск", LogsKey("t1"), LogsSearchKey("t1", "deploy"), true},
		{"более длинный шаблон", TeamMembersKey("t1"), TeamKey("t1"), false},
		{"сегменты сравниваются целиком", TasksKey("t1"), TasksKey("t10"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pattern.Matches(tt.key))
		})
	}
}
