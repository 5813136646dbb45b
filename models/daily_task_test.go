package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMandatoryDailyTasks(t *testing.T) {
	byID := map[string]DailyTaskTemplate{}
	for _, tmpl := range MandatoryDailyTasks {
		_, dup := byID[tmpl.TaskID]
		require.False(t, dup, tmpl.TaskID)
		byID[tmpl.TaskID] = tmpl
		assert.Greater(t, tmpl.TargetCount, 0, tmpl.TaskID)
		assert.NotEmpty(t, tmpl.Title, tmpl.TaskID)
	}

	// 线索操作的附带计数依赖这三个任务存在
	assert.Contains(t, byID, DailyTaskSubmitLeads)
	assert.Contains(t, byID, DailyTaskSendEmails)
	assert.Contains(t, byID, DailyTaskUpdateStatuses)

	// 提交配额是表单提交线索的目标值
	assert.Equal(t, 5, byID[DailyTaskSubmitLeads].TargetCount)
}
