package tasks

import (
	"time"

	"bizledger/internal/core"
)

const day = 24 * time.Hour

// SampleTasks is the illustrative task list a fresh install starts with.
// Due dates are relative to now.
func SampleTasks(newID func() string, now time.Time) []core.Task {
	due := func(offset time.Duration) core.Date {
		return core.Date{Time: now.Add(offset)}
	}
	return []core.Task{
		{
			ID:          newID(),
			Title:       "프로젝트 계획서 작성",
			Description: "다음 분기 프로젝트 계획서를 작성하고 팀과 공유해야 합니다.",
			Priority:    core.PriorityHigh,
			Status:      core.StatusInProgress,
			DueDate:     due(2 * day),
			Category:    "업무",
		},
		{
			ID:          newID(),
			Title:       "주간 회의 준비",
			Description: "내일 주간 회의 자료를 준비하고 참석자들에게 의제를 공유합니다.",
			Priority:    core.PriorityMedium,
			Status:      core.StatusPending,
			DueDate:     due(day),
			Category:    "회의",
		},
		{
			ID:          newID(),
			Title:       "운동 가기",
			Description: "오후 7시에 헬스장에서 1시간 운동하기",
			Priority:    core.PriorityLow,
			Status:      core.StatusPending,
			DueDate:     due(0),
			Category:    "건강",
		},
		{
			ID:          newID(),
			Title:       "식료품 쇼핑",
			Description: "주중 식사를 위한 식료품 쇼핑하기",
			Priority:    core.PriorityMedium,
			Status:      core.StatusCompleted,
			DueDate:     due(-day),
			Category:    "개인",
		},
		{
			ID:          newID(),
			Title:       "프론트엔드 버그 수정",
			Description: "사용자 프로필 페이지에서 발생하는 렌더링 문제 해결하기",
			Priority:    core.PriorityHigh,
			Status:      core.StatusPending,
			DueDate:     due(3 * day),
			Category:    "개발",
		},
	}
}
