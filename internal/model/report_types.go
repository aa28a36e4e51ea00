package model

import "time"

type UserPerformanceReport struct {
	UserID   uint          `json:"user_id"`
	QuizID   *uint         `json:"quiz_id,omitempty"`
	Attempts []QuizAttempt `json:"attempts"`
	Avg      float64       `json:"avg"`
}

type SkillGapFilter struct {
	UserID *uint
	QuizID *uint
	From   *time.Time
	To     *time.Time
}

type SkillGapRow struct {
	SkillID  uint    `json:"skill_id"`
	Skill    *string `json:"skill"`
	AvgScore float64 `json:"avg_score"`
}

type TimeSeriesPoint struct {
	Date     string  `json:"date"`
	Attempts int64   `json:"attempts"`
	AvgScore float64 `json:"avg_score"`
}

// AttemptScoreRow is the projection used to build the time series.
type AttemptScoreRow struct {
	StartedAt  time.Time
	TotalScore int
}
