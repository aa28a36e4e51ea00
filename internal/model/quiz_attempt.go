package model

import (
	"time"

	"gorm.io/datatypes"
)

type AttemptStatus string

const (
	AttemptStarted  AttemptStatus = "started"
	AttemptFinished AttemptStatus = "finished"
)

// QuizAttempt 用户的一次答题记录
// quiz_id 可为空：测验被删除后记录仍然保留
type QuizAttempt struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint           `gorm:"not null;index:idx_attempt_user_started,priority:1" json:"user_id"`
	User       *User          `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	QuizID     *uint          `gorm:"index" json:"quiz_id"`
	Quiz       *Quiz          `gorm:"constraint:OnDelete:SET NULL;" json:"-"`
	StartedAt  time.Time      `gorm:"not null;index:idx_attempt_user_started,priority:2" json:"started_at"`
	FinishedAt *time.Time     `json:"finished_at"`
	TotalScore int            `gorm:"not null;default:0" json:"total_score"`
	Meta       datatypes.JSON `gorm:"type:json" json:"meta,omitempty"`
	Answers    []QuizAnswer   `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE;" json:"answers,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

func (a *QuizAttempt) Finished() bool {
	return a.FinishedAt != nil
}

func (a *QuizAttempt) Status() AttemptStatus {
	if a.Finished() {
		return AttemptFinished
	}
	return AttemptStarted
}
