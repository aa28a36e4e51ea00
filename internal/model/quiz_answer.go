package model

import "time"

// QuizAnswer is one scored response inside an attempt. Rows are only ever inserted.
type QuizAnswer struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AttemptID     uint      `gorm:"not null;index" json:"attempt_id"`
	QuestionID    uint      `gorm:"not null;index" json:"question_id"`
	Question      *Question `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	SelectedIndex *int      `json:"selected_index"`
	Score         int       `gorm:"not null;default:0" json:"score"`
	AnsweredAt    time.Time `gorm:"not null" json:"answered_at"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
