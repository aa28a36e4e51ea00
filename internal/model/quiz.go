package model

type Quiz struct {
	BaseModel
	Title            string `gorm:"size:255;not null" json:"title"`
	Description      string `gorm:"type:text" json:"description"`
	CreatedBy        *uint  `gorm:"index" json:"created_by"`
	Creator          *User  `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL;" json:"-"`
	TimeLimitMinutes *int   `json:"time_limit_minutes"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion places a question in a quiz. A question appears at most once per quiz.
type QuizQuestion struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	QuizID     uint      `gorm:"not null;uniqueIndex:idx_quiz_question" json:"quiz_id"`
	Quiz       *Quiz     `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_quiz_question" json:"question_id"`
	Question   *Question `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Position   int       `gorm:"default:0" json:"position"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
