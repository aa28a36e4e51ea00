package model

type Question struct {
	BaseModel
	SkillID      uint       `gorm:"not null;index" json:"skill_id"`
	Skill        *Skill     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Question     string     `gorm:"type:text;not null" json:"question"`
	Options      OptionList `gorm:"not null" json:"options"`
	CorrectIndex int        `gorm:"not null" json:"correct_index"`
	Difficulty   int        `gorm:"default:1" json:"difficulty"`
}

func (Question) TableName() string {
	return "questions"
}
