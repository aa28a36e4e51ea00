package model

type Skill struct {
	BaseModel
	Name        string `gorm:"size:191;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Skill) TableName() string {
	return "skills"
}
