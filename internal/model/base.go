package model

import (
	"time"
)

// BaseModel 对应各表的 id + created_at 列
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
