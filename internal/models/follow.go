package models

import (
	"time"
)

// Follow 关注关系 - 用户关注某只宠物（而不是宠物主人）
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index;size:36;uniqueIndex:idx_follow_user_pet" json:"user_id"`
	PetID     string    `gorm:"not null;index;size:36;uniqueIndex:idx_follow_user_pet" json:"pet_id"`
	Pet       Pet       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
