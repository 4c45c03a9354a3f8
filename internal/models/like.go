package models

import (
	"time"
)

// Like 点赞关系 - (user, post) 最多一条，取消点赞即硬删除
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index;size:36;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    string    `gorm:"not null;index;size:36;uniqueIndex:idx_like_user_post" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
