package models

import (
	"time"
)

type User struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	DisplayName        string    `gorm:"not null;size:50" json:"display_name"`
	AvatarURL          string    `json:"avatar_url"`
	TotalLikesReceived int       `gorm:"default:0" json:"total_likes_received"` // 累计获赞数（冗余计数，允许少量漂移）
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// 非数据库字段，用于 /me 接口填充
	Pets []Pet `gorm:"-" json:"pets,omitempty"`
}
