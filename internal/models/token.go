package models

import (
	"time"
)

// AuthToken 访问令牌 - 由外部身份平台签发，本服务只做解析
// 表里存 sha256 摘要，不存明文
type AuthToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"not null;index;size:36" json:"user_id"`
	User      User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	TokenHash string     `gorm:"uniqueIndex;not null;size:64" json:"-"`
	ExpiresAt *time.Time `json:"expires_at"` // nil 表示长期有效
	CreatedAt time.Time  `json:"created_at"`
}
