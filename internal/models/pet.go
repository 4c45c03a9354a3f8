package models

import (
	"time"
)

// Pet 宠物模型 - 帖子的主角（与发帖用户区分）
type Pet struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	UserID             string    `gorm:"not null;index;size:36" json:"user_id"`
	User               User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Name               string    `gorm:"not null;size:50" json:"name"`
	Species            string    `gorm:"not null;index;size:20" json:"species"` // 物种，取值见 utils.SpeciesOptions
	AvatarURL          string    `json:"avatar_url"`
	TotalLikesReceived int       `gorm:"default:0" json:"total_likes_received"`
	FollowerCount      int       `gorm:"default:0" json:"follower_count"`
	GoodBabyCrowns     int       `gorm:"default:0" json:"good_baby_crowns"` // 乖宝宝周冠军次数
	BadBabyCrowns      int       `gorm:"default:0" json:"bad_baby_crowns"`  // 坏宝宝周冠军次数
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
