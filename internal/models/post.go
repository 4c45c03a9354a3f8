package models

import (
	"time"

	"github.com/lib/pq"
)

// 帖子极性：乖宝宝 / 坏宝宝
const (
	PostTypeGood = "good"
	PostTypeBad  = "bad"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

type Post struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	UserID        string         `gorm:"not null;index;size:36" json:"user_id"`
	User          User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	PetID         string         `gorm:"not null;index;size:36" json:"pet_id"`
	Pet           Pet            `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"pet"`
	MediaType     string         `gorm:"not null;size:10" json:"media_type"` // image / video
	MediaURL      string         `gorm:"not null" json:"media_url"`          // 对象存储地址，上传由客户端完成
	ThumbnailURL  string         `json:"thumbnail_url"`
	VideoDuration *int           `json:"video_duration"` // 秒，仅视频
	Type          string         `gorm:"not null;index;size:10" json:"type"` // good / bad
	Tags          pq.StringArray `gorm:"type:text[]" json:"tags"`            // 最多 5 个，写入前去重并消毒
	LikeCount     int            `gorm:"default:0" json:"like_count"`
	HotScore      float64        `gorm:"default:0;index" json:"hot_score"` // 派生值，由排名服务重算，不允许手工赋值
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	ExpiresAt     time.Time      `gorm:"not null;index" json:"expires_at"` // 创建时间 + 保留窗口（默认 7 天）
	IsPinned      bool           `gorm:"default:false" json:"is_pinned"`
	IsWinner      bool           `gorm:"default:false" json:"is_winner"`
	IsChampion    bool           `gorm:"default:false;column:current_champion" json:"current_champion"`
}
