package feed

import (
	"time"

	"wangwang/internal/models"
)

// Item 信息流里的一条帖子：落库字段 + 面向当前观看者的富集字段
type Item struct {
	models.Post
	IsLikedByViewer    bool `json:"is_liked_by_current_user"`
	IsFollowedByViewer bool `json:"is_followed_by_current_user"`
}

// Query 规划器产出的一次检索计划，由 Store 实现执行
type Query struct {
	Now            time.Time // expires_at > Now 过滤基准
	Mode           Mode      // 决定排序键（hot_score / created_at），均为降序，ID 降序兜底
	Polarity       Polarity  // PolarityAll 表示不过滤
	PetIDs         []string  // 非 nil 时限定 pet_id 白名单（物种过滤 / 关注流）
	ExcludePostIDs []string  // 热门流排除已点赞帖子
	Cursor         *Cursor   // nil 表示第一页
	Limit          int       // 含探测行（pageSize + 1）
}

// Store 持久化协作方契约。引擎自身不持有任何落库状态，
// 查询、点赞边、冗余计数全部经由该接口。
// 实现失败时应返回 *LoadError 以便区分网络与查询错误。
type Store interface {
	// CurrentViewerID 解析观看者身份；匿名时 ok 为 false
	CurrentViewerID() (id string, ok bool)

	QueryPosts(q Query) ([]Item, error)
	FollowedPetIDs(userID string) ([]string, error)
	// LikedPostIDs 取观看者点过赞的全部帖子 ID（热门流排除用）
	LikedPostIDs(userID string) ([]string, error)
	// LikedPostIDsAmong 只在给定帖子范围内查点赞（富集用）
	LikedPostIDsAmong(userID string, postIDs []string) ([]string, error)
	PetIDsBySpecies(species string) ([]string, error)

	InsertLike(postID, userID string) error
	DeleteLike(postID, userID string) error
	// 冗余计数调整，尽力而为；失败只记日志不回滚
	BumpUserLikes(userID string, delta int) error
	BumpPetLikes(petID string, delta int) error
}
