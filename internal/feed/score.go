package feed

import (
	"math"
	"time"
)

// 热度公式参数
const (
	// Gravity 时间重力，越大衰减越快
	Gravity = 1.5
	// AgeOffsetHours 分母偏移（小时），避免新帖除零并压制极端新鲜度优势
	AgeOffsetHours = 2.0
	// FollowBoost 关注加权倍数，只参与排序，不落库
	FollowBoost = 1.5
)

// BaseScore 计算帖子的基础热度分：likes / (小时数 + 2)^1.5
// 与排名服务落库的 hot_score 共用同一实现，保证游标边界两边口径一致。
// createdAt 晚于 now 时（客户端时钟偏差）按 0 小时处理。
func BaseScore(likeCount int, createdAt, now time.Time) float64 {
	hours := now.Sub(createdAt).Hours()
	if hours < 0 {
		hours = 0
	}
	return float64(likeCount) / math.Pow(hours+AgeOffsetHours, Gravity)
}

// PersonalizedScore 在基础分上叠加关注加权（仅热门流排序用）
func PersonalizedScore(likeCount int, createdAt, now time.Time, isFollowed bool) float64 {
	score := BaseScore(likeCount, createdAt, now)
	if isFollowed {
		return score * FollowBoost
	}
	return score
}
