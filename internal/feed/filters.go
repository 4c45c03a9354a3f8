package feed

import (
	"wangwang/internal/utils"
)

// Mode 信息流模式
type Mode string

const (
	ModeHot       Mode = "hot"       // 热门：按 hot_score 排序
	ModeNew       Mode = "new"       // 最新：按 created_at 排序
	ModeFollowing Mode = "following" // 关注：只看已关注宠物，按 created_at 排序
)

// Polarity 极性筛选：全部 / 乖宝宝 / 坏宝宝
type Polarity string

const (
	PolarityAll  Polarity = "all"
	PolarityGood Polarity = "good"
	PolarityBad  Polarity = "bad"
)

// Filters 一次请求的过滤条件，请求内不可变；
// 任一字段变化都会使旧游标失效并回到第一页（见 Session.SetFilters）。
type Filters struct {
	Mode     Mode     `json:"mode"`
	Polarity Polarity `json:"polarity"`
	Species  string   `json:"species,omitempty"` // 空串表示不过滤
}

func DefaultFilters() Filters {
	return Filters{Mode: ModeHot, Polarity: PolarityAll}
}

func (f Filters) Validate() error {
	switch f.Mode {
	case ModeHot, ModeNew, ModeFollowing:
	default:
		return &ValidationError{Field: "mode", Reason: "未知模式 " + string(f.Mode)}
	}
	switch f.Polarity {
	case PolarityAll, PolarityGood, PolarityBad:
	default:
		return &ValidationError{Field: "filter", Reason: "未知极性 " + string(f.Polarity)}
	}
	if f.Species != "" && !utils.IsValidSpecies(f.Species) {
		return &ValidationError{Field: "species", Reason: "未知物种 " + f.Species}
	}
	return nil
}
