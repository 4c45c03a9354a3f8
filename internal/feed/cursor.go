package feed

import (
	"strconv"
	"strings"
	"time"
)

// Cursor 续页游标：上一页最后一行的排序键 + 行 ID。
// 边界条件用严格小于；排序键相同时再按 ID 降序比较，
// 这样分数/时间完全相等的帖子也不会被跳过或重复。
type Cursor struct {
	HotScore  float64   // hot 模式的排序键
	CreatedAt time.Time // new / following 模式的排序键
	LastID    string
}

const cursorSep = "|"

// Encode 序列化为不透明字符串，格式 "<排序键>|<帖子ID>"
func (c Cursor) Encode(mode Mode) string {
	if mode == ModeHot {
		return strconv.FormatFloat(c.HotScore, 'g', -1, 64) + cursorSep + c.LastID
	}
	return c.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorSep + c.LastID
}

// ParseCursor 解析游标；格式不对一律按参数错误处理
func ParseCursor(mode Mode, raw string) (*Cursor, error) {
	key, id, ok := strings.Cut(raw, cursorSep)
	if !ok || key == "" || id == "" {
		return nil, &ValidationError{Field: "cursor", Reason: "游标格式错误"}
	}
	cur := &Cursor{LastID: id}
	if mode == ModeHot {
		score, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return nil, &ValidationError{Field: "cursor", Reason: "游标格式错误"}
		}
		cur.HotScore = score
		return cur, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, key)
	if err != nil {
		return nil, &ValidationError{Field: "cursor", Reason: "游标格式错误"}
	}
	cur.CreatedAt = ts
	return cur, nil
}
