package feed

import (
	"sort"
	"time"
)

// DefaultPageSize 每页条数，与移动端一致
const DefaultPageSize = 10

// Page 一页结果。NextCursor 只在 HasMore 为 true 时有意义。
type Page struct {
	Items      []Item `json:"posts"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// FetchPage 按过滤条件取一页信息流。
// 规划顺序：解析观看者 → 关注集 → 物种白名单 → 已赞排除 → 查询 → 切页 → 富集 → 加权重排。
func FetchPage(s Store, f Filters, cursorStr string, pageSize int) (Page, error) {
	return fetchPageAt(s, f, cursorStr, pageSize, time.Now())
}

func fetchPageAt(s Store, f Filters, cursorStr string, pageSize int, now time.Time) (Page, error) {
	if err := f.Validate(); err != nil {
		return Page{}, err
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var cursor *Cursor
	if cursorStr != "" {
		c, err := ParseCursor(f.Mode, cursorStr)
		if err != nil {
			return Page{}, err
		}
		cursor = c
	}

	viewerID, authed := s.CurrentViewerID()

	// 关注集：关注流和热门加权都要用，匿名观看者恒为空
	var followed []string
	if authed {
		ids, err := s.FollowedPetIDs(viewerID)
		if err != nil {
			return Page{}, err
		}
		followed = ids
	}

	// 关注流但没关注任何宠物：定义好的空终态，不发查询
	if f.Mode == ModeFollowing && len(followed) == 0 {
		return emptyPage(), nil
	}

	// 物种是宠物的属性而非帖子的属性，不能直接下推成单表谓词，
	// 先解析成宠物 ID 白名单；白名单为空则直接返回空页
	var petIDs []string
	if f.Species != "" {
		ids, err := s.PetIDsBySpecies(f.Species)
		if err != nil {
			return Page{}, err
		}
		if len(ids) == 0 {
			return emptyPage(), nil
		}
		petIDs = ids
	}
	if f.Mode == ModeFollowing {
		if petIDs != nil {
			petIDs = intersect(petIDs, followed)
			if len(petIDs) == 0 {
				return emptyPage(), nil
			}
		} else {
			petIDs = followed
		}
	}

	// 热门流对已登录观看者排除点过赞的帖子，让刷到的内容保持新鲜
	var exclude []string
	if f.Mode == ModeHot && authed {
		liked, err := s.LikedPostIDs(viewerID)
		if err != nil {
			return Page{}, err
		}
		exclude = liked
	}

	rows, err := s.QueryPosts(Query{
		Now:            now,
		Mode:           f.Mode,
		Polarity:       f.Polarity,
		PetIDs:         petIDs,
		ExcludePostIDs: exclude,
		Cursor:         cursor,
		Limit:          pageSize + 1, // 多取一行探测是否还有下一页
	})
	if err != nil {
		return Page{}, err
	}

	hasMore := len(rows) > pageSize
	if hasMore {
		rows = rows[:pageSize] // 探测行不返回
	}

	// 游标取自本页最后一条“返回行”的排序键（存储序），探测行不算；
	// 必须在加权重排之前计算，保证与落库排序键口径一致
	nextCursor := ""
	if len(rows) > 0 {
		last := rows[len(rows)-1]
		nextCursor = Cursor{
			HotScore:  last.HotScore,
			CreatedAt: last.CreatedAt,
			LastID:    last.ID,
		}.Encode(f.Mode)
	}

	// 富集：是否已赞（热门流已在查询侧排除，恒为 false）、是否已关注
	likedSet := map[string]bool{}
	if f.Mode != ModeHot && authed && len(rows) > 0 {
		ids := make([]string, len(rows))
		for i, it := range rows {
			ids[i] = it.ID
		}
		liked, err := s.LikedPostIDsAmong(viewerID, ids)
		if err != nil {
			return Page{}, err
		}
		for _, id := range liked {
			likedSet[id] = true
		}
	}
	followedSet := make(map[string]bool, len(followed))
	for _, id := range followed {
		followedSet[id] = true
	}
	for i := range rows {
		rows[i].IsLikedByViewer = likedSet[rows[i].ID]
		rows[i].IsFollowedByViewer = followedSet[rows[i].PetID]
	}

	// 热门流对已登录观看者做关注加权重排：只调整页内展示顺序，
	// 不改落库分数，也不影响已经算好的游标
	if f.Mode == ModeHot && authed && len(followedSet) > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			si := PersonalizedScore(rows[i].LikeCount, rows[i].CreatedAt, now, rows[i].IsFollowedByViewer)
			sj := PersonalizedScore(rows[j].LikeCount, rows[j].CreatedAt, now, rows[j].IsFollowedByViewer)
			return si > sj
		})
	}

	return Page{Items: rows, NextCursor: nextCursor, HasMore: hasMore}, nil
}

func emptyPage() Page {
	return Page{Items: []Item{}, HasMore: false}
}

func intersect(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, v := range b {
		set[v] = true
	}
	out := make([]string, 0, len(a))
	for _, v := range a {
		if set[v] {
			out = append(out, v)
		}
	}
	return out
}
