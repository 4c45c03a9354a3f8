package feed

import (
	"log"
	"sync"
	"time"
)

// LikeDebounce 同一帖子两次点赞切换之间的最小间隔
const LikeDebounce = 500 * time.Millisecond

// State 会话状态快照，供上层展示
type State struct {
	Items         []Item
	Filters       Filters
	HasMore       bool
	IsLoading     bool
	IsRefreshing  bool
	IsLoadingMore bool
	Err           error
}

// Session 信息流会话：由调用方持有的显式状态对象（不做全局单例）。
// 串行化加载状态机：Idle → Loading → Ready ⇄ LoadingMore；
// 同一会话同时只允许一个加载在途，后到的请求直接丢弃而不是排队。
// 点赞切换独立于加载，带防抖、乐观更新与失败回滚。
type Session struct {
	mu    sync.Mutex
	store Store

	pageSize int
	filters  Filters
	items    []Item
	cursor   string
	hasMore  bool

	loading     bool
	refreshing  bool
	loadingMore bool
	err         error

	// gen 过滤条件的代数，过滤变化后在途请求的结果一律作废
	gen int

	// likePending 帖子 ID → 最近一次接受切换的时间，懒清理，不起定时器。
	// 这是引擎里唯一的共享可变防抖状态，由 mu 保护。
	likePending map[string]time.Time

	nowFn func() time.Time
	wg    sync.WaitGroup // 跟踪在途的点赞写入，测试用
}

func NewSession(store Store, pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Session{
		store:       store,
		pageSize:    pageSize,
		filters:     DefaultFilters(),
		hasMore:     true,
		likePending: make(map[string]time.Time),
		nowFn:       time.Now,
	}
}

// State 返回当前快照（items 拷贝，调用方可随意持有）
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return State{
		Items:         items,
		Filters:       s.filters,
		HasMore:       s.hasMore,
		IsLoading:     s.loading,
		IsRefreshing:  s.refreshing,
		IsLoadingMore: s.loadingMore,
		Err:           s.err,
	}
}

// Load 加载第一页，替换当前内容。
// 首屏失败进入无内容的错误态；已有加载在途时本次请求被丢弃。
func (s *Session) Load() error {
	s.mu.Lock()
	if s.inFlight() {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.err = nil
	f, gen := s.filters, s.gen
	s.mu.Unlock()

	page, err := fetchPageAt(s.store, f, "", s.pageSize, s.nowFn())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if gen != s.gen {
		// 在途期间过滤条件变了，结果作废
		return nil
	}
	if err != nil {
		s.err = err
		s.items = nil
		s.cursor = ""
		s.hasMore = false
		return err
	}
	s.items = page.Items
	s.cursor = page.NextCursor
	s.hasMore = page.HasMore
	return nil
}

// Refresh 重新拉取第一页；失败时保留已有内容
func (s *Session) Refresh() error {
	s.mu.Lock()
	if s.inFlight() {
		s.mu.Unlock()
		return nil
	}
	s.refreshing = true
	s.err = nil
	f, gen := s.filters, s.gen
	s.mu.Unlock()

	page, err := fetchPageAt(s.store, f, "", s.pageSize, s.nowFn())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshing = false
	if gen != s.gen {
		return nil
	}
	if err != nil {
		s.err = err
		return err
	}
	s.items = page.Items
	s.cursor = page.NextCursor
	s.hasMore = page.HasMore
	return nil
}

// LoadMore 用游标追加下一页；没有下一页或已有加载在途时直接返回
func (s *Session) LoadMore() error {
	s.mu.Lock()
	if s.inFlight() || !s.hasMore || s.cursor == "" {
		s.mu.Unlock()
		return nil
	}
	s.loadingMore = true
	f, cur, gen := s.filters, s.cursor, s.gen
	s.mu.Unlock()

	page, err := fetchPageAt(s.store, f, cur, s.pageSize, s.nowFn())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadingMore = false
	if gen != s.gen {
		return nil
	}
	if err != nil {
		s.err = err
		return err
	}
	s.items = append(s.items, page.Items...)
	s.cursor = page.NextCursor
	s.hasMore = page.HasMore
	return nil
}

// SetFilters 更新过滤条件并重新加载第一页。
// 任何字段变化都会清空内容、作废旧游标与在途请求的结果。
func (s *Session) SetFilters(f Filters) error {
	if err := f.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.filters = f
	s.items = nil
	s.cursor = ""
	s.hasMore = true
	s.err = nil
	s.gen++
	s.mu.Unlock()
	return s.Load()
}

// ToggleLike 切换观看者对某帖的点赞。
// 未登录静默忽略；500ms 内对同一帖子的重复请求整体丢弃（不做乐观更新也不发写入）；
// 乐观更新同步生效，权威写入异步执行，失败时精确回滚。
func (s *Session) ToggleLike(postID string) {
	viewerID, ok := s.store.CurrentViewerID()
	if !ok {
		return // 未登录本来就不能点赞，不算错误
	}

	s.mu.Lock()
	idx := s.indexOf(postID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	now := s.nowFn()
	// 懒清理：顺手丢掉已过窗口的防抖记录
	for id, t := range s.likePending {
		if now.Sub(t) >= LikeDebounce {
			delete(s.likePending, id)
		}
	}
	if t, exists := s.likePending[postID]; exists && now.Sub(t) < LikeDebounce {
		s.mu.Unlock()
		return
	}
	s.likePending[postID] = now

	item := &s.items[idx]
	wasLiked := item.IsLikedByViewer
	ownerID, petID := item.UserID, item.PetID

	// 乐观更新：先让界面立即变化，再和权威状态对账
	item.IsLikedByViewer = !wasLiked
	if wasLiked {
		item.LikeCount--
	} else {
		item.LikeCount++
	}
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		var err error
		if wasLiked {
			err = s.store.DeleteLike(postID, viewerID)
		} else {
			err = s.store.InsertLike(postID, viewerID)
		}
		if err != nil {
			// 权威写入失败：回滚到上一个已知正确的状态
			s.mu.Lock()
			if i := s.indexOf(postID); i >= 0 {
				it := &s.items[i]
				it.IsLikedByViewer = wasLiked
				if wasLiked {
					it.LikeCount++
				} else {
					it.LikeCount--
				}
			}
			s.mu.Unlock()
			log.Printf("点赞写入失败已回滚 post=%s: %v", postID, err)
			return
		}

		// 作者和宠物的累计获赞是冗余计数，失败只记日志，不影响点赞本身
		delta := 1
		if wasLiked {
			delta = -1
		}
		if err := s.store.BumpUserLikes(ownerID, delta); err != nil {
			log.Printf("用户获赞计数更新失败 user=%s: %v", ownerID, err)
		}
		if err := s.store.BumpPetLikes(petID, delta); err != nil {
			log.Printf("宠物获赞计数更新失败 pet=%s: %v", petID, err)
		}
	}()
}

// Filters 返回当前过滤条件
func (s *Session) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *Session) inFlight() bool {
	return s.loading || s.refreshing || s.loadingMore
}

func (s *Session) indexOf(postID string) int {
	for i := range s.items {
		if s.items[i].ID == postID {
			return i
		}
	}
	return -1
}

// waitLikes 等待在途点赞写入结束（测试辅助）
func (s *Session) waitLikes() {
	s.wg.Wait()
}
