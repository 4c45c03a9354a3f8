package feed

import (
	"errors"
	"testing"
	"time"

	"wangwang/internal/models"
)

// newTestSession 固定会话时钟到 testNow，和 mkPost 的时间基准对齐
func newTestSession(store Store, pageSize int) *Session {
	s := NewSession(store, pageSize)
	s.nowFn = func() time.Time { return testNow }
	return s
}

func TestSessionLoadAndState(t *testing.T) {
	store := newFakeStore("")
	for i := 0; i < 7; i++ {
		store.posts = append(store.posts, mkPost(
			"p"+string(rune('a'+i)), "pet1", i, float64(i)+1, models.PostTypeGood))
	}

	s := newTestSession(store, 5)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	st := s.State()
	if len(st.Items) != 5 {
		t.Fatalf("首屏应有 5 条, got %d", len(st.Items))
	}
	if !st.HasMore || st.IsLoading || st.Err != nil {
		t.Fatalf("加载完成后的状态不对: %+v", st)
	}

	if err := s.LoadMore(); err != nil {
		t.Fatal(err)
	}
	st = s.State()
	if len(st.Items) != 7 {
		t.Fatalf("追加后应有 7 条, got %d", len(st.Items))
	}
	if st.HasMore {
		t.Fatal("全部取完后 HasMore 应为 false")
	}
}

func TestSessionLoadMoreWithoutCursorIsNoop(t *testing.T) {
	store := newFakeStore("")
	s := newTestSession(store, 5)
	// 没加载过第一页就 LoadMore, 不应触发查询
	if err := s.LoadMore(); err != nil {
		t.Fatal(err)
	}
	if store.queryCalls != 0 {
		t.Fatalf("没有游标时 LoadMore 不应查询, got %d 次", store.queryCalls)
	}
}

// 同一会话同时只允许一个加载在途，后到的请求被丢弃而不是排队
func TestSessionInFlightRequestDropped(t *testing.T) {
	store := newFakeStore("")
	store.posts = append(store.posts, mkPost("p1", "pet1", 5, 1, models.PostTypeGood))
	store.gate = make(chan struct{})

	s := newTestSession(store, 5)
	done := make(chan error, 1)
	go func() { done <- s.Load() }()

	// 等第一个加载进入在途状态
	for i := 0; i < 100; i++ {
		if s.State().IsLoading {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !s.State().IsLoading {
		t.Fatal("第一个加载没有进入在途状态")
	}

	// 在途期间的第二个请求立刻返回，不排队
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if err := s.Refresh(); err != nil {
		t.Fatal(err)
	}

	close(store.gate)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if store.queryCalls != 1 {
		t.Fatalf("只有第一个请求该真正执行, got %d 次查询", store.queryCalls)
	}
}

func TestSessionLoadFailureClearsContent(t *testing.T) {
	store := newFakeStore("")
	store.failQuery = NewQueryError(errors.New("boom"))

	s := newTestSession(store, 5)
	if err := s.Load(); err == nil {
		t.Fatal("期望加载失败")
	}
	st := s.State()
	if st.Err == nil || len(st.Items) != 0 || st.HasMore {
		t.Fatalf("首屏失败应进入无内容错误态: %+v", st)
	}
}

// 刷新失败保留已有内容，只记录错误
func TestSessionRefreshFailureKeepsContent(t *testing.T) {
	store := newFakeStore("")
	store.posts = append(store.posts, mkPost("p1", "pet1", 5, 1, models.PostTypeGood))

	s := newTestSession(store, 5)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	store.failQuery = NewNetworkError(errors.New("timeout"))
	if err := s.Refresh(); err == nil {
		t.Fatal("期望刷新失败")
	}
	st := s.State()
	if len(st.Items) != 1 {
		t.Fatalf("刷新失败应保留已有内容, got %d 条", len(st.Items))
	}
	if st.Err == nil {
		t.Fatal("刷新失败应记录错误")
	}
}

func TestSessionSetFiltersResetsAndReloads(t *testing.T) {
	store := newFakeStore("")
	store.posts = append(store.posts,
		mkPost("good1", "pet1", 5, 1, models.PostTypeGood),
		mkPost("bad1", "pet1", 5, 2, models.PostTypeBad),
	)

	s := newTestSession(store, 5)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if len(s.State().Items) != 2 {
		t.Fatalf("初始应有 2 条")
	}

	if err := s.SetFilters(Filters{Mode: ModeNew, Polarity: PolarityBad}); err != nil {
		t.Fatal(err)
	}
	st := s.State()
	if len(st.Items) != 1 || st.Items[0].ID != "bad1" {
		t.Fatalf("切换过滤后内容不对: %+v", st.Items)
	}
	if st.Filters.Polarity != PolarityBad {
		t.Fatalf("过滤条件没有更新: %+v", st.Filters)
	}

	// 非法过滤条件直接拒绝，不动现有状态
	if err := s.SetFilters(Filters{Mode: "bogus", Polarity: PolarityAll}); err == nil {
		t.Fatal("非法过滤条件应报错")
	}
	if len(s.State().Items) != 1 {
		t.Fatal("非法过滤条件不应清空内容")
	}
}

func TestSessionToggleLikeOptimisticUpdate(t *testing.T) {
	store := newFakeStore("u1")
	store.posts = append(store.posts, mkPost("p1", "pet1", 5, 1, models.PostTypeGood))

	s := newTestSession(store, 5)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	s.ToggleLike("p1")
	// 乐观更新同步生效，不等权威写入
	st := s.State()
	if !st.Items[0].IsLikedByViewer || st.Items[0].LikeCount != 6 {
		t.Fatalf("乐观更新没有生效: liked=%v count=%d", st.Items[0].IsLikedByViewer, st.Items[0].LikeCount)
	}

	s.waitLikes()
	if len(store.insertCalls) != 1 || store.insertCalls[0] != "p1" {
		t.Fatalf("应发出一次点赞写入, got %v", store.insertCalls)
	}
	if store.userBumps["owner-pet1"] != 1 || store.petBumps["pet1"] != 1 {
		t.Fatalf("冗余计数没有更新: %v %v", store.userBumps, store.petBumps)
	}
}

// 500ms 窗口内对同一帖子的重复切换整体丢弃：不乐观更新、不发写入
func TestSessionToggleLikeDebounce(t *testing.T) {
	store := newFakeStore("u1")
	store.posts = append(store.posts, mkPost("p1", "pet1", 5, 1, models.PostTypeGood))

	s := newTestSession(store, 5)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	clock := testNow
	s.nowFn = func() time.Time { return clock }

	s.ToggleLike("p1")
	clock = clock.Add(100 * time.Millisecond)
	s.ToggleLike("p1") // 窗口内，丢弃
	s.waitLikes()

	st := s.State()
	if !st.Items[0].IsLikedByViewer || st.Items[0].LikeCount != 6 {
		t.Fatalf("窗口内重复切换应被丢弃: liked=%v count=%d", st.Items[0].IsLikedByViewer, st.Items[0].LikeCount)
	}
	if len(store.insertCalls) != 1 || len(store.deleteCalls) != 0 {
		t.Fatalf("窗口内只应有一次写入: insert=%v delete=%v", store.insertCalls, store.deleteCalls)
	}

	// 过了窗口再切换：取消点赞生效
	clock = clock.Add(LikeDebounce)
	s.ToggleLike("p1")
	s.waitLikes()

	st = s.State()
	if st.Items[0].IsLikedByViewer || st.Items[0].LikeCount != 5 {
		t.Fatalf("窗口外切换应生效: liked=%v count=%d", st.Items[0].IsLikedByViewer, st.Items[0].LikeCount)
	}
	if len(store.deleteCalls) != 1 {
		t.Fatalf("应发出一次取消点赞写入, got %v", store.deleteCalls)
	}
	if store.userBumps["owner-pet1"] != 0 || store.petBumps["pet1"] != 0 {
		t.Fatalf("一赞一取消后冗余计数应归零: %v %v", store.userBumps, store.petBumps)
	}
}

// 权威写入失败：把乐观更新精确回滚到之前的状态
func TestSessionToggleLikeRollbackOnFailure(t *testing.T) {
	store := newFakeStore("u1")
	store.posts = append(store.posts, mkPost("p1", "pet1", 5, 1, models.PostTypeGood))
	store.failInsert = NewNetworkError(errors.New("connection reset"))

	s := newTestSession(store, 5)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	s.ToggleLike("p1")
	s.waitLikes()

	st := s.State()
	if st.Items[0].IsLikedByViewer || st.Items[0].LikeCount != 5 {
		t.Fatalf("写入失败应回滚乐观更新: liked=%v count=%d", st.Items[0].IsLikedByViewer, st.Items[0].LikeCount)
	}
	if store.userBumps["owner-pet1"] != 0 || store.petBumps["pet1"] != 0 {
		t.Fatalf("写入失败不应更新冗余计数: %v %v", store.userBumps, store.petBumps)
	}
}

func TestSessionToggleLikeAnonymousNoop(t *testing.T) {
	store := newFakeStore("")
	store.posts = append(store.posts, mkPost("p1", "pet1", 5, 1, models.PostTypeGood))

	s := newTestSession(store, 5)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	s.ToggleLike("p1")
	s.waitLikes()

	st := s.State()
	if st.Items[0].IsLikedByViewer || st.Items[0].LikeCount != 5 {
		t.Fatal("匿名观看者的点赞应被静默忽略")
	}
	if len(store.insertCalls) != 0 {
		t.Fatalf("匿名观看者不应触发写入, got %v", store.insertCalls)
	}
}

func TestSessionToggleLikeUnknownPostIgnored(t *testing.T) {
	store := newFakeStore("u1")
	s := newTestSession(store, 5)

	s.ToggleLike("ghost")
	s.waitLikes()
	if len(store.insertCalls) != 0 {
		t.Fatalf("不在当前列表里的帖子不应触发写入, got %v", store.insertCalls)
	}
}
