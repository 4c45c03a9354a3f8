package services

import (
	"log"
	"sync"
	"time"
	"wangwang/internal/db"
	"wangwang/internal/feed"
	"wangwang/internal/models"
)

// RankingService 提供异步计算和更新帖子 hot_score 的服务。
// hot_score 是 like_count 和 created_at 的派生值（见 feed.BaseScore），
// 这里是唯一的落库写入口，保证存储分数和引擎重算的分数口径一致。
type RankingService struct {
	queue   chan string // 待更新的帖子 ID 队列
	pending map[string]bool
	mu      sync.Mutex
}

var (
	rankingService *RankingService
	once           sync.Once
)

// GetRankingService 获取单例排名服务
func GetRankingService() *RankingService {
	once.Do(func() {
		rankingService = &RankingService{
			queue:   make(chan string, 1000), // 缓冲队列，防止阻塞
			pending: make(map[string]bool),
		}
		// 启动后台 worker
		go rankingService.worker()
	})
	return rankingService
}

// ScheduleUpdate 将帖子加入更新队列（异步）
// 使用去重机制避免短时间内重复计算同一帖子
func (s *RankingService) ScheduleUpdate(postID string) {
	s.mu.Lock()
	if s.pending[postID] {
		// 已在队列中，跳过
		s.mu.Unlock()
		return
	}
	s.pending[postID] = true
	s.mu.Unlock()

	// 非阻塞发送到队列
	select {
	case s.queue <- postID:
		// 成功加入队列
	default:
		// 队列满了，移除 pending 标记
		s.mu.Lock()
		delete(s.pending, postID)
		s.mu.Unlock()
		log.Printf("热度更新队列已满，跳过帖子 %s", postID)
	}
}

// worker 后台处理队列中的更新请求
func (s *RankingService) worker() {
	// 批量处理：收集一批请求后统一处理
	batch := make([]string, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond) // 每 500ms 处理一批
	defer ticker.Stop()

	for {
		select {
		case postID := <-s.queue:
			batch = append(batch, postID)
			// 如果达到批量大小，立即处理
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			// 定时处理剩余的
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

// processBatch 批量处理帖子热度更新
func (s *RankingService) processBatch(postIDs []string) {
	for _, postID := range postIDs {
		s.updatePostScore(postID)

		// 清除 pending 状态
		s.mu.Lock()
		delete(s.pending, postID)
		s.mu.Unlock()
	}
}

// updatePostScore 计算并更新单个帖子的 hot_score。
// 点赞数以 likes 表的真实行数为准，顺带修正乐观计数的漂移。
func (s *RankingService) updatePostScore(postID string) {
	var post models.Post
	if err := db.DB.First(&post, "id = ?", postID).Error; err != nil {
		log.Printf("更新热度失败：帖子 %s 不存在", postID)
		return
	}

	var likes int64
	db.DB.Model(&models.Like{}).Where("post_id = ?", postID).Count(&likes)

	score := feed.BaseScore(int(likes), post.CreatedAt, time.Now())

	updates := map[string]interface{}{"hot_score": score}
	if int(likes) != post.LikeCount {
		updates["like_count"] = int(likes) // 对账
	}
	if err := db.DB.Model(&post).UpdateColumns(updates).Error; err != nil {
		log.Printf("更新帖子 %s 热度失败: %v", postID, err)
	}
}

// UpdatePostScoreSync 同步更新帖子热度（用于需要立即生效的场景）
func UpdatePostScoreSync(postID string) {
	GetRankingService().updatePostScore(postID)
}

// StartScheduledScoreUpdate 启动定时全量刷新。
// 分数随时间持续衰减，即使没有新点赞也要定期重算，每小时跑一轮未过期帖子。
func (s *RankingService) StartScheduledScoreUpdate() {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			log.Println("开始定时刷新帖子热度...")
			s.refreshActiveScores()
			log.Println("定时刷新帖子热度完成")
		}
	}()
}

// refreshActiveScores 重算所有未过期帖子的热度
func (s *RankingService) refreshActiveScores() {
	var posts []models.Post
	db.DB.Where("expires_at > ?", time.Now()).Select("id").Find(&posts)
	for _, p := range posts {
		s.updatePostScore(p.ID)
	}
	log.Printf("本次刷新 %d 篇帖子热度", len(posts))
}
