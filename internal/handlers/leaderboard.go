package handlers

import (
	"fmt"
	"net/http"
	"time"
	"wangwang/internal/db"
	"wangwang/internal/models"
	"wangwang/internal/utils"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct{}

func NewLeaderboardHandler() *LeaderboardHandler {
	return &LeaderboardHandler{}
}

const leaderboardSize = 20

// LeaderboardEntry 排行榜单项
type LeaderboardEntry struct {
	Rank       int        `json:"rank"`
	Pet        models.Pet `json:"pet"`
	Score      int64      `json:"score"`
	IsChampion bool       `json:"is_champion"`
}

type petScore struct {
	PetID string
	Score int64
}

// List 乖宝宝/坏宝宝排行榜。
// category=good|bad, period=daily|weekly|allTime
// 榜单按该时段内帖子获赞总数聚合，现任周冠军的宠物带皇冠标记。
func (h *LeaderboardHandler) List(c *gin.Context) {
	category := c.DefaultQuery("category", models.PostTypeGood)
	period := c.DefaultQuery("period", "weekly")

	if category != models.PostTypeGood && category != models.PostTypeBad {
		Fail(c, http.StatusBadRequest, "category 只能是 good 或 bad")
		return
	}

	var since time.Time
	switch period {
	case "daily":
		since = time.Now().AddDate(0, 0, -1)
	case "weekly":
		since = time.Now().AddDate(0, 0, -7)
	case "allTime":
		// 零值即不限时间
	default:
		Fail(c, http.StatusBadRequest, "period 只能是 daily、weekly 或 allTime")
		return
	}

	cacheKey := fmt.Sprintf("leaderboard:%s:%s", category, period)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if entries, ok := cached.([]LeaderboardEntry); ok {
			c.JSON(http.StatusOK, gin.H{"entries": entries})
			return
		}
	}

	query := db.DB.Model(&models.Post{}).
		Select("pet_id, SUM(like_count) as score").
		Where("type = ?", category)
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}

	var scores []petScore
	if err := query.Group("pet_id").
		Order("score DESC").
		Limit(leaderboardSize).
		Scan(&scores).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "查询失败")
		return
	}

	petIDs := make([]string, 0, len(scores))
	for _, s := range scores {
		petIDs = append(petIDs, s.PetID)
	}

	petByID := make(map[string]models.Pet, len(petIDs))
	if len(petIDs) > 0 {
		var pets []models.Pet
		db.DB.Preload("User").Where("id IN ?", petIDs).Find(&pets)
		for _, p := range pets {
			petByID[p.ID] = p
		}
	}

	// 现任冠军帖对应的宠物
	championPets := make(map[string]bool)
	var championIDs []string
	db.DB.Model(&models.Post{}).
		Where("type = ? AND current_champion = ?", category, true).
		Pluck("pet_id", &championIDs)
	for _, id := range championIDs {
		championPets[id] = true
	}

	entries := make([]LeaderboardEntry, 0, len(scores))
	for i, s := range scores {
		pet, ok := petByID[s.PetID]
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Rank:       i + 1,
			Pet:        pet,
			Score:      s.Score,
			IsChampion: championPets[s.PetID],
		})
	}

	utils.GetCache().Set(cacheKey, entries, 1*time.Minute)
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
