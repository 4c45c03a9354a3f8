package handlers

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
	"wangwang/internal/db"
	"wangwang/internal/feed"
	"wangwang/internal/models"
	"wangwang/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

// 用户输入统一走严格消毒策略（只留纯文本）
var textPolicy = bluemonday.StrictPolicy()

const (
	maxTagCount  = 5
	maxTagLength = 30
)

type createPostRequest struct {
	PetID         string   `json:"pet_id" binding:"required"`
	MediaType     string   `json:"media_type" binding:"required"`
	MediaURL      string   `json:"media_url" binding:"required"` // 媒体已由客户端传到对象存储
	ThumbnailURL  string   `json:"thumbnail_url"`
	VideoDuration *int     `json:"video_duration"`
	Type          string   `json:"type" binding:"required"` // good / bad
	Tags          []string `json:"tags"`
}

// sanitizeTags 消毒、去空、去重，超出上限返回 false
func sanitizeTags(raw []string) ([]string, bool) {
	seen := make(map[string]bool)
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(textPolicy.Sanitize(t))
		if t == "" || seen[t] {
			continue
		}
		if len(t) > maxTagLength {
			return nil, false
		}
		seen[t] = true
		tags = append(tags, t)
	}
	if len(tags) > maxTagCount {
		return nil, false
	}
	return tags, true
}

// postTTL 帖子保留窗口，默认 7 天
func postTTL() time.Duration {
	days := utils.StringToInt(os.Getenv("POST_TTL_DAYS"))
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

// Create 发布帖子。发布流程的媒体处理在客户端完成，这里只落元数据。
func (h *PostHandler) Create(c *gin.Context) {
	user, exists := CurrentUser(c)
	if !exists {
		Fail(c, http.StatusUnauthorized, "请先登录")
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "请求格式错误")
		return
	}

	if req.Type != models.PostTypeGood && req.Type != models.PostTypeBad {
		Fail(c, http.StatusBadRequest, "type 只能是 good 或 bad")
		return
	}
	if req.MediaType != models.MediaTypeImage && req.MediaType != models.MediaTypeVideo {
		Fail(c, http.StatusBadRequest, "media_type 只能是 image 或 video")
		return
	}

	// 只能给自己的宠物发帖
	var pet models.Pet
	if err := db.DB.First(&pet, "id = ?", req.PetID).Error; err != nil {
		Fail(c, http.StatusNotFound, "宠物不存在")
		return
	}
	if pet.UserID != user.ID {
		Fail(c, http.StatusForbidden, "只能给自己的宠物发帖")
		return
	}

	tags, ok := sanitizeTags(req.Tags)
	if !ok {
		Fail(c, http.StatusBadRequest, fmt.Sprintf("标签最多 %d 个，单个不超过 %d 字符", maxTagCount, maxTagLength))
		return
	}

	now := time.Now()
	post := models.Post{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		PetID:         pet.ID,
		MediaType:     req.MediaType,
		MediaURL:      req.MediaURL,
		ThumbnailURL:  req.ThumbnailURL,
		VideoDuration: req.VideoDuration,
		Type:          req.Type,
		Tags:          tags,
		CreatedAt:     now,
		ExpiresAt:     now.Add(postTTL()),
		// hot_score 初始为 0（没有点赞），后续由排名服务重算
	}
	if err := db.DB.Create(&post).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "发布失败")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Detail 帖子详情。过期只影响信息流检索，详情页仍可直达。
func (h *PostHandler) Detail(c *gin.Context) {
	postID := c.Param("id")

	user, authed := CurrentUser(c)

	cacheKey := fmt.Sprintf("post:detail:%s", postID)
	if !authed {
		if cached := utils.GetCache().Get(cacheKey); cached != nil {
			if item, ok := cached.(feed.Item); ok {
				c.JSON(http.StatusOK, item)
				return
			}
		}
	}

	var post models.Post
	if err := db.DB.Preload("User").Preload("Pet").First(&post, "id = ?", postID).Error; err != nil {
		Fail(c, http.StatusNotFound, "帖子不存在")
		return
	}

	item := feed.Item{Post: post}
	if authed {
		var likeCount int64
		db.DB.Model(&models.Like{}).Where("user_id = ? AND post_id = ?", user.ID, postID).Count(&likeCount)
		item.IsLikedByViewer = likeCount > 0

		var followCount int64
		db.DB.Model(&models.Follow{}).Where("user_id = ? AND pet_id = ?", user.ID, post.PetID).Count(&followCount)
		item.IsFollowedByViewer = followCount > 0
	} else {
		utils.GetCache().Set(cacheKey, item, 1*time.Minute)
	}

	c.JSON(http.StatusOK, item)
}

// Delete 删除自己的帖子（硬删除，点赞边级联清理）
func (h *PostHandler) Delete(c *gin.Context) {
	user, exists := CurrentUser(c)
	if !exists {
		Fail(c, http.StatusUnauthorized, "请先登录")
		return
	}

	postID := c.Param("id")
	var post models.Post
	if err := db.DB.First(&post, "id = ?", postID).Error; err != nil {
		Fail(c, http.StatusNotFound, "帖子不存在")
		return
	}
	if post.UserID != user.ID {
		Fail(c, http.StatusForbidden, "只能删除自己的帖子")
		return
	}

	if err := db.DB.Delete(&post).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "删除失败")
		return
	}

	utils.GetCache().Delete(fmt.Sprintf("post:detail:%s", postID))
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
