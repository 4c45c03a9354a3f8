package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"wangwang/internal/db"
	"wangwang/internal/models"
	"wangwang/internal/services"
	"wangwang/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LikeHandler struct{}

func NewLikeHandler() *LikeHandler {
	return &LikeHandler{}
}

// Toggle 点赞/取消点赞（权威侧）。
// (user, post) 最多一条点赞边：有则删、无则建，和乐观计数放同一事务。
// 客户端的乐观更新和防抖在引擎会话里做，这里只负责把状态写对。
func (h *LikeHandler) Toggle(c *gin.Context) {
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

	liked := false
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("user_id = ? AND post_id = ?", user.ID, postID).First(&existing).Error
		if err == nil {
			// 已点赞，取消（硬删除）
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			return tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("like_count", gorm.Expr("GREATEST(like_count - 1, 0)")).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		// 未点赞，创建
		if err := tx.Create(&models.Like{UserID: user.ID, PostID: postID}).Error; err != nil {
			return err
		}
		liked = true
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		Fail(c, http.StatusInternalServerError, "操作失败")
		return
	}

	// 作者和宠物的累计获赞异步更新，失败不回滚主状态
	delta := 1
	if !liked {
		delta = -1
	}
	services.AddUserLikesAsync(post.UserID, delta)
	services.AddPetLikesAsync(post.PetID, delta)

	// 异步重算热度分
	services.GetRankingService().ScheduleUpdate(postID)

	// 主动失效详情页缓存
	utils.GetCache().Delete(fmt.Sprintf("post:detail:%s", postID))

	// 返回点赞数（统计 likes 表，而非乐观计数）
	var count int64
	db.DB.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count)
	c.JSON(http.StatusOK, gin.H{"liked": liked, "like_count": count})
}
