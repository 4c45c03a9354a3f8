package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"wangwang/internal/db"
	"wangwang/internal/models"
	"wangwang/internal/services"
	"wangwang/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PetHandler struct{}

func NewPetHandler() *PetHandler {
	return &PetHandler{}
}

type createPetRequest struct {
	Name      string `json:"name" binding:"required"`
	Species   string `json:"species" binding:"required"`
	AvatarURL string `json:"avatar_url"`
}

// Create 登记一只宠物
func (h *PetHandler) Create(c *gin.Context) {
	user, exists := CurrentUser(c)
	if !exists {
		Fail(c, http.StatusUnauthorized, "请先登录")
		return
	}

	var req createPetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "请求格式错误")
		return
	}

	name := strings.TrimSpace(textPolicy.Sanitize(req.Name))
	if name == "" || len(name) > 50 {
		Fail(c, http.StatusBadRequest, "名字不能为空且不超过 50 字符")
		return
	}
	if !utils.IsValidSpecies(req.Species) {
		Fail(c, http.StatusBadRequest, "不支持的物种")
		return
	}

	pet := models.Pet{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Name:      name,
		Species:   req.Species,
		AvatarURL: req.AvatarURL,
	}
	if err := db.DB.Create(&pet).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "创建失败")
		return
	}
	c.JSON(http.StatusCreated, pet)
}

// Profile 宠物主页：档案 + 最近未过期的帖子
func (h *PetHandler) Profile(c *gin.Context) {
	petID := c.Param("id")

	var pet models.Pet
	if err := db.DB.Preload("User").First(&pet, "id = ?", petID).Error; err != nil {
		Fail(c, http.StatusNotFound, "宠物不存在")
		return
	}

	var posts []models.Post
	db.DB.Where("pet_id = ? AND expires_at > ?", petID, time.Now()).
		Order("created_at DESC, id DESC").
		Limit(30).
		Find(&posts)

	isFollowed := false
	if user, authed := CurrentUser(c); authed {
		var count int64
		db.DB.Model(&models.Follow{}).Where("user_id = ? AND pet_id = ?", user.ID, petID).Count(&count)
		isFollowed = count > 0
	}

	c.JSON(http.StatusOK, gin.H{
		"pet":         pet,
		"posts":       posts,
		"is_followed": isFollowed,
	})
}

// Follow 关注/取关切换。和点赞同套路：有边则删、无边则建，计数同事务。
func (h *PetHandler) Follow(c *gin.Context) {
	user, exists := CurrentUser(c)
	if !exists {
		Fail(c, http.StatusUnauthorized, "请先登录")
		return
	}

	petID := c.Param("id")
	var pet models.Pet
	if err := db.DB.First(&pet, "id = ?", petID).Error; err != nil {
		Fail(c, http.StatusNotFound, "宠物不存在")
		return
	}

	following := false
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Follow
		err := tx.Where("user_id = ? AND pet_id = ?", user.ID, petID).First(&existing).Error
		if err == nil {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			return services.AddFollower(tx, petID, -1)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(&models.Follow{UserID: user.ID, PetID: petID}).Error; err != nil {
			return err
		}
		following = true
		return services.AddFollower(tx, petID, 1)
	})
	if err != nil {
		Fail(c, http.StatusInternalServerError, "操作失败")
		return
	}

	var count int64
	db.DB.Model(&models.Follow{}).Where("pet_id = ?", petID).Count(&count)
	c.JSON(http.StatusOK, gin.H{"following": following, "follower_count": count})
}

// ListSpecies 物种筛选项（客户端渲染筛选栏用）
func (h *PetHandler) ListSpecies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"species": utils.SpeciesOptions})
}
