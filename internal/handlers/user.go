package handlers

import (
	"net/http"
	"wangwang/internal/db"
	"wangwang/internal/models"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me 当前登录用户及其宠物
func (h *UserHandler) Me(c *gin.Context) {
	user, exists := CurrentUser(c)
	if !exists {
		Fail(c, http.StatusUnauthorized, "请先登录")
		return
	}

	db.DB.Where("user_id = ?", user.ID).Order("created_at ASC").Find(&user.Pets)
	c.JSON(http.StatusOK, user)
}

// Profile 用户公开主页
func (h *UserHandler) Profile(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		Fail(c, http.StatusNotFound, "用户不存在")
		return
	}
	db.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&user.Pets)
	c.JSON(http.StatusOK, user)
}
