package handlers

import (
	"errors"
	"net/http"
	"wangwang/internal/feed"
	"wangwang/internal/middleware"
	"wangwang/internal/models"

	"github.com/gin-gonic/gin"
)

// CurrentUser 从上下文取已解析的观看者
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(middleware.CheckUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// Fail 统一的错误响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// FailFeedError 把引擎错误映射成 HTTP 状态码：
// 参数错误 400，网络故障 502，查询失败 500
func FailFeedError(c *gin.Context, err error) {
	var ve *feed.ValidationError
	if errors.As(err, &ve) {
		Fail(c, http.StatusBadRequest, ve.Error())
		return
	}
	var le *feed.LoadError
	if errors.As(err, &le) && le.Kind == feed.LoadErrorNetwork {
		Fail(c, http.StatusBadGateway, "上游存储暂不可用")
		return
	}
	Fail(c, http.StatusInternalServerError, "查询失败")
}
