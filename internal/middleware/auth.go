package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"
	"wangwang/internal/db"
	"wangwang/internal/models"

	"github.com/gin-gonic/gin"
)

const CheckUserKey = "viewer"

// LoadViewer 从 Bearer 令牌解析观看者身份并放入上下文。
// 令牌由外部身份平台签发，库里只存 sha256 摘要；解析失败按匿名处理，不报错。
func LoadViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if raw, ok := strings.CutPrefix(auth, "Bearer "); ok && raw != "" {
			sum := sha256.Sum256([]byte(raw))
			digest := hex.EncodeToString(sum[:])

			var token models.AuthToken
			if err := db.DB.Where("token_hash = ?", digest).First(&token).Error; err == nil {
				if token.ExpiresAt == nil || token.ExpiresAt.After(time.Now()) {
					var user models.User
					if err := db.DB.First(&user, "id = ?", token.UserID).Error; err == nil {
						c.Set(CheckUserKey, &user)
					}
				}
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a viewer is resolved
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "请先登录"})
			return
		}
		c.Next()
	}
}
