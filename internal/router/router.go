package router

import (
	"wangwang/internal/handlers"
	"wangwang/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	feedHandler := handlers.NewFeedHandler()
	postHandler := handlers.NewPostHandler()
	likeHandler := handlers.NewLikeHandler()
	petHandler := handlers.NewPetHandler()
	leaderboardHandler := handlers.NewLeaderboardHandler()
	userHandler := handlers.NewUserHandler()

	// 公共路由 (Public Routes)
	r.GET("/feed", feedHandler.List)                // 信息流（热门/最新/关注）
	r.GET("/posts/:id", postHandler.Detail)         // 帖子详情
	r.GET("/pets/:id", petHandler.Profile)          // 宠物主页
	r.GET("/species", petHandler.ListSpecies)       // 物种筛选项
	r.GET("/leaderboard", leaderboardHandler.List)  // 乖宝宝/坏宝宝排行榜
	r.GET("/users/:id", userHandler.Profile)        // 用户主页

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", userHandler.Me)                 // 我的资料
		authorized.POST("/posts", postHandler.Create)         // 发布帖子
		authorized.DELETE("/posts/:id", postHandler.Delete)   // 删除帖子
		authorized.POST("/posts/:id/like", likeHandler.Toggle) // 点赞/取消点赞
		authorized.POST("/pets", petHandler.Create)           // 登记宠物
		authorized.POST("/pets/:id/follow", petHandler.Follow) // 关注/取关
	}
}
