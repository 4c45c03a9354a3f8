package handlers

import (
	"fmt"
	"net/http"
	"time"
	"wangwang/internal/feed"
	"wangwang/internal/services"
	"wangwang/internal/utils"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct{}

func NewFeedHandler() *FeedHandler {
	return &FeedHandler{}
}

// 单次请求允许的最大页长
const maxPageSize = 30

// parseFeedQuery 把查询参数解析成引擎过滤条件
// 参数名与移动端对齐：mode=hot|new|following, filter=all|good|bad
func parseFeedQuery(c *gin.Context) (feed.Filters, string, int) {
	filters := feed.Filters{
		Mode:     feed.Mode(c.DefaultQuery("mode", string(feed.ModeHot))),
		Polarity: feed.Polarity(c.DefaultQuery("filter", string(feed.PolarityAll))),
		Species:  c.Query("species"),
	}
	limit := utils.StringToInt(c.Query("limit"))
	if limit <= 0 || limit > maxPageSize {
		limit = feed.DefaultPageSize
	}
	return filters, c.Query("cursor"), limit
}

// List 信息流分页接口
func (h *FeedHandler) List(c *gin.Context) {
	filters, cursor, limit := parseFeedQuery(c)
	if err := filters.Validate(); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, authed := CurrentUser(c)

	// 匿名第一页短缓存（关注流依赖身份，不缓存）
	cacheable := !authed && cursor == "" && filters.Mode != feed.ModeFollowing
	cacheKey := fmt.Sprintf("feed:%s:%s:%s:%d", filters.Mode, filters.Polarity, filters.Species, limit)
	if cacheable {
		if cached := utils.GetCache().Get(cacheKey); cached != nil {
			if page, ok := cached.(feed.Page); ok {
				c.JSON(http.StatusOK, page)
				return
			}
		}
	}

	var store *services.FeedStore
	if authed {
		store = services.NewFeedStore(user.ID)
	} else {
		store = services.NewAnonymousFeedStore()
	}

	page, err := feed.FetchPage(store, filters, cursor, limit)
	if err != nil {
		FailFeedError(c, err)
		return
	}

	if cacheable {
		utils.GetCache().Set(cacheKey, page, 1*time.Minute)
	}
	c.JSON(http.StatusOK, page)
}
