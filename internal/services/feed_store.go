package services

import (
	"errors"
	"net"
	"wangwang/internal/db"
	"wangwang/internal/feed"
	"wangwang/internal/models"

	"gorm.io/gorm"
)

// FeedStore feed.Store 的 gorm 实现，绑定一次请求的观看者身份
type FeedStore struct {
	viewerID string
	authed   bool
}

// NewFeedStore 已登录观看者的存储视图
func NewFeedStore(viewerID string) *FeedStore {
	return &FeedStore{viewerID: viewerID, authed: true}
}

// NewAnonymousFeedStore 匿名观看者的存储视图
func NewAnonymousFeedStore() *FeedStore {
	return &FeedStore{}
}

func (s *FeedStore) CurrentViewerID() (string, bool) {
	return s.viewerID, s.authed
}

// storeErr 把底层错误归类成网络错误或查询错误
func storeErr(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return feed.NewNetworkError(err)
	}
	return feed.NewQueryError(err)
}

func (s *FeedStore) QueryPosts(q feed.Query) ([]feed.Item, error) {
	tx := db.DB.Model(&models.Post{}).
		Preload("User").Preload("Pet").
		Where("expires_at > ?", q.Now)

	if q.Polarity != "" && q.Polarity != feed.PolarityAll {
		tx = tx.Where("type = ?", string(q.Polarity))
	}
	if q.PetIDs != nil {
		tx = tx.Where("pet_id IN ?", q.PetIDs)
	}
	if len(q.ExcludePostIDs) > 0 {
		tx = tx.Where("id NOT IN ?", q.ExcludePostIDs)
	}

	// 排序键相同再按 ID 降序，和游标的并列判定保持一致
	if q.Mode == feed.ModeHot {
		if c := q.Cursor; c != nil {
			tx = tx.Where("hot_score < ? OR (hot_score = ? AND id < ?)", c.HotScore, c.HotScore, c.LastID)
		}
		tx = tx.Order("hot_score DESC, id DESC")
	} else {
		if c := q.Cursor; c != nil {
			tx = tx.Where("created_at < ? OR (created_at = ? AND id < ?)", c.CreatedAt, c.CreatedAt, c.LastID)
		}
		tx = tx.Order("created_at DESC, id DESC")
	}

	var posts []models.Post
	if err := tx.Limit(q.Limit).Find(&posts).Error; err != nil {
		return nil, storeErr(err)
	}

	items := make([]feed.Item, len(posts))
	for i, p := range posts {
		items[i] = feed.Item{Post: p}
	}
	return items, nil
}

func (s *FeedStore) FollowedPetIDs(userID string) ([]string, error) {
	var ids []string
	if err := db.DB.Model(&models.Follow{}).Where("user_id = ?", userID).
		Pluck("pet_id", &ids).Error; err != nil {
		return nil, storeErr(err)
	}
	return ids, nil
}

func (s *FeedStore) LikedPostIDs(userID string) ([]string, error) {
	var ids []string
	if err := db.DB.Model(&models.Like{}).Where("user_id = ?", userID).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, storeErr(err)
	}
	return ids, nil
}

func (s *FeedStore) LikedPostIDsAmong(userID string, postIDs []string) ([]string, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var ids []string
	if err := db.DB.Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, storeErr(err)
	}
	return ids, nil
}

func (s *FeedStore) PetIDsBySpecies(species string) ([]string, error) {
	var ids []string
	if err := db.DB.Model(&models.Pet{}).Where("species = ?", species).
		Pluck("id", &ids).Error; err != nil {
		return nil, storeErr(err)
	}
	return ids, nil
}

// InsertLike 点赞边 + 乐观计数在同一事务里落库，成功后排队重算热度分
func (s *FeedStore) InsertLike(postID, userID string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Like{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		return storeErr(err)
	}
	GetRankingService().ScheduleUpdate(postID)
	return nil
}

func (s *FeedStore) DeleteLike(postID, userID string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // 边本来就不存在，计数不动
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("GREATEST(like_count - 1, 0)")).Error
	})
	if err != nil {
		return storeErr(err)
	}
	GetRankingService().ScheduleUpdate(postID)
	return nil
}

func (s *FeedStore) BumpUserLikes(userID string, delta int) error {
	return AddUserLikes(userID, delta)
}

func (s *FeedStore) BumpPetLikes(petID string, delta int) error {
	return AddPetLikes(petID, delta)
}
