package services

import (
	"wangwang/internal/db"
	"wangwang/internal/models"

	"gorm.io/gorm"
)

// 冗余计数更新：用户/宠物累计获赞、宠物粉丝数。
// 这些计数是展示用的近似值，更新尽力而为，漂移由排名服务的重算兜底。

// AddUserLikes 调整用户累计获赞数（负数扣减，最低为 0）
func AddUserLikes(userID string, delta int) error {
	return db.DB.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("total_likes_received", gorm.Expr("GREATEST(total_likes_received + ?, 0)", delta)).
		Error
}

// AddPetLikes 调整宠物累计获赞数
func AddPetLikes(petID string, delta int) error {
	return db.DB.Model(&models.Pet{}).
		Where("id = ?", petID).
		UpdateColumn("total_likes_received", gorm.Expr("GREATEST(total_likes_received + ?, 0)", delta)).
		Error
}

// AddFollower 调整宠物粉丝数（在调用方事务内执行）
func AddFollower(tx *gorm.DB, petID string, delta int) error {
	return tx.Model(&models.Pet{}).
		Where("id = ?", petID).
		UpdateColumn("follower_count", gorm.Expr("GREATEST(follower_count + ?, 0)", delta)).
		Error
}

// AddUserLikesAsync 异步调整用户获赞计数（在 goroutine 中调用，失败忽略）
func AddUserLikesAsync(userID string, delta int) {
	go func() {
		_ = AddUserLikes(userID, delta)
	}()
}

// AddPetLikesAsync 异步调整宠物获赞计数
func AddPetLikesAsync(petID string, delta int) {
	go func() {
		_ = AddPetLikes(petID, delta)
	}()
}
