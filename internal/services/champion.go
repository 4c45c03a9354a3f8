package services

import (
	"log"
	"time"
	"wangwang/internal/db"
	"wangwang/internal/models"

	"gorm.io/gorm"
)

// 周冠军评选：每周一凌晨，把过去 7 天内获赞最多的乖宝宝帖和坏宝宝帖
// 立为本周冠军，给对应宠物记一顶皇冠。上届冠军的 current_champion 撤掉，
// is_winner 是永久荣誉不清除。

// StartChampionScheduler 启动周冠军定时评选（每周一 00:00 执行）
func StartChampionScheduler() {
	go func() {
		for {
			// 计算到下一个周一零点的时间
			now := time.Now()
			daysUntilMonday := (int(time.Monday) - int(now.Weekday()) + 7) % 7
			if daysUntilMonday == 0 {
				daysUntilMonday = 7
			}
			next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
				AddDate(0, 0, daysUntilMonday)
			time.Sleep(time.Until(next))

			log.Println("开始评选本周乖宝宝/坏宝宝冠军...")
			ElectChampions()
			log.Println("周冠军评选完成")
		}
	}()
}

// ElectChampions 立即执行一轮冠军评选（两个极性各选一篇）
func ElectChampions() {
	weekAgo := time.Now().AddDate(0, 0, -7)

	for _, polarity := range []string{models.PostTypeGood, models.PostTypeBad} {
		var winner models.Post
		err := db.DB.Where("type = ? AND created_at >= ?", polarity, weekAgo).
			Order("like_count DESC, hot_score DESC, id DESC").
			First(&winner).Error
		if err != nil {
			// 本周该极性没有帖子，不清上届冠军
			continue
		}

		crownColumn := "good_baby_crowns"
		if polarity == models.PostTypeBad {
			crownColumn = "bad_baby_crowns"
		}

		err = db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Post{}).
				Where("type = ? AND current_champion = ?", polarity, true).
				UpdateColumn("current_champion", false).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Post{}).Where("id = ?", winner.ID).
				UpdateColumns(map[string]interface{}{
					"is_winner":        true,
					"current_champion": true,
				}).Error; err != nil {
				return err
			}
			return tx.Model(&models.Pet{}).Where("id = ?", winner.PetID).
				UpdateColumn(crownColumn, gorm.Expr(crownColumn+" + 1")).Error
		})
		if err != nil {
			log.Printf("评选 %s 冠军失败: %v", polarity, err)
			continue
		}
		log.Printf("本周 %s 冠军: 帖子 %s (获赞 %d)", polarity, winner.ID, winner.LikeCount)
	}
}
