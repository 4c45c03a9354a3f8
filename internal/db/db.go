package db

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"os"
	"wangwang/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=wangwang port=5432 sslmode=disable TimeZone=Asia/Shanghai"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.User{},
		&models.Pet{},
		&models.Post{},
		&models.Like{},
		&models.Follow{},
		&models.AuthToken{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	// 本地联调用的演示数据（令牌由外部身份平台签发，这里只为开发环境造一条）
	if os.Getenv("SEED_DEMO") == "true" {
		seedDemoData()
	}
}

// seedDemoData 造一个演示用户 + 宠物 + 访问令牌，已有用户时跳过
func seedDemoData() {
	var count int64
	DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Println("Users already exist, skipping demo seed")
		return
	}

	user := models.User{
		ID:          uuid.NewString(),
		DisplayName: "汪汪铲屎官",
		AvatarURL:   "",
	}
	if err := DB.Create(&user).Error; err != nil {
		log.Printf("Failed to create demo user: %v", err)
		return
	}

	pet := models.Pet{
		ID:      uuid.NewString(),
		UserID:  user.ID,
		Name:    "旺财",
		Species: "dog",
	}
	if err := DB.Create(&pet).Error; err != nil {
		log.Printf("Failed to create demo pet: %v", err)
	}

	rawToken := "demo-" + uuid.NewString()
	sum := sha256.Sum256([]byte(rawToken))
	token := models.AuthToken{
		UserID:    user.ID,
		TokenHash: hex.EncodeToString(sum[:]),
	}
	if err := DB.Create(&token).Error; err != nil {
		log.Printf("Failed to create demo token: %v", err)
		return
	}
	// 明文令牌只在这里打印一次
	log.Printf("Demo user created, bearer token: %s", rawToken)
}
