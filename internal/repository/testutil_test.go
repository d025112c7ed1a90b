package repository

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"chatroom_web/internal/models"
	"chatroom_web/internal/storage"
)

// setupTestDB 建立測試用的記憶體 SQLite 資料庫
func setupTestDB(t *testing.T) *storage.PostgresDB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// 記憶體 SQLite 每個連接是一個獨立的資料庫，限制連接池只用一條連接
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.User{}, &models.Room{}, &models.RoomMember{}, &models.Message{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &storage.PostgresDB{DB: db}
}

func createTestUser(t *testing.T, db *storage.PostgresDB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Password: "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestRoom(t *testing.T, db *storage.PostgresDB, name string, creatorID uint) *models.Room {
	t.Helper()
	room := &models.Room{
		Name:      name,
		CreatorID: creatorID,
	}
	repo := NewRoomRepository(db)
	if err := repo.CreateWithCreator(room); err != nil {
		t.Fatalf("failed to create test room: %v", err)
	}
	return room
}

// createTestMessage 以指定的創建時間插入一條消息，方便測試排序和增量查詢
func createTestMessage(t *testing.T, db *storage.PostgresDB, roomID, userID uint, content string, createdAt time.Time) *models.Message {
	t.Helper()
	message := &models.Message{
		RoomID:  roomID,
		UserID:  userID,
		Content: content,
	}
	message.CreatedAt = createdAt
	if err := db.Create(message).Error; err != nil {
		t.Fatalf("failed to create test message: %v", err)
	}
	return message
}
