package repository

import (
	"time"

	"chatroom_web/internal/models"
	"chatroom_web/internal/storage"
)

const (
	// DefaultMessageLimit 是單次查詢消息的預設筆數
	DefaultMessageLimit = 50
	// MaxMessageLimit 是單次查詢消息的上限
	MaxMessageLimit = 100
)

type MessageRepository interface {
	Create(message *models.Message) error
	// FindByRoomID 取最新的 limit 筆消息（跳過 offset 筆更新的），由舊到新返回
	FindByRoomID(roomID uint, limit, offset int) ([]models.Message, error)
	// FindByRoomIDSince 取創建時間嚴格大於 since 的消息，最多 50 筆，由舊到新返回。
	// since 為零值時等同於預設分頁查詢。這是輪詢的增量拉取契約。
	FindByRoomIDSince(roomID uint, since time.Time) ([]models.Message, error)
}

type messageRepository struct {
	db *storage.PostgresDB
}

func NewMessageRepository(db *storage.PostgresDB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) FindByRoomID(roomID uint, limit, offset int) ([]models.Message, error) {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}
	if limit > MaxMessageLimit {
		limit = MaxMessageLimit
	}
	if offset < 0 {
		offset = 0
	}

	var messages []models.Message
	err := r.db.Preload("Author").
		Where("room_id = ?", roomID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	reverseMessages(messages)
	return messages, nil
}

func (r *messageRepository) FindByRoomIDSince(roomID uint, since time.Time) ([]models.Message, error) {
	if since.IsZero() {
		return r.FindByRoomID(roomID, DefaultMessageLimit, 0)
	}

	var messages []models.Message
	err := r.db.Preload("Author").
		Where("room_id = ? AND created_at > ?", roomID, since).
		Order("created_at DESC, id DESC").
		Limit(DefaultMessageLimit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	reverseMessages(messages)
	return messages, nil
}

// reverseMessages 把查詢時的由新到舊反轉為顯示用的由舊到新
func reverseMessages(messages []models.Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
