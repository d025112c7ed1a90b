package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"chatroom_web/internal/models"
	"chatroom_web/internal/repository"
)

type MessageService struct {
	messageRepo repository.MessageRepository
	roomRepo    repository.RoomRepository
	notifier    *RoomNotifier
}

func NewMessageService(messageRepo repository.MessageRepository, roomRepo repository.RoomRepository, notifier *RoomNotifier) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		roomRepo:    roomRepo,
		notifier:    notifier,
	}
}

// SendMessage 在房間內新增一條消息，並推送給已連線的訂閱者。
// 返回的消息不包含發送者資料，需要時由呼叫方重新查詢。
func (s *MessageService) SendMessage(roomID, userID uint, content string) (*models.Message, error) {
	if _, err := s.roomRepo.FindByID(roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	message := &models.Message{
		RoomID:  roomID,
		UserID:  userID,
		Content: content,
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	// 輪詢仍然是權威的拉取路徑，這裡只是即時通知已連線的客戶端
	s.notifier.BroadcastMessage(message)
	return message, nil
}

// ListMessages 返回房間最新的消息，由舊到新排序
func (s *MessageService) ListMessages(roomID uint, limit, offset int) ([]models.Message, error) {
	if _, err := s.roomRepo.FindByID(roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return s.messageRepo.FindByRoomID(roomID, limit, offset)
}

// ListMessagesSince 返回創建時間嚴格大於 since 的消息，供客戶端增量輪詢
func (s *MessageService) ListMessagesSince(roomID uint, since time.Time) ([]models.Message, error) {
	if _, err := s.roomRepo.FindByID(roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return s.messageRepo.FindByRoomIDSince(roomID, since)
}
