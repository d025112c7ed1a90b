package service

import (
	"errors"

	"gorm.io/gorm"

	"chatroom_web/internal/models"
	"chatroom_web/internal/repository"
)

// ErrRoomNotFound 表示指定的房間不存在
var ErrRoomNotFound = errors.New("房間不存在")

type RoomService struct {
	roomRepo   repository.RoomRepository
	memberRepo repository.MemberRepository
	notifier   *RoomNotifier
}

func NewRoomService(roomRepo repository.RoomRepository, memberRepo repository.MemberRepository, notifier *RoomNotifier) *RoomService {
	return &RoomService{
		roomRepo:   roomRepo,
		memberRepo: memberRepo,
		notifier:   notifier,
	}
}

// CreateRoom 創建房間，創建者自動成為成員（同一交易內完成）
func (s *RoomService) CreateRoom(name, description string, creatorID uint) (*models.Room, error) {
	room := &models.Room{
		Name:        name,
		Description: description,
		CreatorID:   creatorID,
	}

	if err := s.roomRepo.CreateWithCreator(room); err != nil {
		return nil, err
	}

	room.MemberCount = 1
	return room, nil
}

func (s *RoomService) GetRoom(roomID uint) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// ListAllRooms 返回所有房間，供用戶瀏覽加入
func (s *RoomService) ListAllRooms() ([]models.Room, error) {
	return s.roomRepo.FindAllWithDetails()
}

// ListUserRooms 返回用戶已加入的房間
func (s *RoomService) ListUserRooms(userID uint) ([]models.Room, error) {
	return s.roomRepo.FindByUserID(userID)
}

// JoinRoom 讓用戶加入房間。重複加入是靜默的無操作。
func (s *RoomService) JoinRoom(roomID, userID uint) error {
	if _, err := s.GetRoom(roomID); err != nil {
		return err
	}

	if err := s.memberRepo.Join(roomID, userID); err != nil {
		return err
	}

	s.notifier.BroadcastSystemMessage(roomID, "新成員加入了房間")
	return nil
}

// LeaveRoom 讓用戶離開房間。本來就不是成員時也視為成功。
func (s *RoomService) LeaveRoom(roomID, userID uint) error {
	if _, err := s.GetRoom(roomID); err != nil {
		return err
	}

	if err := s.memberRepo.Leave(roomID, userID); err != nil {
		return err
	}

	s.notifier.BroadcastSystemMessage(roomID, "一位成員離開了房間")
	return nil
}

// ListRoomMembers 返回房間的所有成員及其個人資料
func (s *RoomService) ListRoomMembers(roomID uint) ([]models.User, error) {
	if _, err := s.GetRoom(roomID); err != nil {
		return nil, err
	}
	return s.memberRepo.FindUsersByRoomID(roomID)
}

// IsMember 檢查用戶是否為房間成員
func (s *RoomService) IsMember(roomID, userID uint) (bool, error) {
	return s.memberRepo.Exists(roomID, userID)
}
