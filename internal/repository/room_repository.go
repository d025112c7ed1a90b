package repository

import (
	"gorm.io/gorm"

	"chatroom_web/internal/models"
	"chatroom_web/internal/storage"
)

// memberCountSelect 在房間列表查詢時計算成員數量，填入 Room.MemberCount
const memberCountSelect = "rooms.*, (SELECT COUNT(*) FROM room_members WHERE room_members.room_id = rooms.id) AS member_count"

type RoomRepository interface {
	// CreateWithCreator 創建房間並同時為創建者建立成員關係，兩者在同一個交易內完成
	CreateWithCreator(room *models.Room) error
	FindByID(id uint) (*models.Room, error)
	FindAllWithDetails() ([]models.Room, error)
	FindByUserID(userID uint) ([]models.Room, error)
}

type roomRepository struct {
	db *storage.PostgresDB
}

func NewRoomRepository(db *storage.PostgresDB) RoomRepository {
	return &roomRepository{db: db}
}

// CreateWithCreator 在單一交易中插入房間與創建者的成員列。
// 任一步驟失敗整個交易回滾，不會留下沒有創建者成員的房間。
func (r *roomRepository) CreateWithCreator(room *models.Room) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}

		member := models.RoomMember{
			RoomID: room.ID,
			UserID: room.CreatorID,
		}
		return tx.Create(&member).Error
	})
}

func (r *roomRepository) FindByID(id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// FindAllWithDetails 查詢所有房間，包含創建者資料和成員數量。
// 創建者不存在時 Creator 保持零值，作為空白資料的佔位，不視為錯誤。
func (r *roomRepository) FindAllWithDetails() ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Model(&models.Room{}).
		Select(memberCountSelect).
		Preload("Creator").
		Order("rooms.created_at DESC").
		Find(&rooms).Error
	return rooms, err
}

// FindByUserID 查詢用戶已加入的房間
func (r *roomRepository) FindByUserID(userID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Model(&models.Room{}).
		Select(memberCountSelect).
		Joins("JOIN room_members ON room_members.room_id = rooms.id").
		Where("room_members.user_id = ?", userID).
		Preload("Creator").
		Order("rooms.created_at DESC").
		Find(&rooms).Error
	return rooms, err
}
