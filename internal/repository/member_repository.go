package repository

import (
	"gorm.io/gorm/clause"

	"chatroom_web/internal/models"
	"chatroom_web/internal/storage"
)

type MemberRepository interface {
	// Join 建立成員關係，已存在時靜默忽略（冪等）
	Join(roomID, userID uint) error
	// Leave 刪除成員關係，不存在時也視為成功（冪等）
	Leave(roomID, userID uint) error
	Exists(roomID, userID uint) (bool, error)
	CountByRoomID(roomID uint) (int64, error)
	FindUsersByRoomID(roomID uint) ([]models.User, error)
}

type memberRepository struct {
	db *storage.PostgresDB
}

func NewMemberRepository(db *storage.PostgresDB) MemberRepository {
	return &memberRepository{db: db}
}

// Join 依賴 (room_id, user_id) 的唯一索引，重複加入時 ON CONFLICT DO NOTHING
func (r *memberRepository) Join(roomID, userID uint) error {
	member := models.RoomMember{
		RoomID: roomID,
		UserID: userID,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&member).Error
}

func (r *memberRepository) Leave(roomID, userID uint) error {
	return r.db.Where("room_id = ? AND user_id = ?", roomID, userID).
		Delete(&models.RoomMember{}).Error
}

func (r *memberRepository) Exists(roomID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.RoomMember{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *memberRepository) CountByRoomID(roomID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.RoomMember{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	return count, err
}

// FindUsersByRoomID 查詢房間的所有成員及其個人資料，按加入時間排序
func (r *memberRepository) FindUsersByRoomID(roomID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN room_members ON room_members.user_id = users.id").
		Where("room_members.room_id = ?", roomID).
		Order("room_members.joined_at ASC").
		Find(&users).Error
	return users, err
}
