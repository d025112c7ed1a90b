package models

import (
	"time"

	"gorm.io/gorm"
)

// Room 表示一個聊天房間
//
// 房間只會被創建，不會被刪除。MemberCount 不是資料表欄位，
// 而是列表查詢時由聚合子查詢填入的唯讀值。
type Room struct {
	gorm.Model
	Name        string `gorm:"type:varchar(100);not null" json:"name"` // 房間名稱，必填
	Description string `gorm:"type:text" json:"description"`           // 房間描述，可選
	CreatorID   uint   `gorm:"not null;index" json:"creator_id"`       // 創建者的用戶 ID
	Creator     User   `gorm:"foreignKey:CreatorID" json:"creator"`    // 創建者資料，列表查詢時載入
	MemberCount int64  `gorm:"->;-:migration" json:"member_count"`     // 成員數量，由查詢計算
}

// RoomMember 表示用戶與房間的成員關係
//
// (RoomID, UserID) 必須唯一，同一個用戶不能重複加入同一個房間。
// 離開房間時直接刪除該列，所以這裡不使用 gorm.Model 的軟刪除。
type RoomMember struct {
	ID       uint      `gorm:"primarykey" json:"id"`
	RoomID   uint      `gorm:"uniqueIndex:idx_room_members_room_user;not null" json:"room_id"`
	UserID   uint      `gorm:"uniqueIndex:idx_room_members_room_user;not null" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}
