package models

import (
	"gorm.io/gorm"
)

// Message 表示房間內的一條聊天消息
//
// 消息一旦創建就不可修改。顯示順序以 CreatedAt 為準，
// 相同時間戳時以 ID（插入順序）決定先後。
type Message struct {
	gorm.Model
	RoomID  uint   `gorm:"not null;index" json:"room_id"`     // 所屬房間 ID
	UserID  uint   `gorm:"not null" json:"user_id"`           // 發送者的用戶 ID
	Content string `gorm:"type:text;not null" json:"content"` // 消息內容
	Author  User   `gorm:"foreignKey:UserID" json:"author"`   // 發送者資料，列表查詢時載入
}
