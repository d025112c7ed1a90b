package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"chatroom_web/internal/service"
)

// MessageHandler 處理與聊天消息相關的請求
type MessageHandler struct {
	messageService *service.MessageService
}

// NewMessageHandler 創建一個新的 MessageHandler 實例
func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// ListMessages 處理查詢和輪詢消息的請求。
//
// 不帶 since 時返回最新一頁消息（limit/offset 分頁）。
// 帶 since（RFC3339 時間戳）時只返回創建時間嚴格大於 since 的消息，
// 最多 50 筆，這是客戶端增量輪詢的契約。
func (h *MessageHandler) ListMessages(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	if sinceStr := c.Query("since"); sinceStr != "" {
		since, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 since 時間戳"})
			return
		}

		messages, err := h.messageService.ListMessagesSince(roomID, since)
		if err != nil {
			h.renderListError(c, err)
			return
		}

		c.JSON(http.StatusOK, messages)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.messageService.ListMessages(roomID, limit, offset)
	if err != nil {
		h.renderListError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// CreateMessage 處理發送消息的請求
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	message, err := h.messageService.SendMessage(roomID, userID.(uint), input.Content)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
			return
		}
		log.Printf("send message failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "發送消息失敗"})
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) renderListError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
		return
	}
	log.Printf("list messages failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "無法取得消息列表"})
}
