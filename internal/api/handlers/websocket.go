package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"chatroom_web/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理房間即時消息訂閱的 WebSocket 連接。
// 訂閱是唯讀的，消息的發送仍然走 REST 路徑。
type WebSocketHandler struct {
	notifier    *service.RoomNotifier
	roomService *service.RoomService
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(notifier *service.RoomNotifier, roomService *service.RoomService) *WebSocketHandler {
	return &WebSocketHandler{
		notifier:    notifier,
		roomService: roomService,
	}
}

// Subscribe 處理訂閱房間即時消息的請求
func (h *WebSocketHandler) Subscribe(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	userID, _ := c.Get("userID")
	userIDUint := userID.(uint)

	// 只有房間成員可以訂閱即時消息
	isMember, err := h.roomService.IsMember(roomID, userIDUint)
	if err != nil {
		log.Printf("membership check failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法確認成員身份"})
		return
	}
	if !isMember {
		c.JSON(http.StatusForbidden, gin.H{"error": "用戶未加入此房間"})
		return
	}

	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "升級WebSocket失敗"})
		return
	}

	sub := &service.Subscriber{
		Conn:     conn,
		UserID:   userIDUint,
		RoomID:   roomID,
		SendChan: make(chan *service.FeedEvent, 256),
	}

	// 阻塞直到連接關閉
	h.notifier.HandleSubscriber(sub)
}
