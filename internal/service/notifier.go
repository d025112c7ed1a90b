package service

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chatroom_web/internal/models"
)

// FeedEvent 是推送給訂閱者的事件封裝
type FeedEvent struct {
	Type    string          `json:"type"` // "message" 或 "system"
	Content string          `json:"content,omitempty"`
	RoomID  uint            `json:"room_id"`
	Message *models.Message `json:"message,omitempty"`
}

// Subscriber 代表一個訂閱房間即時消息的 WebSocket 客戶端
type Subscriber struct {
	Conn     *websocket.Conn // WebSocket 連接
	UserID   uint            // 用戶 ID
	RoomID   uint            // 房間 ID
	SendChan chan *FeedEvent // 事件發送通道，用於異步傳送
}

// RoomNotifier 管理各房間的訂閱者並廣播已持久化的消息。
// 消息的創建只走 REST 路徑，這裡不接受客戶端寫入。
type RoomNotifier struct {
	subscribers map[uint]map[*Subscriber]bool // 兩層 map: roomID -> subscriber -> bool
	subMux      sync.RWMutex                  // 用於保護 subscribers map 的讀寫鎖
}

// NewRoomNotifier 創建並初始化新的房間通知器
func NewRoomNotifier() *RoomNotifier {
	return &RoomNotifier{
		subscribers: make(map[uint]map[*Subscriber]bool),
	}
}

// HandleSubscriber 處理新的訂閱連接，阻塞直到連接關閉
func (n *RoomNotifier) HandleSubscriber(sub *Subscriber) {
	n.addSubscriber(sub)

	// 確保連接關閉時清理資源
	defer func() {
		n.unsubscribe(sub)
		sub.Conn.Close()
	}()

	go n.writePump(sub)
	n.readPump(sub)
}

// readPump 維持連接存活並偵測客戶端斷線。
// 訂閱是唯讀的，客戶端送來的資料幀一律丟棄。
func (n *RoomNotifier) readPump(sub *Subscriber) {
	sub.Conn.SetReadLimit(512)
	sub.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	sub.Conn.SetPongHandler(func(string) error {
		sub.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}
	}
}

// writePump 處理向訂閱者發送事件的邏輯
func (n *RoomNotifier) writePump(sub *Subscriber) {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.SendChan:
			sub.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				sub.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			payload, err := json.Marshal(event)
			if err != nil {
				log.Printf("event encoding error: %v", err)
				continue
			}

			if err := sub.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			sub.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := sub.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// BroadcastMessage 將一條已持久化的消息推送給房間內所有訂閱者
func (n *RoomNotifier) BroadcastMessage(message *models.Message) {
	n.broadcast(message.RoomID, &FeedEvent{
		Type:    "message",
		RoomID:  message.RoomID,
		Message: message,
	})
}

// BroadcastSystemMessage 發送系統事件到指定房間
func (n *RoomNotifier) BroadcastSystemMessage(roomID uint, content string) {
	n.broadcast(roomID, &FeedEvent{
		Type:    "system",
		RoomID:  roomID,
		Content: content,
	})
}

// broadcast 在讀鎖內發送事件。發送一律在鎖內、關閉通道一律在寫鎖內，
// 所以不會對已關閉的通道發送。
func (n *RoomNotifier) broadcast(roomID uint, event *FeedEvent) {
	n.subMux.RLock()
	var slow []*Subscriber
	for sub := range n.subscribers[roomID] {
		select {
		case sub.SendChan <- event:
			// 事件成功加入發送隊列
		default:
			// 訂閱者隊列已滿，稍後移除
			slow = append(slow, sub)
		}
	}
	n.subMux.RUnlock()

	for _, sub := range slow {
		n.unsubscribe(sub)
		sub.Conn.Close()
	}
}

// addSubscriber 安全地添加新的訂閱者
func (n *RoomNotifier) addSubscriber(sub *Subscriber) {
	n.subMux.Lock()
	defer n.subMux.Unlock()

	if n.subscribers[sub.RoomID] == nil {
		n.subscribers[sub.RoomID] = make(map[*Subscriber]bool)
	}
	n.subscribers[sub.RoomID][sub] = true
}

// unsubscribe 移除訂閱者並關閉其發送通道，重複呼叫是安全的
func (n *RoomNotifier) unsubscribe(sub *Subscriber) {
	n.subMux.Lock()
	defer n.subMux.Unlock()

	subs, ok := n.subscribers[sub.RoomID]
	if !ok {
		return
	}
	if _, present := subs[sub]; !present {
		return
	}

	delete(subs, sub)
	close(sub.SendChan)
	// 如果房間沒有訂閱者了，刪除房間
	if len(subs) == 0 {
		delete(n.subscribers, sub.RoomID)
	}
}

// CountSubscribers 獲取指定房間的在線訂閱者數量
func (n *RoomNotifier) CountSubscribers(roomID uint) int {
	n.subMux.RLock()
	defer n.subMux.RUnlock()

	return len(n.subscribers[roomID])
}
