package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chatroom_web/internal/service"
)

// RoomHandler 處理與聊天房間相關的請求
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler 創建一個新的 RoomHandler 實例
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// parseRoomID 解析路徑中的房間 ID，非數字時返回錯誤
func parseRoomID(c *gin.Context) (uint, bool) {
	roomID, err := strconv.ParseUint(c.Param("roomId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的房間 ID"})
		return 0, false
	}
	return uint(roomID), true
}

// CreateRoom 處理創建新房間的請求
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required,max=100"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	room, err := h.roomService.CreateRoom(input.Name, input.Description, userID.(uint))
	if err != nil {
		log.Printf("create room failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "創建房間失敗"})
		return
	}

	c.JSON(http.StatusCreated, room)
}

// ListMyRooms 返回當前用戶已加入的房間
func (h *RoomHandler) ListMyRooms(c *gin.Context) {
	userID, _ := c.Get("userID")

	rooms, err := h.roomService.ListUserRooms(userID.(uint))
	if err != nil {
		log.Printf("list user rooms failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法取得房間列表"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// ListAllRooms 返回所有房間，供用戶瀏覽加入
func (h *RoomHandler) ListAllRooms(c *gin.Context) {
	rooms, err := h.roomService.ListAllRooms()
	if err != nil {
		log.Printf("list all rooms failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法取得房間列表"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// JoinRoom 處理加入房間的請求，重複加入不會報錯
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	userID, _ := c.Get("userID")

	if err := h.roomService.JoinRoom(roomID, userID.(uint)); err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
			return
		}
		log.Printf("join room failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "加入房間失敗"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "成功加入房間"})
}

// LeaveRoom 處理離開房間的請求，本來就不在房間內也視為成功
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	userID, _ := c.Get("userID")

	if err := h.roomService.LeaveRoom(roomID, userID.(uint)); err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
			return
		}
		log.Printf("leave room failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "離開房間失敗"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "成功離開房間"})
}

// ListMembers 返回房間的所有成員
func (h *RoomHandler) ListMembers(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	members, err := h.roomService.ListRoomMembers(roomID)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
			return
		}
		log.Printf("list room members failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法取得成員列表"})
		return
	}

	c.JSON(http.StatusOK, members)
}
