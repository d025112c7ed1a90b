package repository

import (
	"fmt"
	"testing"
	"time"

	"chatroom_web/internal/models"
)

func TestFindByRoomID_AscendingOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	room := createTestRoom(t, db, "general", alice.ID)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	createTestMessage(t, db, room.ID, alice.ID, "hi", base)
	createTestMessage(t, db, room.ID, alice.ID, "there", base.Add(time.Second))

	messages, err := repo.FindByRoomID(room.ID, 50, 0)
	if err != nil {
		t.Fatalf("FindByRoomID() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Content != "hi" || messages[1].Content != "there" {
		t.Errorf("unexpected order: %q, %q", messages[0].Content, messages[1].Content)
	}
	for i := 1; i < len(messages); i++ {
		if messages[i-1].CreatedAt.After(messages[i].CreatedAt) {
			t.Errorf("messages not ascending at index %d", i)
		}
	}
}

func TestFindByRoomID_TieBrokenByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	room := createTestRoom(t, db, "general", alice.ID)

	// 相同的創建時間，以插入順序（ID）決定先後
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	first := createTestMessage(t, db, room.ID, alice.ID, "first", ts)
	second := createTestMessage(t, db, room.ID, alice.ID, "second", ts)

	messages, err := repo.FindByRoomID(room.ID, 50, 0)
	if err != nil {
		t.Fatalf("FindByRoomID() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].ID != first.ID || messages[1].ID != second.ID {
		t.Errorf("expected insertion order %d,%d, got %d,%d",
			first.ID, second.ID, messages[0].ID, messages[1].ID)
	}
}

func TestFindByRoomID_LimitAndOffset(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	room := createTestRoom(t, db, "general", alice.ID)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		createTestMessage(t, db, room.ID, alice.ID, fmt.Sprintf("msg-%d", i), base.Add(time.Duration(i)*time.Second))
	}

	// limit=2, offset=0 取最新兩筆，由舊到新返回
	messages, err := repo.FindByRoomID(room.ID, 2, 0)
	if err != nil {
		t.Fatalf("FindByRoomID() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Content != "msg-3" || messages[1].Content != "msg-4" {
		t.Errorf("unexpected page: %q, %q", messages[0].Content, messages[1].Content)
	}

	// offset=2 跳過兩筆更新的
	messages, err = repo.FindByRoomID(room.ID, 2, 2)
	if err != nil {
		t.Fatalf("FindByRoomID() error = %v", err)
	}
	if messages[0].Content != "msg-1" || messages[1].Content != "msg-2" {
		t.Errorf("unexpected page: %q, %q", messages[0].Content, messages[1].Content)
	}
}

func TestFindByRoomIDSince_StrictlyGreater(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	room := createTestRoom(t, db, "general", alice.ID)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	hi := createTestMessage(t, db, room.ID, alice.ID, "hi", base)
	createTestMessage(t, db, room.ID, alice.ID, "there", base.Add(time.Second))

	// since = hi 的時間戳，只能拿到 there，不能再拿到 hi
	messages, err := repo.FindByRoomIDSince(room.ID, hi.CreatedAt)
	if err != nil {
		t.Fatalf("FindByRoomIDSince() error = %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if messages[0].Content != "there" {
		t.Errorf("expected message there, got %q", messages[0].Content)
	}
}

func TestFindByRoomIDSince_CappedAtFifty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	room := createTestRoom(t, db, "general", alice.ID)

	cursor := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 1; i <= 60; i++ {
		createTestMessage(t, db, room.ID, alice.ID, fmt.Sprintf("msg-%d", i), cursor.Add(time.Duration(i)*time.Second))
	}

	messages, err := repo.FindByRoomIDSince(room.ID, cursor)
	if err != nil {
		t.Fatalf("FindByRoomIDSince() error = %v", err)
	}
	if len(messages) != DefaultMessageLimit {
		t.Fatalf("expected %d messages, got %d", DefaultMessageLimit, len(messages))
	}
	// 上限保留的是最新的 50 筆，最舊的 10 筆被擠掉
	if messages[0].Content != "msg-11" {
		t.Errorf("expected first message msg-11, got %q", messages[0].Content)
	}
	if messages[len(messages)-1].Content != "msg-60" {
		t.Errorf("expected last message msg-60, got %q", messages[len(messages)-1].Content)
	}
}

func TestFindByRoomIDSince_ZeroFallsBackToDefaultPage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	room := createTestRoom(t, db, "general", alice.ID)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	createTestMessage(t, db, room.ID, alice.ID, "hi", base)
	createTestMessage(t, db, room.ID, alice.ID, "there", base.Add(time.Second))

	messages, err := repo.FindByRoomIDSince(room.ID, time.Time{})
	if err != nil {
		t.Fatalf("FindByRoomIDSince() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Content != "hi" {
		t.Errorf("expected first message hi, got %q", messages[0].Content)
	}
}

func TestCreate_ContentRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	room := createTestRoom(t, db, "general", alice.ID)

	const content = "一段不應該被改動的消息，with mixed 內容 & symbols <>&\"'"
	message := &models.Message{
		RoomID:  room.ID,
		UserID:  alice.ID,
		Content: content,
	}
	if err := repo.Create(message); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	messages, err := repo.FindByRoomID(room.ID, 50, 0)
	if err != nil {
		t.Fatalf("FindByRoomID() error = %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if messages[0].Content != content {
		t.Errorf("content changed in round trip: %q", messages[0].Content)
	}
	if messages[0].Author.Username != "alice" {
		t.Errorf("expected author alice, got %q", messages[0].Author.Username)
	}
}

func TestFindByRoomID_ScopedToRoom(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	general := createTestRoom(t, db, "general", alice.ID)
	random := createTestRoom(t, db, "random", alice.ID)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	createTestMessage(t, db, general.ID, alice.ID, "in general", base)
	createTestMessage(t, db, random.ID, alice.ID, "in random", base)

	messages, err := repo.FindByRoomID(general.ID, 50, 0)
	if err != nil {
		t.Fatalf("FindByRoomID() error = %v", err)
	}
	if len(messages) != 1 || messages[0].Content != "in general" {
		t.Errorf("messages leaked across rooms: %v", messages)
	}
}
