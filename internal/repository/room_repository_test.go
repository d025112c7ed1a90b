package repository

import (
	"testing"

	"chatroom_web/internal/models"
)

func TestCreateWithCreator_InsertsMembership(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")

	room := &models.Room{Name: "general", CreatorID: user.ID}
	repo := NewRoomRepository(db)
	if err := repo.CreateWithCreator(room); err != nil {
		t.Fatalf("CreateWithCreator() error = %v", err)
	}
	if room.ID == 0 {
		t.Fatal("CreateWithCreator() did not assign room ID")
	}

	// 創建房間後，創建者的成員列必須立刻存在
	var count int64
	if err := db.Model(&models.RoomMember{}).
		Where("room_id = ? AND user_id = ?", room.ID, user.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("failed to count memberships: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 creator membership, got %d", count)
	}
}

func TestCreateWithCreator_RollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")

	// 刪掉成員表讓第二步插入失敗，整個交易應回滾
	if err := db.Migrator().DropTable(&models.RoomMember{}); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}

	room := &models.Room{Name: "general", CreatorID: user.ID}
	repo := NewRoomRepository(db)
	if err := repo.CreateWithCreator(room); err == nil {
		t.Fatal("CreateWithCreator() expected error, got nil")
	}

	var count int64
	if err := db.Model(&models.Room{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rooms: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no room after rollback, got %d", count)
	}
}

func TestFindAllWithDetails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoomRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	room := createTestRoom(t, db, "general", alice.ID)

	rooms, err := repo.FindAllWithDetails()
	if err != nil {
		t.Fatalf("FindAllWithDetails() error = %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(rooms))
	}
	if rooms[0].MemberCount != 1 {
		t.Errorf("expected member_count 1, got %d", rooms[0].MemberCount)
	}
	if rooms[0].Creator.Username != "alice" {
		t.Errorf("expected creator alice, got %q", rooms[0].Creator.Username)
	}

	// bob 加入後成員數量變為 2
	memberRepo := NewMemberRepository(db)
	if err := memberRepo.Join(room.ID, bob.ID); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	rooms, err = repo.FindAllWithDetails()
	if err != nil {
		t.Fatalf("FindAllWithDetails() error = %v", err)
	}
	if rooms[0].MemberCount != 2 {
		t.Errorf("expected member_count 2 after join, got %d", rooms[0].MemberCount)
	}
}

func TestFindAllWithDetails_MissingCreator(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoomRepository(db)

	// 創建者不存在時，Creator 保持空白佔位，查詢不應失敗
	room := &models.Room{Name: "orphaned", CreatorID: 999}
	if err := repo.CreateWithCreator(room); err != nil {
		t.Fatalf("CreateWithCreator() error = %v", err)
	}

	rooms, err := repo.FindAllWithDetails()
	if err != nil {
		t.Fatalf("FindAllWithDetails() error = %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(rooms))
	}
	if rooms[0].Creator.Username != "" {
		t.Errorf("expected empty creator placeholder, got %q", rooms[0].Creator.Username)
	}
}

func TestFindByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoomRepository(db)
	memberRepo := NewMemberRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	general := createTestRoom(t, db, "general", alice.ID)
	createTestRoom(t, db, "random", bob.ID)

	// alice 只看得到自己加入的 general
	rooms, err := repo.FindByUserID(alice.ID)
	if err != nil {
		t.Fatalf("FindByUserID() error = %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room for alice, got %d", len(rooms))
	}
	if rooms[0].Name != "general" {
		t.Errorf("expected room general, got %q", rooms[0].Name)
	}

	// bob 加入 general 後，兩個房間都在他的列表裡
	if err := memberRepo.Join(general.ID, bob.ID); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	rooms, err = repo.FindByUserID(bob.ID)
	if err != nil {
		t.Fatalf("FindByUserID() error = %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms for bob, got %d", len(rooms))
	}
}
