package repository

import "chatroom_web/internal/storage"

type Repositories struct {
	User    UserRepository
	Room    RoomRepository
	Member  MemberRepository
	Message MessageRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Room:    NewRoomRepository(db),
		Member:  NewMemberRepository(db),
		Message: NewMessageRepository(db),
	}
}
