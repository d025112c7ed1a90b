package service

import (
	"chatroom_web/internal/repository"
)

type Services struct {
	User     *UserService
	Room     *RoomService
	Message  *MessageService
	Notifier *RoomNotifier
}

func NewServices(repos *repository.Repositories) *Services {
	notifier := NewRoomNotifier()

	userService := NewUserService(repos.User)
	roomService := NewRoomService(repos.Room, repos.Member, notifier)
	messageService := NewMessageService(repos.Message, repos.Room, notifier)

	return &Services{
		User:     userService,
		Room:     roomService,
		Message:  messageService,
		Notifier: notifier,
	}
}
