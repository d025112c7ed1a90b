package service

import (
	"chatroom_web/internal/models"
	"chatroom_web/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) CreateUser(user *models.User) error {
	return s.userRepo.Create(user)
}

func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	return s.userRepo.FindByUsername(username)
}

func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.FindByID(id)
}

// UpdateProfile 更新用戶的個人資料欄位，以 ID 為鍵 upsert
func (s *UserService) UpdateProfile(user *models.User) (*models.User, error) {
	if err := s.userRepo.Upsert(user); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(user.ID)
}
