package services

import (
	"gorm.io/gorm"

	"github.com/docstack/docstack/internal/models"
	"github.com/docstack/docstack/internal/repositories"
	"github.com/docstack/docstack/internal/utils"
)

type UserService struct {
	users *repositories.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{users: repositories.NewUserRepository(db)}
}

type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=4,max=64"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
}

// Register creates a new user with a hashed password. Usernames are unique
// and case-sensitive.
func (s *UserService) Register(req *RegisterRequest) (*models.User, error) {
	existing, err := s.users.GetByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	return s.users.Create(req.Username, hash)
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
