package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/docstack/docstack/internal/auth"
	"github.com/docstack/docstack/internal/models"
	"github.com/docstack/docstack/internal/repositories"
	"github.com/docstack/docstack/internal/utils"
)

type AuthService struct {
	users  *repositories.UserRepository
	tokens *auth.TokenService
}

func NewAuthService(db *gorm.DB, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		users:  repositories.NewUserRepository(db),
		tokens: tokens,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token    string       `json:"token"`
	ExpireAt time.Time    `json:"expire_at"`
	User     *models.User `json:"user"`
}

// Login verifies credentials and issues an access token. Unknown usernames
// and wrong passwords fail identically.
func (s *AuthService) Login(req *LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, expireAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:    token,
		ExpireAt: expireAt,
		User:     user,
	}, nil
}

// CurrentUser resolves a bearer token to its user. A verified token whose
// subject no longer exists reports auth.ErrInvalidToken, so the caller cannot
// tell a deleted account from a forged token.
func (s *AuthService) CurrentUser(tokenString string) (*models.User, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, auth.ErrInvalidToken
	}
	return user, nil
}
