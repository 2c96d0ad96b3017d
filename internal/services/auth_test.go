package services

import (
	"errors"
	"testing"

	"github.com/docstack/docstack/internal/auth"
	"github.com/docstack/docstack/internal/models"
)

func newTestAuthService(t *testing.T) (*AuthService, *UserService) {
	t.Helper()

	db := setupTestDB(t)
	tokens := auth.NewTokenService("test-secret-key", 30)
	return NewAuthService(db, tokens), NewUserService(db)
}

func TestRegisterAndLogin(t *testing.T) {
	authSvc, userSvc := newTestAuthService(t)

	user, err := userSvc.Register(&RegisterRequest{
		Username:        "alice",
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Error("registered user should have an ID")
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, want %q", user.Username, "alice")
	}
	if user.Password == "password123" {
		t.Error("stored password should be hashed, not plaintext")
	}

	result, err := authSvc.Login(&LoginRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Token == "" {
		t.Error("Login should return a token")
	}
	if result.User.ID != user.ID {
		t.Errorf("Login user ID = %d, want %d", result.User.ID, user.ID)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	_, userSvc := newTestAuthService(t)

	if _, err := userSvc.Register(&RegisterRequest{
		Username:        "alice",
		Password:        "password123",
		PasswordConfirm: "password123",
	}); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	_, err := userSvc.Register(&RegisterRequest{
		Username:        "alice",
		Password:        "different456",
		PasswordConfirm: "different456",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Register with taken username = %v, want ErrUsernameTaken", err)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	authSvc, userSvc := newTestAuthService(t)

	if _, err := userSvc.Register(&RegisterRequest{
		Username:        "alice",
		Password:        "password123",
		PasswordConfirm: "password123",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "wrongpassword"},
		{"unknown username", "nobody", "password123"},
		{"empty password", "alice", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authSvc.Login(&LoginRequest{Username: tt.username, Password: tt.password})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestCurrentUser(t *testing.T) {
	authSvc, userSvc := newTestAuthService(t)

	user, err := userSvc.Register(&RegisterRequest{
		Username:        "alice",
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	result, err := authSvc.Login(&LoginRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	current, err := authSvc.CurrentUser(result.Token)
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if current.ID != user.ID {
		t.Errorf("CurrentUser ID = %d, want %d", current.ID, user.ID)
	}
	if current.Username != "alice" {
		t.Errorf("CurrentUser username = %q, want %q", current.Username, "alice")
	}
}

func TestCurrentUser_InvalidToken(t *testing.T) {
	authSvc, _ := newTestAuthService(t)

	_, err := authSvc.CurrentUser("not.a.token")
	if !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("CurrentUser with garbage token = %v, want ErrInvalidToken", err)
	}
}

func TestCurrentUser_DeletedUser(t *testing.T) {
	db := setupTestDB(t)
	tokens := auth.NewTokenService("test-secret-key", 30)
	authSvc := NewAuthService(db, tokens)

	user := registerUser(t, db, "alice")
	result, err := authSvc.Login(&LoginRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if err := db.Delete(&models.User{}, user.ID).Error; err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	_, err = authSvc.CurrentUser(result.Token)
	if !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("CurrentUser for deleted user = %v, want ErrInvalidToken", err)
	}
}
