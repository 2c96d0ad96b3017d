package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/docstack/docstack/internal/models"
	"github.com/docstack/docstack/internal/storage"
)

// setupTestDB opens an isolated in-memory sqlite database migrated with the
// full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Document{},
		&models.SystemLog{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestStore(t *testing.T) *storage.FileStore {
	t.Helper()
	return storage.NewFileStore(t.TempDir())
}

// registerUser creates a user through the service layer and returns it.
func registerUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	svc := NewUserService(db)
	user, err := svc.Register(&RegisterRequest{
		Username:        username,
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	if err != nil {
		t.Fatalf("failed to register user %q: %v", username, err)
	}
	return user
}

// createProject creates a project owned by the given user.
func createProject(t *testing.T, svc *ProjectService, name string, userID uint) *models.Project {
	t.Helper()

	project, err := svc.CreateForUser(&CreateProjectRequest{Name: name}, userID)
	if err != nil {
		t.Fatalf("failed to create project %q: %v", name, err)
	}
	return project
}
