package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/docstack/docstack/internal/models"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// GetByID returns the project or (nil, nil) when no row exists.
func (r *ProjectRepository) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// CreateForUser inserts the project and the creator's admin membership in a
// single transaction. Either both rows become visible or neither does.
func (r *ProjectRepository) CreateForUser(name, description string, userID uint) (*models.Project, error) {
	project := models.Project{
		Name:        name,
		Description: description,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		member := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    userID,
			Role:      models.RoleAdmin,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListForUser returns every project the user holds any membership on.
func (r *ProjectRepository) ListForUser(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Order("projects.id").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) Save(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes the project, its memberships, and its document rows in one
// transaction. Byte-content cleanup is the caller's concern.
func (r *ProjectRepository) Delete(projectID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, projectID).Error
	})
}

// HasRole reports whether the user holds one of the given roles on the project.
func (r *ProjectRepository) HasRole(projectID, userID uint, roles ...string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ? AND role IN ?", projectID, userID, roles).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsMember reports whether any association exists for (user, project),
// regardless of role.
func (r *ProjectRepository) IsMember(projectID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProjectRepository) AddMember(projectID, userID uint, role string) error {
	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	return r.db.Create(&member).Error
}

// ListMembers returns all memberships of a project with users preloaded.
func (r *ProjectRepository) ListMembers(projectID uint) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	err := r.db.Where("project_id = ?", projectID).
		Preload("User").
		Order("id").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// ListByRole returns the memberships of a project holding the given role.
// Derived sets like "all admins" are computed here instead of being cached on
// the project, so they can never go stale.
func (r *ProjectRepository) ListByRole(projectID uint, role string) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	err := r.db.Where("project_id = ? AND role = ?", projectID, role).
		Preload("User").
		Order("id").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
