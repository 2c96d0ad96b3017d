package services

import (
	"gorm.io/gorm"

	"github.com/docstack/docstack/internal/models"
	"github.com/docstack/docstack/internal/repositories"
	"github.com/docstack/docstack/pkg/logger"
)

// ProjectService owns the project lifecycle and the authorization gate every
// project- and document-level operation routes through.
type ProjectService struct {
	projects  *repositories.ProjectRepository
	documents *repositories.DocumentRepository
	users     *repositories.UserRepository
	store     BlobStore
}

func NewProjectService(db *gorm.DB, store BlobStore) *ProjectService {
	return &ProjectService{
		projects:  repositories.NewProjectRepository(db),
		documents: repositories.NewDocumentRepository(db),
		users:     repositories.NewUserRepository(db),
		store:     store,
	}
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=128"`
	Description string `json:"description"`
}

// resolveForUser is the single authorization nucleus. It loads the project
// (absent -> ErrNotFound) and checks the caller's role tier against minRole:
// an admin association satisfies both tiers, a participant association only
// the participant tier. Failing the check is ErrForbidden. No other code may
// re-implement this decision.
func (s *ProjectService) resolveForUser(projectID, userID uint, minRole string) (*models.Project, error) {
	project, err := s.projects.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	roles := []string{models.RoleAdmin}
	if minRole == models.RoleParticipant {
		roles = append(roles, models.RoleParticipant)
	}

	ok, err := s.projects.HasRole(projectID, userID, roles...)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return project, nil
}

// CreateForUser creates the project together with the creator's admin
// membership; the two rows appear atomically.
func (s *ProjectService) CreateForUser(req *CreateProjectRequest, userID uint) (*models.Project, error) {
	return s.projects.CreateForUser(req.Name, req.Description, userID)
}

// ListForUser returns every project the user is a member of, in either role.
func (s *ProjectService) ListForUser(userID uint) ([]models.Project, error) {
	return s.projects.ListForUser(userID)
}

// GetForUser returns the project if the caller holds any role on it.
func (s *ProjectService) GetForUser(projectID, userID uint) (*models.Project, error) {
	return s.resolveForUser(projectID, userID, models.RoleParticipant)
}

// UpdateForUser renames a project. Admin only.
func (s *ProjectService) UpdateForUser(projectID uint, req *CreateProjectRequest, userID uint) (*models.Project, error) {
	project, err := s.resolveForUser(projectID, userID, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	project.Name = req.Name
	project.Description = req.Description
	if err := s.projects.Save(project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteForUser removes the project, its memberships and its documents.
// Admin only. Document bytes are removed first, best effort, so a failure
// partway leaves at worst metadata rows without bytes, never unowned files.
func (s *ProjectService) DeleteForUser(projectID, userID uint) error {
	project, err := s.resolveForUser(projectID, userID, models.RoleAdmin)
	if err != nil {
		return err
	}

	docs, err := s.documents.ListForProject(project.ID)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.store.Remove(doc.ProjectID, doc.Filename); err != nil {
			logger.Warn().Err(err).
				Uint("project_id", doc.ProjectID).
				Str("filename", doc.Filename).
				Msg("failed to remove document content during project delete")
		}
	}

	return s.projects.Delete(project.ID)
}

// AddParticipant adds a user to the project with the participant role. The
// requester must be an admin. Adding a user who already holds any association
// is rejected, an existing admin is not silently downgraded.
func (s *ProjectService) AddParticipant(projectID, participantID, requesterID uint) error {
	project, err := s.resolveForUser(projectID, requesterID, models.RoleAdmin)
	if err != nil {
		return err
	}

	participant, err := s.users.GetByID(participantID)
	if err != nil {
		return err
	}
	if participant == nil {
		return ErrUserNotFound
	}

	isMember, err := s.projects.IsMember(project.ID, participant.ID)
	if err != nil {
		return err
	}
	if isMember {
		return ErrAlreadyMember
	}

	return s.projects.AddMember(project.ID, participant.ID, models.RoleParticipant)
}

// ListMembers returns the project's memberships. Any member may view them.
func (s *ProjectService) ListMembers(projectID, userID uint) ([]models.ProjectMember, error) {
	project, err := s.resolveForUser(projectID, userID, models.RoleParticipant)
	if err != nil {
		return nil, err
	}
	return s.projects.ListMembers(project.ID)
}

// ListAdmins returns the memberships holding the admin role.
func (s *ProjectService) ListAdmins(projectID, userID uint) ([]models.ProjectMember, error) {
	project, err := s.resolveForUser(projectID, userID, models.RoleParticipant)
	if err != nil {
		return nil, err
	}
	return s.projects.ListByRole(project.ID, models.RoleAdmin)
}
