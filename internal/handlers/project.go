package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/docstack/docstack/internal/middleware"
	"github.com/docstack/docstack/internal/services"
	"github.com/docstack/docstack/pkg/response"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type AddParticipantRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

func parseProjectID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("project_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return 0, false
	}
	return uint(id), true
}

// Create creates a project with the caller as its first admin
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.CreateForUser(&req, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, project)
}

// List returns the caller's projects
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.ListForUser(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, projects)
}

// Get returns one project the caller is a member of
// GET /api/projects/:project_id
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetForUser(projectID, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, project)
}

// Update renames a project (admin only)
// PUT /api/projects/:project_id
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.UpdateForUser(projectID, &req, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, project)
}

// Delete removes a project, its memberships and documents (admin only)
// DELETE /api/projects/:project_id
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteForUser(projectID, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}

// AddParticipant adds a user as participant (admin only)
// POST /api/projects/:project_id/participants
func (h *ProjectHandler) AddParticipant(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req AddParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.projectService.AddParticipant(projectID, req.UserID, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, gin.H{"message": "participant added successfully"})
}

// ListMembers returns all memberships of a project
// GET /api/projects/:project_id/members
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	members, err := h.projectService.ListMembers(projectID, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, members)
}
