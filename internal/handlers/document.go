package handlers

import (
	"io"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/docstack/docstack/internal/middleware"
	"github.com/docstack/docstack/internal/services"
	"github.com/docstack/docstack/pkg/response"
)

const (
	maxFilenameLen = 128
	maxFileTypeLen = 16
)

type DocumentHandler struct {
	documentService *services.DocumentService
}

func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func parseDocumentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("document_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid document id")
		return 0, false
	}
	return uint(id), true
}

// readUpload extracts the multipart "file" part. The filename is reduced to
// its base name so a crafted part cannot escape the project directory.
func readUpload(c *gin.Context) (*services.Upload, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return nil, false
	}

	filename := filepath.Base(fileHeader.Filename)
	if filename == "" || filename == "." || filename == ".." || filename == "/" {
		response.BadRequest(c, "invalid filename")
		return nil, false
	}
	if len(filename) > maxFilenameLen {
		response.BadRequest(c, "filename too long")
		return nil, false
	}

	fileType := fileHeader.Header.Get("Content-Type")
	if len(fileType) > maxFileTypeLen {
		response.BadRequest(c, "file type too long")
		return nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c, "failed to read uploaded file")
		return nil, false
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		response.ServerError(c, "failed to read uploaded file")
		return nil, false
	}

	return &services.Upload{
		Filename: filename,
		FileType: fileType,
		Content:  content,
	}, true
}

// Upload stores a new document in a project
// POST /api/projects/:project_id/documents
func (h *DocumentHandler) Upload(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	upload, ok := readUpload(c)
	if !ok {
		return
	}

	doc, err := h.documentService.CreateForProject(projectID, upload, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, doc)
}

// List returns a project's documents
// GET /api/projects/:project_id/documents
func (h *DocumentHandler) List(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	docs, err := h.documentService.ListForProject(projectID, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, docs)
}

// Get returns one document's metadata
// GET /api/projects/:project_id/documents/:document_id
func (h *DocumentHandler) Get(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}
	documentID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.GetForProject(projectID, documentID, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, doc)
}

// Download streams a document's content
// GET /api/projects/:project_id/documents/:document_id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}
	documentID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.GetForProject(projectID, documentID, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if doc.FileType != "" {
		c.Header("Content-Type", doc.FileType)
	}
	c.FileAttachment(h.documentService.ContentPath(doc), doc.Filename)
}

// Update replaces a document's content and optionally renames it
// PUT /api/projects/:project_id/documents/:document_id
func (h *DocumentHandler) Update(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}
	documentID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	upload, ok := readUpload(c)
	if !ok {
		return
	}

	doc, err := h.documentService.UpdateForProject(projectID, documentID, upload, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, doc)
}

// Delete removes a document and its content
// DELETE /api/projects/:project_id/documents/:document_id
func (h *DocumentHandler) Delete(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}
	documentID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	if err := h.documentService.DeleteForProject(projectID, documentID, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}
