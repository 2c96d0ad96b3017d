package services

import (
	"io"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/docstack/docstack/internal/models"
	"github.com/docstack/docstack/internal/repositories"
)

// DocumentService coordinates the metadata table and the blob store. The two
// media share no transaction, so operations follow a strict ordering
// discipline: create writes the row before the bytes, delete removes the
// bytes before the row. A crash between the two steps can only ever leave a
// row whose bytes are missing, which the reconciliation job cleans up; an
// unowned file on disk is impossible.
type DocumentService struct {
	documents *repositories.DocumentRepository
	gate      *ProjectService
	store     BlobStore
}

func NewDocumentService(db *gorm.DB, gate *ProjectService, store BlobStore) *DocumentService {
	return &DocumentService{
		documents: repositories.NewDocumentRepository(db),
		gate:      gate,
		store:     store,
	}
}

// Upload carries a file's name, declared type and content through the
// service layer.
type Upload struct {
	Filename string
	FileType string
	Content  []byte
}

// validFilename reports whether name is a single path element. The blob store
// derives disk locations from filenames, so "..", separators, and the like
// would resolve outside the project directory.
func validFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return name == filepath.Base(name)
}

// CreateForProject stores a new document. The caller needs any role on the
// project; filenames must be unique within it.
func (s *DocumentService) CreateForProject(projectID uint, file *Upload, userID uint) (*models.Document, error) {
	project, err := s.gate.resolveForUser(projectID, userID, models.RoleParticipant)
	if err != nil {
		return nil, err
	}

	if !validFilename(file.Filename) {
		return nil, ErrInvalidFilename
	}

	existing, err := s.documents.GetByFilename(project.ID, file.Filename)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateFilename
	}

	doc := &models.Document{
		ProjectID: project.ID,
		Filename:  file.Filename,
		FileType:  file.FileType,
	}
	if err := s.documents.Create(doc); err != nil {
		return nil, err
	}

	if err := s.store.Write(doc.ProjectID, doc.Filename, file.Content); err != nil {
		// Row-then-bytes: a failed write here leaves an orphan row for the
		// reconciler rather than an unowned file.
		return nil, err
	}
	return doc, nil
}

// ListForProject returns the project's document metadata.
func (s *DocumentService) ListForProject(projectID, userID uint) ([]models.Document, error) {
	project, err := s.gate.resolveForUser(projectID, userID, models.RoleParticipant)
	if err != nil {
		return nil, err
	}
	return s.documents.ListForProject(project.ID)
}

// GetForProject returns a single document's metadata.
func (s *DocumentService) GetForProject(projectID, documentID, userID uint) (*models.Document, error) {
	project, err := s.gate.resolveForUser(projectID, userID, models.RoleParticipant)
	if err != nil {
		return nil, err
	}

	doc, err := s.documents.GetByID(project.ID, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// OpenContent returns the document's metadata and a reader over its bytes.
// The caller closes the reader.
func (s *DocumentService) OpenContent(projectID, documentID, userID uint) (*models.Document, io.ReadCloser, error) {
	doc, err := s.GetForProject(projectID, documentID, userID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.store.Open(doc.ProjectID, doc.Filename)
	if err != nil {
		return nil, nil, err
	}
	return doc, rc, nil
}

// ContentPath returns the derived storage path for a document, for handlers
// that stream the file directly.
func (s *DocumentService) ContentPath(doc *models.Document) string {
	return s.store.Path(doc.ProjectID, doc.Filename)
}

// UpdateForProject replaces a document's content and optionally its filename
// and type. A rename is checked for collisions against every other document
// in the project. The old bytes are removed first (their absence is
// tolerated), then the row is saved, then the new bytes are written at the
// possibly-new derived path, so a rename moves the stored content.
func (s *DocumentService) UpdateForProject(projectID, documentID uint, file *Upload, userID uint) (*models.Document, error) {
	doc, err := s.GetForProject(projectID, documentID, userID)
	if err != nil {
		return nil, err
	}

	if file.Filename != "" && file.Filename != doc.Filename {
		if !validFilename(file.Filename) {
			return nil, ErrInvalidFilename
		}
		existing, err := s.documents.GetByFilename(doc.ProjectID, file.Filename)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDuplicateFilename
		}
	}

	if err := s.store.Remove(doc.ProjectID, doc.Filename); err != nil {
		return nil, err
	}

	if file.Filename != "" {
		doc.Filename = file.Filename
	}
	if file.FileType != "" {
		doc.FileType = file.FileType
	}
	if err := s.documents.Save(doc); err != nil {
		return nil, err
	}

	if err := s.store.Write(doc.ProjectID, doc.Filename, file.Content); err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteForProject removes a document's bytes, then its row. Missing bytes
// are not an error, so deleting an orphaned row always succeeds.
func (s *DocumentService) DeleteForProject(projectID, documentID, userID uint) error {
	doc, err := s.GetForProject(projectID, documentID, userID)
	if err != nil {
		return err
	}

	if err := s.store.Remove(doc.ProjectID, doc.Filename); err != nil {
		return err
	}
	return s.documents.Delete(doc)
}
