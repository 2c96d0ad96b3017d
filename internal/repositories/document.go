package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/docstack/docstack/internal/models"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// GetByID returns the document scoped to a project, or (nil, nil) when no row
// exists.
func (r *DocumentRepository) GetByID(projectID, documentID uint) (*models.Document, error) {
	var doc models.Document
	err := r.db.Where("project_id = ? AND id = ?", projectID, documentID).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// GetByFilename returns the document with the given filename in a project,
// or (nil, nil) when no row exists.
func (r *DocumentRepository) GetByFilename(projectID uint, filename string) (*models.Document, error) {
	var doc models.Document
	err := r.db.Where("project_id = ? AND filename = ?", projectID, filename).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) ListForProject(projectID uint) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.Where("project_id = ?", projectID).Order("id").Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *DocumentRepository) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

func (r *DocumentRepository) Save(doc *models.Document) error {
	return r.db.Save(doc).Error
}

func (r *DocumentRepository) Delete(doc *models.Document) error {
	return r.db.Delete(doc).Error
}

// ListAll returns every document row. Used by the reconciliation job.
func (r *DocumentRepository) ListAll() ([]models.Document, error) {
	var docs []models.Document
	if err := r.db.Order("id").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}
