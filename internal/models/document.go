package models

import "time"

// Document is the metadata row for an uploaded file. The byte content lives
// on disk at a path derived from (project id, filename); filenames are unique
// within a project, not globally.
type Document struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_filename;not null" json:"project_id"`
	Filename  string    `gorm:"uniqueIndex:idx_project_filename;size:128;not null" json:"filename"`
	FileType  string    `gorm:"size:16;not null" json:"file_type"`
	CreatedAt time.Time `json:"created_at"`
}

func (Document) TableName() string { return "documents" }
