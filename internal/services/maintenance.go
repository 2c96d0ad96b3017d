package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/docstack/docstack/internal/models"
	"github.com/docstack/docstack/internal/repositories"
	"github.com/docstack/docstack/pkg/logger"
)

const (
	// logRetentionDays is how long system log rows are kept.
	logRetentionDays = 30

	// orphanGraceWindow is how old a document row must be before a missing
	// content file is treated as a failed write rather than one in flight.
	orphanGraceWindow = time.Hour
)

// Maintenance runs the background jobs: pruning old system logs and deleting
// document rows whose byte content never landed on disk.
type Maintenance struct {
	db        *gorm.DB
	documents *repositories.DocumentRepository
	store     BlobStore
	cron      *cron.Cron
}

func NewMaintenance(db *gorm.DB, store BlobStore) *Maintenance {
	return &Maintenance{
		db:        db,
		documents: repositories.NewDocumentRepository(db),
		store:     store,
		cron:      cron.New(),
	}
}

// Start schedules the jobs. Log cleanup runs daily, orphan reconciliation
// hourly.
func (m *Maintenance) Start() {
	m.cron.AddFunc("0 3 * * *", m.CleanupSystemLogs)
	m.cron.AddFunc("@hourly", m.ReconcileOrphanedDocuments)
	m.cron.Start()
	logger.Info().Msg("maintenance schedulers started")
}

func (m *Maintenance) Stop() {
	m.cron.Stop()
	logger.Info().Msg("maintenance schedulers stopped")
}

// CleanupSystemLogs deletes system log rows older than the retention period.
func (m *Maintenance) CleanupSystemLogs() {
	cutoff := time.Now().AddDate(0, 0, -logRetentionDays)
	result := m.db.Where("created_at < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		logger.Error().Err(result.Error).Msg("system log cleanup failed")
		return
	}
	if result.RowsAffected > 0 {
		logger.Info().Int64("deleted", result.RowsAffected).Msg("system logs pruned")
	}
}

// ReconcileOrphanedDocuments removes metadata rows whose content file is
// missing. Document creation writes the row before the bytes, so a crash or
// I/O failure mid-upload strands exactly this kind of row. Rows younger than
// the grace window are skipped; their write may still be in flight.
func (m *Maintenance) ReconcileOrphanedDocuments() {
	docs, err := m.documents.ListAll()
	if err != nil {
		logger.Error().Err(err).Msg("orphan reconciliation: listing documents failed")
		return
	}

	cutoff := time.Now().Add(-orphanGraceWindow)
	var removed int
	for i := range docs {
		doc := &docs[i]
		if doc.CreatedAt.After(cutoff) {
			continue
		}
		if m.store.Exists(doc.ProjectID, doc.Filename) {
			continue
		}
		if err := m.documents.Delete(doc); err != nil {
			logger.Error().Err(err).
				Uint("document_id", doc.ID).
				Msg("orphan reconciliation: delete failed")
			continue
		}
		removed++
	}

	if removed > 0 {
		logger.Info().Int("removed", removed).Msg("orphaned document rows reconciled")
	}
}
