package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"synopsis/internal/storage"
	"synopsis/internal/store"
	"synopsis/internal/utils"
)

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron    *cron.Cron
	content *store.Store
	backend storage.Backend
	logger  *logrus.Logger

	backupEnabled bool
	backupCron    string
	backupDir     string
	backupKeep    int
}

// NewScheduler creates a new scheduler
func NewScheduler(
	content *store.Store,
	backend storage.Backend,
	backupEnabled bool,
	backupCron string,
	backupDir string,
	backupKeep int,
	logger *logrus.Logger,
) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		content:       content,
		backend:       backend,
		backupEnabled: backupEnabled,
		backupCron:    backupCron,
		backupDir:     backupDir,
		backupKeep:    backupKeep,
		logger:        logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	if s.backupEnabled {
		_, err := s.cron.AddFunc(s.backupCron, func() {
			s.runBackup()
		})
		if err != nil {
			return fmt.Errorf("failed to add backup job: %w", err)
		}
	}

	// Every hour: log collection statistics
	_, err := s.cron.AddFunc("0 * * * *", func() {
		s.runStatsLog()
	})
	if err != nil {
		return fmt.Errorf("failed to add stats job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runBackup snapshots the raw content document to the backup directory
func (s *Scheduler) runBackup() {
	s.logger.Info("Running scheduled backup")

	raw, err := s.backend.Get(store.ContentKey)
	if err != nil {
		s.logger.WithError(err).Error("Backup failed to read content")
		return
	}
	if raw == nil {
		s.logger.Debug("No content to back up")
		return
	}

	path, err := utils.WriteBackup(s.backupDir, raw, s.backupKeep)
	if err != nil {
		s.logger.WithError(err).Error("Backup failed")
		return
	}
	s.logger.WithField("path", path).Info("Backup written")
}

// runStatsLog logs a summary of the collection
func (s *Scheduler) runStatsLog() {
	stats := s.content.ComputeStats()
	s.logger.WithFields(logrus.Fields{
		"total":     stats.TotalItems,
		"movies":    stats.Movies,
		"series":    stats.Series,
		"favorites": stats.Favorites,
	}).Info("Collection stats")
}
