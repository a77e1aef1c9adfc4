package services

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "expenses/internal/errors"
	"expenses/internal/financisto"
	"expenses/internal/integrity"
	"expenses/internal/logger"
	"expenses/internal/uuid"
)

// RestoreJobStatus is the lifecycle state of a restore job.
type RestoreJobStatus string

const (
	RestoreJobRunning   RestoreJobStatus = "running"
	RestoreJobSucceeded RestoreJobStatus = "succeeded"
	RestoreJobFailed    RestoreJobStatus = "failed"
)

// RestoreJob tracks one import invocation. Succeeded and failed are the two
// terminal notifications: exactly one of them is reached per invocation,
// after both the import and the integrity-fix phases complete or the first
// phase fails.
type RestoreJob struct {
	ID         string           `json:"id"`
	FilePath   string           `json:"file_path"`
	Status     RestoreJobStatus `json:"status"`
	Error      string           `json:"error,omitempty"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt *time.Time       `json:"finished_at,omitempty"`
}

// Notifier receives the terminal outcome of a restore job. Implementations
// are called from the restore goroutine.
type Notifier interface {
	RestoreSucceeded(job *RestoreJob)
	RestoreFailed(job *RestoreJob, err error)
}

// restoreService runs the import pipeline and tracks job state.
type restoreService struct {
	db       *gorm.DB
	log      *zap.SugaredLogger
	notifier Notifier

	mu      sync.Mutex
	jobs    map[string]*RestoreJob
	running bool
}

// NewRestoreService creates a new RestoreServicer. notifier may be nil.
func NewRestoreService(db *gorm.DB, notifier Notifier) RestoreServicer {
	return &restoreService{
		db:       db,
		log:      logger.Get(),
		notifier: notifier,
		jobs:     make(map[string]*RestoreJob),
	}
}

// StartImport launches the import pipeline as a single sequential background
// task. The pipeline itself provides no mutual exclusion, so only one import
// may run at a time.
func (s *restoreService) StartImport(path string) (*RestoreJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil, apperrors.ErrImportInProgress
	}

	job := &RestoreJob{
		ID:        uuid.New(),
		FilePath:  path,
		Status:    RestoreJobRunning,
		StartedAt: time.Now().UTC(),
	}
	s.jobs[job.ID] = job
	s.running = true

	go s.run(job)

	return snapshotJob(job), nil
}

func (s *restoreService) run(job *RestoreJob) {
	err := s.RunImport(job.FilePath)

	s.mu.Lock()
	finishedAt := time.Now().UTC()
	job.FinishedAt = &finishedAt
	if err != nil {
		job.Status = RestoreJobFailed
		job.Error = err.Error()
	} else {
		job.Status = RestoreJobSucceeded
	}
	s.running = false
	done := snapshotJob(job)
	s.mu.Unlock()

	if err != nil {
		s.log.Errorw("restore failed", "job_id", done.ID, "file", done.FilePath, "error", err)
		if s.notifier != nil {
			s.notifier.RestoreFailed(done, err)
		}
		return
	}
	s.log.Infow("restore succeeded", "job_id", done.ID, "file", done.FilePath)
	if s.notifier != nil {
		s.notifier.RestoreSucceeded(done)
	}
}

// RunImport restores the backup at path and then recomputes the derived
// account fields. It blocks until both phases finish; the caller is
// responsible for keeping it off any interactive thread.
func (s *restoreService) RunImport(path string) error {
	if err := financisto.NewImporter(s.db).Run(path); err != nil {
		return err
	}
	return integrity.NewFixer(s.db).Fix()
}

// FixIntegrity recomputes derived account fields without importing.
func (s *restoreService) FixIntegrity() error {
	return integrity.NewFixer(s.db).Fix()
}

// GetJob returns a snapshot of the given job.
func (s *restoreService) GetJob(id string) (*RestoreJob, error) {
	if !uuid.IsValid(id) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid job id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	return snapshotJob(job), nil
}

// snapshotJob copies a job so callers never observe concurrent mutation.
func snapshotJob(job *RestoreJob) *RestoreJob {
	copied := *job
	return &copied
}
