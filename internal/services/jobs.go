package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmadden/videojobs/internal/models"
)

// UploadURLTTL is how long a signed upload URL stays valid.
const UploadURLTTL = time.Hour

// JobsStore is the persistence surface the jobs service needs.
type JobsStore interface {
	Get(ctx context.Context, id string) (*models.Job, error)
	Put(ctx context.Context, job models.Job) error
	Patch(ctx context.Context, id string, patch models.JobPatch, updatedAt string) error
}

// UploadURLSigner issues time-limited PUT URLs for bucket objects.
type UploadURLSigner interface {
	SignedUploadURL(bucket, object string, expires time.Duration) (string, error)
}

// JobsService creates jobs, issues their upload URLs and applies status
// updates.
type JobsService struct {
	store  JobsStore
	signer UploadURLSigner
	bucket string
	now    func() time.Time
}

// NewJobsService creates a JobsService writing upload objects to bucket.
func NewJobsService(store JobsStore, signer UploadURLSigner, bucket string) *JobsService {
	return &JobsService{store: store, signer: signer, bucket: bucket, now: time.Now}
}

// CreateJob persists a PENDING job for the filename and returns it together
// with a signed URL the client PUTs the video to. The object key follows
// uploads/{job_id}/{filename} so the upload trigger can recover the job id.
func (s *JobsService) CreateJob(ctx context.Context, filename string) (*models.Job, string, error) {
	if filename == "" {
		return nil, "", &ValidationError{Message: "filename is required"}
	}
	jobID := uuid.NewString()
	now := models.FormatTime(s.now())
	job := models.Job{
		JobID:     jobID,
		Status:    models.StatusPending,
		Filename:  filename,
		GCSBucket: s.bucket,
		GCSKey:    fmt.Sprintf("uploads/%s/%s", jobID, filename),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(ctx, job); err != nil {
		return nil, "", fmt.Errorf("failed to persist job: %w", err)
	}
	uploadURL, err := s.signer.SignedUploadURL(s.bucket, job.GCSKey, UploadURLTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign upload URL: %w", err)
	}
	return &job, uploadURL, nil
}

// GetJob returns the job, or nil when the id is unknown. The store boundary
// has already normalized any envelope-encoded values.
func (s *JobsService) GetJob(ctx context.Context, id string) (*models.Job, error) {
	return s.store.Get(ctx, id)
}

// UpdateStatus patches exactly the supplied fields and refreshes updated_at.
// Transition order is deliberately not validated; callers can write any
// status at any time, matching the permissive behaviour pollers rely on.
func (s *JobsService) UpdateStatus(ctx context.Context, id string, patch models.JobPatch) error {
	return s.store.Patch(ctx, id, patch, models.FormatTime(s.now()))
}
