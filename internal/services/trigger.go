package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmadden/videojobs/internal/models"
)

// WorkflowStarter launches the processing workflow for an uploaded object.
type WorkflowStarter interface {
	StartProcessing(ctx context.Context, req *models.ProcessVideoRequest) error
}

// UploadTriggerFunction reacts to object-finalize events under the uploads/
// prefix: it flips the job to PROCESSING and hands it off to the workflow.
type UploadTriggerFunction struct {
	jobs     *JobsService
	workflow WorkflowStarter
}

// NewUploadTrigger creates an UploadTriggerFunction.
func NewUploadTrigger(jobs *JobsService, workflow WorkflowStarter) *UploadTriggerFunction {
	return &UploadTriggerFunction{jobs: jobs, workflow: workflow}
}

// Process handles one upload event. Events whose object key does not match
// the expected shape are logged and dropped; returning nil keeps the event
// layer from redelivering them. Duplicate deliveries of a valid event are
// not deduplicated, so the processing sequence simply runs again.
func (f *UploadTriggerFunction) Process(ctx context.Context, e models.StorageEvent) error {
	logCtx := slog.With("gcsBucket", e.Bucket, "gcsObject", e.Name)
	logCtx.Info("Processing upload event.")

	jobID, ok := JobIDFromObjectKey(e.Name)
	if !ok {
		logCtx.Warn("Object key does not match uploads/{job_id}/{filename}; dropping event.")
		return nil
	}
	logCtx = logCtx.With("jobId", jobID)

	// A missing record can be a race with job creation; proceed anyway and
	// let the status patch report the authoritative outcome.
	job, err := f.jobs.GetJob(ctx, jobID)
	switch {
	case err != nil:
		logCtx.Warn("Failed to look up job, continuing.", "error", err)
	case job == nil:
		logCtx.Warn("No job record for uploaded object, continuing.")
	default:
		logCtx.Info("Job found.", "status", job.Status)
	}

	if err := f.jobs.UpdateStatus(ctx, jobID, models.JobPatch{Status: models.StatusProcessing}); err != nil {
		logCtx.Error("Failed to mark job PROCESSING.", "error", err)
		return fmt.Errorf("failed to mark job %s PROCESSING: %w", jobID, err)
	}

	req := &models.ProcessVideoRequest{JobID: jobID, GCSBucket: e.Bucket, GCSKey: e.Name}
	if err := f.workflow.StartProcessing(ctx, req); err != nil {
		logCtx.Error("Failed to trigger workflow execution.", "error", err)
		return err
	}

	logCtx.Info("Hand-off to workflow complete.")
	return nil
}

// JobIDFromObjectKey extracts the job id from object keys shaped
// uploads/{job_id}/{filename}.
func JobIDFromObjectKey(key string) (string, bool) {
	parts := strings.Split(key, "/")
	if len(parts) < 2 || parts[0] != "uploads" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
