package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jmadden/videojobs/internal/models"
)

// JobsRepository persists processing jobs in a Firestore collection, one
// document per job keyed by the job id.
type JobsRepository struct {
	client     *firestore.Client
	collection string
}

// NewJobsRepository creates a JobsRepository on the given collection.
func NewJobsRepository(client *firestore.Client, collection string) *JobsRepository {
	return &JobsRepository{client: client, collection: collection}
}

// Get returns the job with all values normalized to native types, or nil
// when no record exists for the id.
func (r *JobsRepository) Get(ctx context.Context, id string) (*models.Job, error) {
	if id == "" {
		return nil, nil
	}
	doc, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job %s: %w", id, err)
	}
	job := models.JobFromRecord(NormalizeRecord(doc.Data()))
	return &job, nil
}

// Put creates or overwrites the job document.
func (r *JobsRepository) Put(ctx context.Context, job models.Job) error {
	if _, err := r.client.Collection(r.collection).Doc(job.JobID).Set(ctx, job.Record()); err != nil {
		return fmt.Errorf("failed to put job %s: %w", job.JobID, err)
	}
	return nil
}

// Patch applies a field-level update: status and updated_at always, the
// optional fields only when supplied.
func (r *JobsRepository) Patch(ctx context.Context, id string, patch models.JobPatch, updatedAt string) error {
	updates := []firestore.Update{
		{Path: "status", Value: string(patch.Status)},
		{Path: "updated_at", Value: updatedAt},
	}
	if patch.Results != nil {
		updates = append(updates, firestore.Update{Path: "results", Value: patch.Results})
	}
	if patch.Error != nil {
		updates = append(updates, firestore.Update{Path: "error", Value: *patch.Error})
	}
	if patch.ProgressPercent != nil {
		updates = append(updates, firestore.Update{Path: "progress_percent", Value: *patch.ProgressPercent})
	}

	_, err := r.client.Collection(r.collection).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to patch job %s: %w", id, err)
	}
	return nil
}
