package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/storage"
	executions "cloud.google.com/go/workflows/executions/apiv1"

	"github.com/jmadden/videojobs/internal/gcp"
	"github.com/jmadden/videojobs/internal/store"
)

// Config holds the environment-derived settings shared by the function
// entrypoints.
type Config struct {
	ProjectID        string
	VideosBucket     string
	ItemsCollection  string
	JobsCollection   string
	WorkflowID       string
	WorkflowLocation string
	StepDelay        time.Duration
}

func loadConfig() (*Config, error) {
	projectID := gcp.GetEnv("PROJECT_ID", "")
	if projectID == "" {
		return nil, fmt.Errorf("PROJECT_ID environment variable must be set")
	}
	bucket := gcp.GetEnv("VIDEOS_BUCKET", "")
	if bucket == "" {
		return nil, fmt.Errorf("VIDEOS_BUCKET environment variable must be set")
	}

	delaySeconds, err := strconv.Atoi(gcp.GetEnv("STEP_DELAY_SECONDS", "1"))
	if err != nil {
		return nil, fmt.Errorf("STEP_DELAY_SECONDS must be an integer: %w", err)
	}

	return &Config{
		ProjectID:        projectID,
		VideosBucket:     bucket,
		ItemsCollection:  gcp.GetEnv("ITEMS_COLLECTION", "items"),
		JobsCollection:   gcp.GetEnv("JOBS_COLLECTION", "jobs"),
		WorkflowID:       gcp.GetEnv("WORKFLOW_ID", "video-processing"),
		WorkflowLocation: gcp.GetEnv("WORKFLOW_LOCATION", "us-central1"),
		StepDelay:        time.Duration(delaySeconds) * time.Second,
	}, nil
}

// NewAPIServices builds the item and job services from the environment.
func NewAPIServices(ctx context.Context) (*ItemsService, *JobsService, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	firestoreClient, err := gcp.NewFirestoreClient(ctx, config.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	items := NewItemsService(store.NewItemsRepository(firestoreClient, config.ItemsCollection))
	jobs := NewJobsService(
		store.NewJobsRepository(firestoreClient, config.JobsCollection),
		gcp.NewStorage(storageClient),
		config.VideosBucket,
	)
	return items, jobs, nil
}

// NewUploadTriggerFromEnv builds the upload trigger with its Firestore and
// Workflows clients.
func NewUploadTriggerFromEnv(ctx context.Context) (*UploadTriggerFunction, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	firestoreClient, err := gcp.NewFirestoreClient(ctx, config.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	executionsClient, err := executions.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Workflows Executions client: %w", err)
	}

	jobs := NewJobsService(
		store.NewJobsRepository(firestoreClient, config.JobsCollection),
		gcp.NewStorage(storageClient),
		config.VideosBucket,
	)
	workflow := gcp.NewWorkflowClient(executionsClient, config.ProjectID, config.WorkflowLocation, config.WorkflowID)
	return NewUploadTrigger(jobs, workflow), nil
}

// NewProcessorFromEnv builds the video processor with its Firestore and
// storage clients.
func NewProcessorFromEnv(ctx context.Context) (*ProcessorFunction, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	firestoreClient, err := gcp.NewFirestoreClient(ctx, config.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	gcs := gcp.NewStorage(storageClient)
	jobs := NewJobsService(
		store.NewJobsRepository(firestoreClient, config.JobsCollection),
		gcs,
		config.VideosBucket,
	)
	return NewProcessor(jobs, gcs, ProcessorConfig{StepDelay: config.StepDelay}), nil
}
