package services

import (
	"context"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jmadden/videojobs/internal/models"
)

// ObjectSizer reports the size of an uploaded object.
type ObjectSizer interface {
	ObjectSize(ctx context.Context, bucket, object string) (int64, error)
}

// ProcessorConfig holds configuration for the video processor.
type ProcessorConfig struct {
	// StepDelay is the pause between progress checkpoints, standing in for
	// the real transcode/analysis work.
	StepDelay time.Duration
}

// ProcessorFunction walks a job through the processing checkpoints and
// writes the terminal state. Processing itself is simulated: the only real
// operation is reading the uploaded object's size.
type ProcessorFunction struct {
	jobs   *JobsService
	sizer  ObjectSizer
	config ProcessorConfig
}

// NewProcessor creates a ProcessorFunction.
func NewProcessor(jobs *JobsService, sizer ObjectSizer, config ProcessorConfig) *ProcessorFunction {
	return &ProcessorFunction{jobs: jobs, sizer: sizer, config: config}
}

// Process runs the checkpoint sequence for one job. Any failure along the
// way is caught here and converted into a FAILED status with the error
// message; there is no internal retry. Each checkpoint is a separate
// persisted update, so pollers observe the progress climbing.
func (f *ProcessorFunction) Process(ctx context.Context, req *models.ProcessVideoRequest) *models.ProcessVideoResponse {
	logCtx := slog.With("jobId", req.JobID, "gcsBucket", req.GCSBucket, "gcsObject", req.GCSKey)
	logCtx.Info("Starting video processing.")

	if err := f.run(ctx, logCtx, req); err != nil {
		logCtx.Error("Processing failed.", "error", err)
		f.markFailed(ctx, logCtx, req.JobID, err)
		return &models.ProcessVideoResponse{JobID: req.JobID, Status: models.StatusFailed}
	}

	logCtx.Info("Processing completed successfully.")
	return &models.ProcessVideoResponse{JobID: req.JobID, Status: models.StatusCompleted}
}

func (f *ProcessorFunction) run(ctx context.Context, logCtx *slog.Logger, req *models.ProcessVideoRequest) error {
	if err := f.checkpoint(ctx, req.JobID, 0); err != nil {
		return err
	}

	logCtx.Info("Analyzing video metadata.")
	if err := f.checkpoint(ctx, req.JobID, 25); err != nil {
		return err
	}
	if err := f.pause(ctx); err != nil {
		return err
	}

	sizeBytes, err := f.sizer.ObjectSize(ctx, req.GCSBucket, req.GCSKey)
	if err != nil {
		// Not fatal: the size only feeds the results payload.
		logCtx.Warn("Could not read uploaded object size.", "error", err)
		sizeBytes = 0
	}

	logCtx.Info("Transcoding video.")
	if err := f.checkpoint(ctx, req.JobID, 50); err != nil {
		return err
	}
	if err := f.pause(ctx); err != nil {
		return err
	}

	logCtx.Info("Running analysis passes.")
	if err := f.checkpoint(ctx, req.JobID, 75); err != nil {
		return err
	}
	analysis, err := f.runAnalysis(ctx)
	if err != nil {
		return err
	}

	logCtx.Info("Storing results.")
	progress := 100
	results := map[string]any{
		"file_size_mb":     math.Round(float64(sizeBytes)/(1024*1024)*100) / 100,
		"duration_seconds": 120,
		"format":           "mp4",
		"resolution":       "1920x1080",
		"analysis":         analysis,
		"processed_at":     models.FormatTime(time.Now()),
	}
	return f.jobs.UpdateStatus(ctx, req.JobID, models.JobPatch{
		Status:          models.StatusCompleted,
		Results:         results,
		ProgressPercent: &progress,
	})
}

// runAnalysis simulates the ML analysis stage. The passes are independent,
// so they run concurrently; each stands in for real work with a fixed delay.
func (f *ProcessorFunction) runAnalysis(ctx context.Context) (map[string]any, error) {
	var (
		gazePoints int
		objects    []string
		attention  float64
	)
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := f.pause(gctx); err != nil {
			return err
		}
		gazePoints = 1500
		return nil
	})
	eg.Go(func() error {
		if err := f.pause(gctx); err != nil {
			return err
		}
		objects = []string{"person", "screen", "keyboard"}
		return nil
	})
	eg.Go(func() error {
		if err := f.pause(gctx); err != nil {
			return err
		}
		attention = 0.85
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return map[string]any{
		"gaze_points":      gazePoints,
		"objects_detected": objects,
		"attention_score":  attention,
	}, nil
}

func (f *ProcessorFunction) checkpoint(ctx context.Context, jobID string, percent int) error {
	return f.jobs.UpdateStatus(ctx, jobID, models.JobPatch{
		Status:          models.StatusProcessing,
		ProgressPercent: &percent,
	})
}

func (f *ProcessorFunction) markFailed(ctx context.Context, logCtx *slog.Logger, jobID string, procErr error) {
	msg := procErr.Error()
	err := f.jobs.UpdateStatus(ctx, jobID, models.JobPatch{
		Status: models.StatusFailed,
		Error:  &msg,
	})
	if err != nil {
		logCtx.Error("CRITICAL: Failed to mark job FAILED after a processing error.", "updateError", err)
	}
}

func (f *ProcessorFunction) pause(ctx context.Context) error {
	if f.config.StepDelay <= 0 {
		return nil
	}
	select {
	case <-time.After(f.config.StepDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
