package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jmadden/videojobs/internal/models"
)

type fakeSizer struct {
	size int64
	err  error
}

func (f fakeSizer) ObjectSize(_ context.Context, _, _ string) (int64, error) {
	return f.size, f.err
}

func newProcessorFixture(sizer fakeSizer) (*ProcessorFunction, *fakeJobsStore, models.Job) {
	jobsStore := newFakeJobsStore()
	job := models.Job{
		JobID:     "j1",
		Status:    models.StatusPending,
		Filename:  "v.mp4",
		GCSBucket: "b",
		GCSKey:    "uploads/j1/v.mp4",
		CreatedAt: "2026-03-01T12:00:00.000000Z",
		UpdatedAt: "2026-03-01T12:00:00.000000Z",
	}
	jobsStore.jobs[job.JobID] = job

	jobs := NewJobsService(jobsStore, fakeSigner{}, "b")
	processor := NewProcessor(jobs, sizer, ProcessorConfig{StepDelay: 0})
	return processor, jobsStore, job
}

func TestProcessWalksCheckpointsToCompleted(t *testing.T) {
	processor, jobsStore, job := newProcessorFixture(fakeSizer{size: 3 * 1024 * 1024})

	res := processor.Process(context.Background(), &models.ProcessVideoRequest{
		JobID:     job.JobID,
		GCSBucket: job.GCSBucket,
		GCSKey:    job.GCSKey,
	})
	if res.Status != models.StatusCompleted {
		t.Fatalf("response status = %q, want COMPLETED", res.Status)
	}

	var progress []int
	for _, call := range jobsStore.patches {
		if call.patch.ProgressPercent != nil {
			progress = append(progress, *call.patch.ProgressPercent)
		}
	}
	want := []int{0, 25, 50, 75, 100}
	if len(progress) != len(want) {
		t.Fatalf("progress checkpoints = %v, want %v", progress, want)
	}
	for i := range want {
		if progress[i] != want[i] {
			t.Fatalf("progress checkpoints = %v, want %v", progress, want)
		}
	}

	final := jobsStore.jobs[job.JobID]
	if final.Status != models.StatusCompleted {
		t.Fatalf("final status = %q, want COMPLETED", final.Status)
	}
	if final.Error != "" {
		t.Fatalf("error must be absent on success, got %q", final.Error)
	}
	if final.Results == nil {
		t.Fatal("results must be present on COMPLETED")
	}
	if final.ProgressPercent == nil || *final.ProgressPercent != 100 {
		t.Fatalf("final progress = %v, want 100", final.ProgressPercent)
	}
	if got := final.Results["file_size_mb"]; got != 3.0 {
		t.Fatalf("file_size_mb = %v, want 3", got)
	}
	analysis, ok := final.Results["analysis"].(map[string]any)
	if !ok {
		t.Fatalf("analysis payload missing: %#v", final.Results)
	}
	if analysis["gaze_points"] != 1500 {
		t.Fatalf("gaze_points = %v", analysis["gaze_points"])
	}
}

func TestProcessFailureMarksJobFailed(t *testing.T) {
	processor, jobsStore, job := newProcessorFixture(fakeSizer{size: 1024})
	jobsStore.patchHook = func(patch models.JobPatch) error {
		if patch.ProgressPercent != nil && *patch.ProgressPercent == 50 {
			return errors.New("transcode backend unavailable")
		}
		return nil
	}

	res := processor.Process(context.Background(), &models.ProcessVideoRequest{
		JobID:     job.JobID,
		GCSBucket: job.GCSBucket,
		GCSKey:    job.GCSKey,
	})
	if res.Status != models.StatusFailed {
		t.Fatalf("response status = %q, want FAILED", res.Status)
	}

	final := jobsStore.jobs[job.JobID]
	if final.Status != models.StatusFailed {
		t.Fatalf("final status = %q, want FAILED", final.Status)
	}
	if final.Error == "" {
		t.Fatal("error message must be present on FAILED")
	}
	if final.Results != nil {
		t.Fatalf("results must be absent on FAILED, got %#v", final.Results)
	}
}

func TestProcessSizeProbeFailureIsNotFatal(t *testing.T) {
	processor, jobsStore, job := newProcessorFixture(fakeSizer{err: errors.New("object gone")})

	res := processor.Process(context.Background(), &models.ProcessVideoRequest{
		JobID:     job.JobID,
		GCSBucket: job.GCSBucket,
		GCSKey:    job.GCSKey,
	})
	if res.Status != models.StatusCompleted {
		t.Fatalf("response status = %q, want COMPLETED", res.Status)
	}
	final := jobsStore.jobs[job.JobID]
	if got := final.Results["file_size_mb"]; got != 0.0 {
		t.Fatalf("file_size_mb = %v, want 0 when probe fails", got)
	}
}
