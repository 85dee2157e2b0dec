package models

// Status is the lifecycle state of a processing job. Jobs move forward
// through PENDING -> PROCESSING -> COMPLETED/FAILED; writes are not
// validated against the current state.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// Job tracks one uploaded video through the processing pipeline.
type Job struct {
	JobID           string         `json:"job_id"`
	Status          Status         `json:"status"`
	Filename        string         `json:"filename,omitempty"`
	GCSBucket       string         `json:"gcs_bucket,omitempty"`
	GCSKey          string         `json:"gcs_key,omitempty"`
	ProgressPercent *int           `json:"progress_percent,omitempty"`
	Results         map[string]any `json:"results,omitempty"`
	Error           string         `json:"error,omitempty"`
	CreatedAt       string         `json:"created_at"`
	UpdatedAt       string         `json:"updated_at"`
}

// JobPatch is a field-level status update. Status and the refreshed
// updated_at are always written; nil optional fields are not.
type JobPatch struct {
	Status          Status
	Results         map[string]any
	Error           *string
	ProgressPercent *int
}

// JobFromRecord builds a Job from a normalized storage record.
func JobFromRecord(rec map[string]any) Job {
	job := Job{
		JobID:     stringField(rec, "job_id"),
		Status:    StatusPending,
		Filename:  stringField(rec, "filename"),
		GCSBucket: stringField(rec, "gcs_bucket"),
		GCSKey:    stringField(rec, "gcs_key"),
		Error:     stringField(rec, "error"),
		CreatedAt: stringField(rec, "created_at"),
		UpdatedAt: stringField(rec, "updated_at"),
	}
	if s := stringField(rec, "status"); s != "" {
		job.Status = Status(s)
	}
	if results, ok := rec["results"].(map[string]any); ok {
		job.Results = results
	}
	if p, ok := intField(rec, "progress_percent"); ok {
		job.ProgressPercent = &p
	}
	return job
}

// Record returns the storage representation of the job. Unset optional
// fields are omitted so they stay absent from the stored document.
func (j Job) Record() map[string]any {
	rec := map[string]any{
		"job_id":     j.JobID,
		"status":     string(j.Status),
		"created_at": j.CreatedAt,
		"updated_at": j.UpdatedAt,
	}
	if j.Filename != "" {
		rec["filename"] = j.Filename
	}
	if j.GCSBucket != "" {
		rec["gcs_bucket"] = j.GCSBucket
	}
	if j.GCSKey != "" {
		rec["gcs_key"] = j.GCSKey
	}
	if len(j.Results) > 0 {
		rec["results"] = j.Results
	}
	if j.Error != "" {
		rec["error"] = j.Error
	}
	if j.ProgressPercent != nil {
		rec["progress_percent"] = *j.ProgressPercent
	}
	return rec
}

func stringField(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return s
}

func intField(rec map[string]any, key string) (int, bool) {
	switch n := rec[key].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
