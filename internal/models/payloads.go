package models

// These structs define the JSON payloads exchanged between the upload
// trigger, the Cloud Workflow and the video-processor function.

// StorageEvent is the storage object-finalize payload delivered to the
// upload trigger.
type StorageEvent struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

// ProcessVideoRequest is the input for the video-processor function.
type ProcessVideoRequest struct {
	JobID     string `json:"jobId"`
	GCSBucket string `json:"gcsBucket"`
	GCSKey    string `json:"gcsKey"`
}

// ProcessVideoResponse is the output of the video-processor function.
type ProcessVideoResponse struct {
	JobID  string `json:"jobId"`
	Status Status `json:"status"`
}
