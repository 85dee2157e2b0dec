package gcp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
)

// Storage wraps the GCS client with the two operations this system needs:
// issuing signed upload URLs and probing object sizes.
type Storage struct {
	client *storage.Client
}

// NewStorage creates a Storage wrapper around client.
func NewStorage(client *storage.Client) *Storage {
	return &Storage{client: client}
}

// SignedUploadURL returns a V4 signed URL permitting a single PUT to the
// object, valid for the given duration. No content type is pinned into the
// signature: the browser sets its own Content-Type header, and pinning one
// here would make the upload fail its CORS preflight.
func (s *Storage) SignedUploadURL(bucket, object string, expires time.Duration) (string, error) {
	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodPut,
		Expires: time.Now().Add(expires),
	}
	url, err := s.client.Bucket(bucket).SignedURL(object, opts)
	if err != nil {
		return "", fmt.Errorf("failed to sign upload URL for gs://%s/%s: %w", bucket, object, err)
	}
	return url, nil
}

// ObjectSize returns the byte size of an uploaded object.
func (s *Storage) ObjectSize(ctx context.Context, bucket, object string) (int64, error) {
	attrs, err := s.client.Bucket(bucket).Object(object).Attrs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read attrs of gs://%s/%s: %w", bucket, object, err)
	}
	return attrs.Size, nil
}
