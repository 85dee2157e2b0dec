package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/jmadden/videojobs/internal/models"
	"github.com/jmadden/videojobs/internal/services"
)

var (
	triggerInstance *services.UploadTriggerFunction
	once            sync.Once
	initErr         error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Register the CloudEvent function. The framework routes the bucket's
	// object-finalize events here.
	functions.CloudEvent("OnVideoUploaded", onVideoUploaded)
}

// main is required by the Go Functions Framework.
func main() {}

// onVideoUploaded is the CloudEvent entry point for upload completions.
func onVideoUploaded(ctx context.Context, e cloudevents.Event) error {
	// Use sync.Once for robust, one-time initialization of clients.
	once.Do(func() {
		triggerInstance, initErr = services.NewUploadTriggerFromEnv(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	var event models.StorageEvent
	if err := json.Unmarshal(e.Data(), &event); err != nil {
		slog.Error("Failed to unmarshal event data", "error", err, "data", string(e.Data()))
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	return triggerInstance.Process(ctx, event)
}
