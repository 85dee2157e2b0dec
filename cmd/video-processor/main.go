package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/jmadden/videojobs/internal/models"
	"github.com/jmadden/videojobs/internal/services"
)

var (
	processorInstance *services.ProcessorFunction
	once              sync.Once
	initErr           error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Register the HTTP function invoked by the processing workflow.
	functions.HTTP("HandleProcessVideo", handleProcessVideo)
}

// main is required by the Go Functions Framework.
func main() {}

// handleProcessVideo runs the checkpoint sequence for one job.
func handleProcessVideo(w http.ResponseWriter, r *http.Request) {
	// Use sync.Once for robust, one-time initialization of clients.
	once.Do(func() {
		processorInstance, initErr = services.NewProcessorFromEnv(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	var req models.ProcessVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Could not decode request body", "error", err)
		http.Error(w, "Bad Request: could not parse JSON", http.StatusBadRequest)
		return
	}
	if req.JobID == "" || req.GCSBucket == "" || req.GCSKey == "" {
		slog.Warn("Request is missing jobId, gcsBucket or gcsKey")
		http.Error(w, "Bad Request: jobId, gcsBucket and gcsKey are required", http.StatusBadRequest)
		return
	}

	// Failures inside the sequence are already written to the job record;
	// the response just reports the terminal status to the workflow.
	res := processorInstance.Process(r.Context(), &req)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.Error("Failed to write response", "error", err, "jobId", req.JobID)
		http.Error(w, "Internal Server Error: failed to encode response", http.StatusInternalServerError)
	}
}
