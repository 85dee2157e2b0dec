package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/jmadden/videojobs/internal/httpapi"
	"github.com/jmadden/videojobs/internal/services"
)

var (
	router  http.Handler
	once    sync.Once
	initErr error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Register the HTTP function. All API routes are served through it.
	functions.HTTP("HandleAPI", handleAPI)
}

// main is required by the Go Functions Framework.
func main() {}

// handleAPI is the single HTTP entry point; routing happens in httpapi.
func handleAPI(w http.ResponseWriter, r *http.Request) {
	// Use sync.Once for robust, one-time initialization of clients.
	once.Do(func() {
		items, jobs, err := services.NewAPIServices(context.Background())
		if err != nil {
			initErr = err
			return
		}
		router = httpapi.Server{Items: items, Jobs: jobs}.Router()
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	router.ServeHTTP(w, r)
}
