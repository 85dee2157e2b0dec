// devserver runs the API router as a plain HTTP server for local
// development, without the functions framework.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/jmadden/videojobs/internal/gcp"
	"github.com/jmadden/videojobs/internal/httpapi"
	"github.com/jmadden/videojobs/internal/services"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	items, jobs, err := services.NewAPIServices(context.Background())
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	addr := gcp.GetEnv("ADDR", ":8080")
	slog.Info("API listening.", "addr", addr)
	if err := http.ListenAndServe(addr, httpapi.Server{Items: items, Jobs: jobs}.Router()); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
