// Package httpapi exposes the items and jobs services as a CORS-enabled
// JSON API.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jmadden/videojobs/internal/models"
	"github.com/jmadden/videojobs/internal/services"
	"github.com/jmadden/videojobs/internal/store"
)

// Server wires the domain services into the HTTP surface.
type Server struct {
	Items *services.ItemsService
	Jobs  *services.JobsService
}

// Router builds the request router. Every response carries the fixed CORS
// header set; OPTIONS short-circuits to 200 before any routing.
func (s Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/", s.handleWelcome)
	r.Route("/items", func(r chi.Router) {
		r.Get("/", s.handleListItems)
		r.Post("/", s.handleCreateItem)
		r.Get("/{id}", s.handleGetItem)
		r.Put("/{id}", s.handleUpdateItem)
		r.Delete("/{id}", s.handleDeleteItem)
	})
	r.Post("/jobs", s.handleCreateJob)
	r.Get("/jobs/{id}", s.handleGetJob)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("Not Found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("Method Not Allowed"))
	})

	return r
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s Server) handleWelcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Video processing jobs API",
		"endpoints": []string{
			"GET /items",
			"POST /items",
			"GET /items/{id}",
			"PUT /items/{id}",
			"DELETE /items/{id}",
			"POST /jobs",
			"GET /jobs/{id}",
		},
	})
}

func (s Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.Items.ListItems(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (s Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	item, err := s.Items.CreateItem(r.Context(), req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.Items.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, errorBody("Item not found"))
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var patch models.ItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	item, err := s.Items.UpdateItem(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Items.DeleteItem(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Item deleted", "id": id})
}

func (s Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	job, uploadURL, err := s.Jobs.CreateJob(r.Context(), req.Filename)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"job_id":     job.JobID,
		"upload_url": uploadURL,
		"expires_in": int(services.UploadURLTTL.Seconds()),
		"status":     job.Status,
		"gcs_key":    job.GCSKey,
	})
}

func (s Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.Jobs.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if job == nil {
		writeJSON(w, http.StatusNotFound, errorBody("Job not found"))
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// writeError maps domain errors onto the response taxonomy: validation 400,
// unknown id 404, everything else 500 with the message echoed (acceptable
// for an internal tool).
func writeError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody(verr.Message))
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	default:
		slog.Error("Request failed.", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}
