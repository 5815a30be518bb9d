package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ctrlKshav/feedy-backend/internal/application/feedback"
	domai "github.com/ctrlKshav/feedy-backend/internal/domain/ai"
	"github.com/ctrlKshav/feedy-backend/internal/domain/analysis"
	"github.com/ctrlKshav/feedy-backend/internal/domain/files"
	"github.com/ctrlKshav/feedy-backend/internal/middleware"
)

// FeedbackService is what the router needs from the application layer.
type FeedbackService interface {
	UploadFiles(ctx context.Context, uploads []feedback.Upload) ([]files.UploadedFile, error)
	AnalyzeItems(ctx context.Context, req analysis.Request) ([]analysis.Result, error)
	RefinePersona(ctx context.Context, initialPrompt string) (string, error)
}

type Options struct {
	Logger      *zap.Logger
	APIKeys     []string
	MaxUploadMB int64
	Checkers    map[string]middleware.HealthChecker
}

type Router struct {
	svc       FeedbackService
	log       *zap.Logger
	maxUpload int64
}

func NewRouter(svc FeedbackService, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxUploadMB <= 0 {
		opts.MaxUploadMB = 32
	}
	r := &Router{svc: svc, log: opts.Logger, maxUpload: opts.MaxUploadMB << 20}

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.Logging(opts.Logger))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	mux.Use(middleware.APIKeyAuth(opts.APIKeys))

	mux.Get("/health", middleware.HealthHandler(opts.Checkers))
	mux.Get("/healthz", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Post("/upload-images", r.wrap("error", r.handleUpload))
	mux.Post("/analyze-images", r.wrap("response", r.handleAnalyze))
	mux.Post("/refine-persona", r.wrap("error", r.handleRefine))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap turns a handler error into the JSON error envelope. msgKey is the
// field that carries the message: "error" or "response".
func (r *Router) wrap(msgKey string, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			r.log.Error("request failed", zap.String("path", req.URL.Path), zap.Error(err))
		}
		writeJSON(w, status, map[string]string{msgKey: err.Error(), "status": "error"})
	}
}

func statusFor(err error) int {
	switch {
	case feedback.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, domai.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", analysis.ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// POST /upload-images
// multipart/form-data, field "images" (repeated)
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, r.maxUpload)
	if err := req.ParseMultipartForm(r.maxUpload); err != nil {
		return invalid("parse multipart form: %v", err)
	}
	defer req.MultipartForm.RemoveAll()

	headers := req.MultipartForm.File["images"]
	if len(headers) == 0 {
		return invalid("no files uploaded in field %q", "images")
	}

	uploads := make([]feedback.Upload, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for _, fh := range headers {
		if err := middleware.ValidateFileName(fh.Filename); err != nil {
			return invalid("%v", err)
		}
		f, err := fh.Open()
		if err != nil {
			return fmt.Errorf("%w: open %s: %v", files.ErrStorage, fh.Filename, err)
		}
		opened = append(opened, f)
		uploads = append(uploads, feedback.Upload{Name: fh.Filename, Size: fh.Size, File: f})
	}

	stored, err := r.svc.UploadFiles(req.Context(), uploads)
	if err != nil {
		return err
	}
	middleware.AddFilesStored(len(stored))

	return writeJSON(w, http.StatusOK, map[string]any{
		"images": stored,
		"status": "success",
	})
}

type analyzeBody struct {
	ImageURLs    []analysis.Item `json:"image_urls"`
	Question     string          `json:"question"`
	AdminPersona string          `json:"admin_persona"`
}

// POST /analyze-images
// Body: {"image_urls":[{"image_url","image_name","file_type","pdf_text"}],"question","admin_persona"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body analyzeBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return invalid("decode body: %v", err)
	}
	for i, item := range body.ImageURLs {
		if err := middleware.ValidateItemURL(item.URL); err != nil {
			return invalid("image_urls[%d]: %v", i, err)
		}
	}

	results, err := r.svc.AnalyzeItems(req.Context(), analysis.Request{
		Items:           body.ImageURLs,
		Question:        middleware.StripNUL(body.Question),
		PersonaOverride: middleware.StripNUL(body.AdminPersona),
	})
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Status == analysis.StatusError {
			failed++
		}
	}
	middleware.AddAnalyses(len(results), failed)

	return writeJSON(w, http.StatusOK, results)
}

// POST /refine-persona
// Body: {"initial_prompt": "..."}
func (r *Router) handleRefine(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		InitialPrompt string `json:"initial_prompt"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return invalid("decode body: %v", err)
	}

	refined, err := r.svc.RefinePersona(req.Context(), middleware.StripNUL(body.InitialPrompt))
	if err != nil {
		return err
	}
	middleware.IncrementRefinements()

	return writeJSON(w, http.StatusOK, map[string]string{
		"refined_prompt": refined,
		"status":         "success",
	})
}
