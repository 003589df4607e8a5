// Package http exposes a model store over HTTP and submits models to such a server.
package http

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aretw0/compartments"
	"github.com/aretw0/compartments/internal/presentation/graph"
	"github.com/aretw0/compartments/pkg/domain"
	"github.com/aretw0/compartments/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

//go:embed openapi.yaml
var rawSpec []byte

// maxBodySize bounds POST /models bodies. Two strain models are a few tens of KB.
const maxBodySize = 4 << 20

// Builder assembles the models of a family.
type Builder interface {
	Families() []string
	Build(ctx context.Context, family string) ([]domain.BuiltModel, error)
}

// Server serves a ModelStore.
type Server struct {
	Store   ports.ModelStore
	Builder Builder
	Metrics http.Handler
	Logger  *slog.Logger

	spec  *openapi3.T
	model *openapi3.Schema
}

// Option configures the Server.
type Option func(*Server)

// WithBuilder enables the /families endpoints.
func WithBuilder(b Builder) Option {
	return func(s *Server) {
		s.Builder = b
	}
}

// WithMetrics mounts a metrics handler on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets a structured logger (default slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// Spec returns the parsed OpenAPI document served on /openapi.yaml.
func Spec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	return doc, nil
}

// NewServer prepares a server over the store.
func NewServer(store ports.ModelStore, opts ...Option) (*Server, error) {
	doc, err := Spec()
	if err != nil {
		return nil, err
	}
	ref, ok := doc.Components.Schemas["BuiltModel"]
	if !ok || ref.Value == nil {
		return nil, fmt.Errorf("openapi spec has no BuiltModel schema")
	}

	s := &Server{Store: store, spec: doc, model: ref.Value}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	return s, nil
}

// NewHandler creates the HTTP handler for the store.
func NewHandler(store ports.ModelStore, opts ...Option) (http.Handler, error) {
	s, err := NewServer(store, opts...)
	if err != nil {
		return nil, err
	}
	return s.Routes(), nil
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics)
	}

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Route("/models", func(r chi.Router) {
		r.Get("/", s.ListModels)
		r.Post("/", s.PostModel)
		r.Get("/{key}", s.GetModel)
		r.Delete("/{key}", s.DeleteModel)
		r.Get("/{key}/graph", s.GetModelGraph)

		// Qualified keys: /models/{family}/{key}.
		r.Get("/{key}/{model}", s.GetModel)
		r.Delete("/{key}/{model}", s.DeleteModel)
		r.Get("/{key}/{model}/graph", s.GetModelGraph)
	})

	if s.Builder != nil {
		r.Get("/families", s.ListFamilies)
		r.Post("/families/{family}/build", s.BuildFamily)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Compartments API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

type modelList struct {
	Models []string `json:"models"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "compartments-http",
		"version":     strings.TrimSpace(compartments.Version),
		"api_version": apiVersion,
	})
}

// ListModels handles the GET /models request.
func (s *Server) ListModels(w http.ResponseWriter, r *http.Request) {
	keys, err := s.Store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("List failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, modelList{Models: keys})
}

// PostModel handles the POST /models request. The body is checked against the
// BuiltModel schema before it is decoded.
func (s *Server) PostModel(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("PostModel: invalid JSON", "error", err)
		return
	}
	if err := s.model.VisitJSON(raw); err != nil {
		http.Error(w, fmt.Sprintf("Invalid model: %v", err), http.StatusBadRequest)
		s.Logger.Warn("PostModel: schema validation failed", "error", err)
		return
	}

	var model domain.BuiltModel
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&model); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	key := model.QualifiedKey()
	if err := s.Store.Save(r.Context(), key, &model); err != nil {
		http.Error(w, fmt.Sprintf("Save error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Save failed", "model", key, "error", err)
		return
	}

	s.Logger.Info("model stored", "model", key, "transitions", len(model.Model))
	s.writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}

// modelKey reads the storage key from the path. It is either a single segment
// (a bare key, or an escaped family%2Fkey) or a family and a key segment.
func modelKey(r *http.Request) string {
	key := chi.URLParam(r, "key")
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}
	if model := chi.URLParam(r, "model"); model != "" {
		return domain.QualifiedKey(key, model)
	}
	return key
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (*domain.BuiltModel, bool) {
	key := modelKey(r)
	model, err := s.Store.Load(r.Context(), key)
	if errors.Is(err, domain.ErrModelNotFound) {
		http.Error(w, fmt.Sprintf("model %q not found", key), http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Load failed", "model", key, "error", err)
		return nil, false
	}
	return model, true
}

// GetModel handles the GET /models/{key} request.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request) {
	if model, ok := s.load(w, r); ok {
		s.writeJSON(w, http.StatusOK, model)
	}
}

// DeleteModel handles the DELETE /models/{key} request.
func (s *Server) DeleteModel(w http.ResponseWriter, r *http.Request) {
	key := modelKey(r)
	if err := s.Store.Delete(r.Context(), key); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetModelGraph handles the GET /models/{key}/graph request.
// Query flags rates and deaths enrich the diagram.
func (s *Server) GetModelGraph(w http.ResponseWriter, r *http.Request) {
	model, ok := s.load(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	rates, _ := strconv.ParseBool(q.Get("rates"))
	deaths, _ := strconv.ParseBool(q.Get("deaths"))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(model, graph.Options{Rates: rates, Deaths: deaths}))
}

// ListFamilies handles the GET /families request.
func (s *Server) ListFamilies(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"families": s.Builder.Families()})
}

// BuildFamily handles the POST /families/{family}/build request.
func (s *Server) BuildFamily(w http.ResponseWriter, r *http.Request) {
	family := chi.URLParam(r, "family")
	models, err := s.Builder.Build(r.Context(), family)
	if errors.Is(err, domain.ErrFamilyNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Build error: %v", err), http.StatusUnprocessableEntity)
		s.Logger.Error("Build failed", "family", family, "error", err)
		return
	}

	keys := make([]string, 0, len(models))
	for i := range models {
		key := models[i].QualifiedKey()
		if err := s.Store.Save(r.Context(), key, &models[i]); err != nil {
			http.Error(w, fmt.Sprintf("Save error: %v", err), http.StatusInternalServerError)
			return
		}
		keys = append(keys, key)
	}
	s.writeJSON(w, http.StatusOK, modelList{Models: keys})
}
