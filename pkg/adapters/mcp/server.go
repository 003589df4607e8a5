// Package mcp exposes the model families as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/compartments"
	"github.com/aretw0/compartments/internal/presentation/graph"
	"github.com/aretw0/compartments/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// FamiliesURI is the resource listing every family and its model keys.
const FamiliesURI = "compartments://families"

// ModelsResponse lists the model keys of a family.
type ModelsResponse struct {
	Family string   `json:"family" jsonschema_description:"The family the models belong to"`
	Models []string `json:"models" jsonschema_description:"Model keys in build order"`
}

// FamilySummary is one entry of the families resource.
type FamilySummary struct {
	Name   string   `json:"name"`
	Models []string `json:"models"`
}

// Engine defines what the MCP server needs from the toolkit.
type Engine interface {
	Families() []string
	Definitions(family string) ([]domain.ModelDefinition, error)
	Model(ctx context.Context, family, key string) (*domain.BuiltModel, error)
}

// Server wraps an Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("compartments-mcp", strings.TrimSpace(compartments.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	listTool := mcp.NewTool("list_models",
		mcp.WithDescription("List the model keys of a family, in build order."),
		mcp.WithString("family", mcp.Required(), mcp.Description("Family name, e.g. one_strain")),
		mcp.WithOutputSchema[ModelsResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListModels))

	buildTool := mcp.NewTool("build_model",
		mcp.WithDescription("Assemble one model: transitions (deaths included), states and parameters."),
		mcp.WithString("family", mcp.Required(), mcp.Description("Family name")),
		mcp.WithString("key", mcp.Required(), mcp.Description("Model key, e.g. seir")),
		mcp.WithOutputSchema[domain.BuiltModel](),
	)
	s.mcpServer.AddTool(buildTool, mcp.NewStructuredToolHandler(s.handleBuildModel))

	graphTool := mcp.NewTool("model_graph",
		mcp.WithDescription("Render the transition graph of a model as a Mermaid flowchart."),
		mcp.WithString("family", mcp.Required(), mcp.Description("Family name")),
		mcp.WithString("key", mcp.Required(), mcp.Description("Model key")),
		mcp.WithBoolean("rates", mcp.Description("Label edges with their rates")),
		mcp.WithBoolean("deaths", mcp.Description("Draw the injected death transitions")),
	)
	s.mcpServer.AddTool(graphTool, s.handleModelGraph)
}

func (s *Server) handleListModels(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ModelsResponse, error) {
	family, _ := args["family"].(string)
	defs, err := s.engine.Definitions(family)
	if err != nil {
		return ModelsResponse{}, err
	}
	keys := make([]string, len(defs))
	for i, d := range defs {
		keys[i] = d.Key
	}
	return ModelsResponse{Family: family, Models: keys}, nil
}

func (s *Server) handleBuildModel(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.BuiltModel, error) {
	family, _ := args["family"].(string)
	key, _ := args["key"].(string)

	model, err := s.engine.Model(ctx, family, key)
	if err != nil {
		s.logger.Warn("MCP build_model failed", "family", family, "model", key, "error", err)
		return domain.BuiltModel{}, fmt.Errorf("build failed: %w", err)
	}
	return *model, nil
}

func (s *Server) handleModelGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	family := request.GetString("family", "")
	key := request.GetString("key", "")

	model, err := s.engine.Model(ctx, family, key)
	if errors.Is(err, domain.ErrModelNotFound) || errors.Is(err, domain.ErrFamilyNotFound) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("build failed: %v", err)), nil
	}

	return mcp.NewToolResultText(graph.GenerateMermaid(model, graph.Options{
		Rates:  request.GetBool("rates", false),
		Deaths: request.GetBool("deaths", false),
	})), nil
}

// Summaries lists every family with its model keys.
func (s *Server) Summaries() ([]FamilySummary, error) {
	names := s.engine.Families()
	out := make([]FamilySummary, 0, len(names))
	for _, name := range names {
		defs, err := s.engine.Definitions(name)
		if err != nil {
			return nil, err
		}
		keys := make([]string, len(defs))
		for i, d := range defs {
			keys[i] = d.Key
		}
		out = append(out, FamilySummary{Name: name, Models: keys})
	}
	return out, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(FamiliesURI, "Model Families",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		summaries, err := s.Summaries()
		if err != nil {
			return nil, fmt.Errorf("failed to list families: %w", err)
		}
		jsonBytes, _ := json.Marshal(summaries)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      FamiliesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
