package api

import (
	"net/http"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/recall/pkg/flush"
	"github.com/papercomputeco/recall/pkg/memory"
	"github.com/papercomputeco/recall/pkg/summary"
	"github.com/papercomputeco/recall/pkg/worker"
)

// Deps are the optional collaborators the server exposes endpoints for.
// Nil fields disable the corresponding routes.
type Deps struct {
	// Pool accepts asynchronous conversation capture jobs.
	Pool *worker.Pool

	// Summarizer writes session summary files.
	Summarizer *summary.Summarizer

	// Flush tracks the pre-compaction memory flush state.
	Flush *flush.Manager

	// MCPHandler is mounted at /mcp when non-nil.
	MCPHandler http.Handler
}

// Server is the API server for capturing and querying the recall memory store.
type Server struct {
	config Config
	engine *memory.Engine
	deps   Deps
	logger *zap.Logger
	app    *fiber.App
}

// NewServer creates a new API server.
// The engine is injected to allow sharing with other components
// (e.g., the capture worker pool).
func NewServer(config Config, engine *memory.Engine, deps Deps, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		engine: engine,
		deps:   deps,
		logger: logger,
		app:    app,
	}

	app.Get("/ping", s.handlePing)

	app.Post("/v1/memory/capture", s.handleCapture)
	app.Post("/v1/memory/promote", s.handlePromote)
	app.Post("/v1/memory/cleanup", s.handleCleanup)
	app.Get("/v1/memory/search", s.handleSearch)
	app.Get("/v1/memory/stats", s.handleStats)
	app.Get("/v1/memory", s.handleList)

	// Registered after the fixed routes so "search" and "stats" are not
	// swallowed by the key parameter.
	app.Get("/v1/memory/:key", s.handleGet)

	if deps.Pool != nil {
		app.Post("/v1/memory/conversation", s.handleConversation)
	}

	if deps.Summarizer != nil {
		app.Post("/v1/memory/summarize", s.handleSummarize)
	}

	if deps.Flush != nil {
		app.Post("/v1/flush/check", s.handleFlushCheck)
		app.Post("/v1/flush/reset", s.handleFlushReset)
	}

	if deps.MCPHandler != nil {
		app.All("/mcp", adaptor.HTTPHandler(deps.MCPHandler))
		app.All("/mcp/*", adaptor.HTTPHandler(deps.MCPHandler))
	}

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
