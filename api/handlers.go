package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/recall/pkg/memory"
	"github.com/papercomputeco/recall/pkg/memory/store"
)

// CaptureRequest is the body of POST /v1/memory/capture.
type CaptureRequest struct {
	// Content is the text to remember.
	Content string `json:"content"`

	// Category optionally forces a category; empty means auto-classify.
	Category string `json:"category,omitempty"`
}

// PromoteRequest is the body of POST /v1/memory/promote.
type PromoteRequest struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// CleanupRequest is the body of POST /v1/memory/cleanup. Zero values fall
// back to the engine's configured retention windows.
type CleanupRequest struct {
	DailyDays   int `json:"daily_days,omitempty"`
	SummaryDays int `json:"summary_days,omitempty"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleCapture processes a single capture request.
func (s *Server) handleCapture(c *fiber.Ctx) error {
	var req CaptureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	result, err := s.engine.Capture(c.Context(), req.Content, req.Category)
	if err != nil {
		return s.errorJSON(c, err)
	}

	return c.JSON(result)
}

// handlePromote appends content to long-term memory under a subject header.
func (s *Server) handlePromote(c *fiber.Ctx) error {
	var req PromoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if err := s.engine.Promote(c.Context(), req.Subject, req.Content); err != nil {
		return s.errorJSON(c, err)
	}

	return c.JSON(map[string]string{"status": "ok"})
}

// handleList returns the stored memory files, optionally filtered by category.
func (s *Server) handleList(c *fiber.Ctx) error {
	files, err := s.engine.List(c.Context(), c.Query("category"))
	if err != nil {
		return s.errorJSON(c, err)
	}

	return c.JSON(map[string]any{
		"count": len(files),
		"files": files,
	})
}

// handleGet returns the content of one memory file by key.
// Query parameters start and end select an inclusive 1-based line range.
func (s *Server) handleGet(c *fiber.Ctx) error {
	key := c.Params("key")

	start, err := queryInt(c, "start")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "start must be an integer"})
	}
	end, err := queryInt(c, "end")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "end must be an integer"})
	}

	result, err := s.engine.Get(c.Context(), key, start, end)
	if err != nil {
		return s.errorJSON(c, err)
	}

	return c.JSON(result)
}

// handleSearch handles GET /v1/memory/search requests.
// Query parameters:
//   - keyword (required): the case-insensitive substring to search for
//   - context (optional): lines of context on each side of a match
func (s *Server) handleSearch(c *fiber.Ctx) error {
	keyword := c.Query("keyword")
	if keyword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "keyword parameter is required",
		})
	}

	contextLines, err := queryInt(c, "context")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "context must be an integer"})
	}

	matches, err := s.engine.Search(c.Context(), keyword, contextLines)
	if err != nil {
		return s.errorJSON(c, err)
	}

	return c.JSON(map[string]any{
		"count":   len(matches),
		"matches": matches,
	})
}

// handleStats returns store-wide statistics.
func (s *Server) handleStats(c *fiber.Ctx) error {
	stats, err := s.engine.Stats(c.Context())
	if err != nil {
		return s.errorJSON(c, err)
	}

	return c.JSON(stats)
}

// handleCleanup deletes memory files older than the retention windows.
func (s *Server) handleCleanup(c *fiber.Ctx) error {
	var req CleanupRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
		}
	}

	result, err := s.engine.Cleanup(c.Context(), req.DailyDays, req.SummaryDays)
	if err != nil {
		return s.errorJSON(c, err)
	}

	return c.JSON(result)
}

// errorJSON maps engine and store errors to HTTP statuses.
func (s *Server) errorJSON(c *fiber.Ctx, err error) error {
	var (
		notFound   store.ErrNotFound
		invalidKey store.ErrInvalidKey
		validation memory.ValidationError
	)

	switch {
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
	case errors.As(err, &invalidKey), errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}
}

func queryInt(c *fiber.Ctx, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}

	return strconv.Atoi(raw)
}
