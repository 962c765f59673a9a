package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/recall/pkg/memory"
	"github.com/papercomputeco/recall/pkg/worker"
)

// ConversationRequest is the body of POST /v1/memory/conversation.
type ConversationRequest struct {
	// SessionID identifies the originating conversation, for logs only.
	SessionID string `json:"session_id,omitempty"`

	// Turns are the conversation messages to scan for memory-worthy content.
	Turns []memory.Turn `json:"turns"`
}

// SummarizeRequest is the body of POST /v1/memory/summarize.
type SummarizeRequest struct {
	Turns []memory.Turn `json:"turns"`

	// LastN restricts the summary excerpt to the final N exchanges.
	LastN int `json:"last_n,omitempty"`
}

// FlushCheckRequest is the body of POST /v1/flush/check.
type FlushCheckRequest struct {
	// Tokens is the session's current estimated token count.
	Tokens int `json:"tokens"`
}

// FlushCheckResponse reports whether the session should flush memory now.
type FlushCheckResponse struct {
	ShouldFlush  bool   `json:"should_flush"`
	TriggerPoint int    `json:"trigger_point"`
	Prompt       string `json:"prompt,omitempty"`
}

// handleConversation enqueues a conversation for asynchronous capture.
// The scan runs on the worker pool, so the response only acknowledges receipt.
func (s *Server) handleConversation(c *fiber.Ctx) error {
	var req ConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if len(req.Turns) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "turns must not be empty"})
	}

	if !s.deps.Pool.Enqueue(worker.Job{SessionID: req.SessionID, Turns: req.Turns}) {
		s.logger.Warn("capture queue full, dropping conversation",
			zap.String("session_id", req.SessionID),
		)
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: "capture queue is full"})
	}

	return c.Status(fiber.StatusAccepted).JSON(map[string]string{"status": "accepted"})
}

// handleSummarize writes a session summary file and returns its key.
func (s *Server) handleSummarize(c *fiber.Ctx) error {
	var req SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if len(req.Turns) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "turns must not be empty"})
	}

	key, err := s.deps.Summarizer.Summarize(c.Context(), req.Turns, req.LastN)
	if err != nil {
		return s.errorJSON(c, err)
	}

	return c.JSON(map[string]string{"key": key})
}

// handleFlushCheck reports whether the session has crossed the flush trigger
// point. The flush fires at most once per session until reset.
func (s *Server) handleFlushCheck(c *fiber.Ctx) error {
	var req FlushCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	resp := FlushCheckResponse{
		TriggerPoint: s.deps.Flush.TriggerPoint(),
	}
	if s.deps.Flush.ShouldFlush(req.Tokens) {
		resp.ShouldFlush = true
		resp.Prompt = s.deps.Flush.Prompt(time.Now())
	}

	return c.JSON(resp)
}

// handleFlushReset rearms the flush trigger for a new session.
func (s *Server) handleFlushReset(c *fiber.Ctx) error {
	s.deps.Flush.Reset()
	return c.JSON(map[string]string{"status": "ok"})
}
