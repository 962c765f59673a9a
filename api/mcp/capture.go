package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/papercomputeco/recall/pkg/memory"
)

var (
	captureToolName    = "memory_capture"
	captureDescription = "Store an important piece of information in persistent memory. Content is classified into a category (preference, decision, entity, fact) unless one is given, checked against recent memory for duplicates, and appended to today's memory file. Use this to remember user preferences, decisions, and facts across sessions."
)

// CaptureInput represents the input arguments for the memory_capture tool.
type CaptureInput struct {
	Content  string `json:"content" jsonschema:"the text to remember"`
	Category string `json:"category,omitempty" jsonschema:"optional category override: preference, decision, entity, or fact (default: auto-classify)"`
}

// handleCapture processes a capture request via MCP.
func (s *Server) handleCapture(ctx context.Context, _ *mcp.CallToolRequest, input CaptureInput) (*mcp.CallToolResult, memory.CaptureResult, error) {
	if input.Content == "" {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: "content is required"},
			},
		}, memory.CaptureResult{}, nil
	}

	s.config.Logger.Debug("MCP capture request",
		zap.String("category", input.Category),
	)

	result, err := s.config.Engine.Capture(ctx, input.Content, input.Category)
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Memory capture failed: %v", err)},
			},
		}, memory.CaptureResult{}, nil
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to serialize result: %v", err)},
			},
		}, memory.CaptureResult{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, result, nil
}
