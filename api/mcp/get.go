package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/recall/pkg/memory"
)

var (
	getToolName    = "memory_get"
	getDescription = "Read a memory file by key. Keys are a date (YYYY-MM-DD) for daily files, a date-slug (YYYY-MM-DD-topic) for session summaries, or MEMORY for long-term memory. Optional start and end select an inclusive 1-based line range."
)

// GetInput represents the input arguments for the memory_get tool.
type GetInput struct {
	Key   string `json:"key" jsonschema:"the memory file key: a date, a date-slug, or MEMORY"`
	Start int    `json:"start,omitempty" jsonschema:"first line to return, 1-based (default: 1)"`
	End   int    `json:"end,omitempty" jsonschema:"last line to return, inclusive (default: end of file)"`
}

// handleGet processes a get request via MCP.
func (s *Server) handleGet(ctx context.Context, _ *mcp.CallToolRequest, input GetInput) (*mcp.CallToolResult, memory.GetResult, error) {
	if input.Key == "" {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: "key is required"},
			},
		}, memory.GetResult{}, nil
	}

	result, err := s.config.Engine.Get(ctx, input.Key, input.Start, input.End)
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Memory get failed: %v", err)},
			},
		}, memory.GetResult{}, nil
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to serialize result: %v", err)},
			},
		}, memory.GetResult{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, result, nil
}
