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
	searchToolName    = "memory_search"
	searchDescription = "Search stored memory for a keyword. Returns every match with surrounding context lines, long-term memory first, then daily files newest first. Use this to recall previously stored preferences, decisions, and facts."
)

// SearchInput represents the input arguments for the memory_search tool.
type SearchInput struct {
	Keyword string `json:"keyword" jsonschema:"the case-insensitive substring to search for"`
	Context int    `json:"context,omitempty" jsonschema:"lines of context on each side of a match (default: 3)"`
}

// SearchOutput represents the output of the memory_search tool.
type SearchOutput struct {
	Keyword string         `json:"keyword"`
	Matches []memory.Match `json:"matches"`
	Count   int            `json:"count"`
}

// handleSearch processes a search request via MCP.
func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	logger := s.config.Logger

	logger.Debug("MCP memory search request",
		zap.String("keyword", input.Keyword),
		zap.Int("context", input.Context),
	)

	matches, err := s.config.Engine.Search(ctx, input.Keyword, input.Context)
	if err != nil {
		logger.Error("memory search failed", zap.Error(err))
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Memory search failed: %v", err)},
			},
		}, SearchOutput{}, nil
	}

	if matches == nil {
		matches = []memory.Match{}
	}

	output := SearchOutput{
		Keyword: input.Keyword,
		Matches: matches,
		Count:   len(matches),
	}

	// Serialize the structured output as JSON for the text field
	// Per MCP spec: tools returning structured content should also return
	// serialized JSON in a TextContent block for backwards compatibility
	jsonBytes, err := json.Marshal(output)
	if err != nil {
		logger.Error("failed to marshal search output", zap.Error(err))
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to serialize results: %v", err)},
			},
		}, SearchOutput{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
