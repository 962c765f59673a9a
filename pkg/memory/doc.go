// Package memory implements the capture, classification, deduplication,
// retrieval, and retention engine for durable conversational memory.
//
// Candidate text flows through an ordered trigger-rule table that decides
// whether it is memory-worthy and which category it belongs to, then through
// keyword-overlap deduplication against a bounded recent window, and finally
// into the tiered markdown store. Stored entries are immediately visible to
// keyword search and stats. Retention runs independently, deleting whole
// tier files once their date falls outside the configured window.
//
// The engine owns all decision logic. Hosts (HTTP API, MCP server, CLI) are
// thin collaborators that call [Engine] operations.
package memory
