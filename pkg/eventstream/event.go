package eventstream

import (
	"time"

	"github.com/google/uuid"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeMemoryCaptured is emitted after a memory entry is persisted.
	EventTypeMemoryCaptured = "recall.memory.captured"
)

// MemoryCapturedEvent is a transport-neutral event payload for a persisted
// memory entry. Downstream consumers (sync pipelines, analytics) key on the
// tier and file key; the entry content is carried verbatim.
type MemoryCapturedEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EmittedAt     time.Time `json:"emitted_at"`
	Tier          string    `json:"tier"`
	Key           string    `json:"key"`
	Category      string    `json:"category,omitempty"`
	Content       string    `json:"content"`
	Line          int       `json:"line"`
}

// NewMemoryCapturedEvent builds a v1 capture event with a fresh event ID.
func NewMemoryCapturedEvent(tier, key, category, content string, line int, emittedAt time.Time) *MemoryCapturedEvent {
	return &MemoryCapturedEvent{
		SchemaVersion: SchemaVersionV1,
		EventType:     EventTypeMemoryCaptured,
		EventID:       uuid.NewString(),
		EmittedAt:     emittedAt,
		Tier:          tier,
		Key:           key,
		Category:      category,
		Content:       content,
		Line:          line,
	}
}
