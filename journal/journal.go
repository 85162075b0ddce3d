// Package journal records the notification stream the engine emits.
// Entries are append-only and sequence-numbered; stores come in a memory
// variant for tests and a sqlite variant for persistence, plus a JSONL
// codec for export and offline inspection.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/relicforge/go-relics/token"
)

// Entry is one recorded notification.
type Entry struct {
	// ID is a globally unique entry identifier.
	ID string `json:"id"`

	// Seq is the store-assigned sequence number, starting at 1.
	Seq uint64 `json:"seq"`

	// Tick is the logical-clock value at emission time.
	Tick uint64 `json:"tick"`

	// Kind names the notification.
	Kind string `json:"kind"`

	// Payload is the JSON-encoded event.
	Payload json.RawMessage `json:"payload"`

	// At is the wall-clock recording time.
	At time.Time `json:"at"`
}

// Store persists entries in append order.
type Store interface {
	// Append stores the entry and assigns its sequence number.
	Append(ctx context.Context, e *Entry) error

	// List returns entries with Seq >= fromSeq, in sequence order.
	List(ctx context.Context, fromSeq uint64) ([]*Entry, error)

	// Close releases the store's resources.
	Close() error
}

// NewEntry builds an unsequenced entry from an event. The payload is the
// event's JSON encoding.
func NewEntry(tick uint64, ev token.Event) (*Entry, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", ev.Kind(), err)
	}
	return &Entry{
		ID:      uuid.NewString(),
		Tick:    tick,
		Kind:    string(ev.Kind()),
		Payload: payload,
		At:      time.Now().UTC(),
	}, nil
}
