package journal

import (
	"context"
	"sync"

	"github.com/relicforge/go-relics/token"
)

// Recorder bridges the engine's notification stream into a Store. Engine
// subscribers cannot return errors, so the recorder keeps the first
// append failure for the caller to inspect after the run.
type Recorder struct {
	store Store

	mu  sync.Mutex
	err error
}

// NewRecorder creates a recorder writing to store.
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// Record stores one notification. It has the engine Subscriber shape.
func (r *Recorder) Record(tick uint64, ev token.Event) {
	entry, err := NewEntry(tick, ev)
	if err == nil {
		err = r.store.Append(context.Background(), entry)
	}
	if err != nil {
		r.mu.Lock()
		if r.err == nil {
			r.err = err
		}
		r.mu.Unlock()
	}
}

// Err returns the first recording failure, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
