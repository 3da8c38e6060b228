package autosave

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultInterval is how often the periodic save check runs
const DefaultInterval = 10 * time.Second

// Writer persists one serialized document under a fixed key
type Writer interface {
	Save(key string, payload []byte) error
}

// Scheduler persists the document on a timer and on change
// notifications, deduplicated by content: a trigger whose payload
// matches the last persisted serialization writes nothing.
//
// The scheduler never reads the live document. The mutating goroutine
// serializes it and hands the bytes over through Update, so the save
// loop only ever touches data that is already frozen.
type Scheduler struct {
	writer   Writer
	key      string
	interval time.Duration

	notify chan struct{}

	mu        sync.Mutex
	latest    []byte
	lastSaved string
}

// NewScheduler creates a scheduler. Nothing is persisted until the
// first Update hands over a serialized document.
func NewScheduler(writer Writer, key string, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		writer:   writer,
		key:      key,
		interval: interval,
		notify:   make(chan struct{}, 1),
	}
}

// Update records the current serialized document and signals the save
// loop. Call it from the goroutine that owns the document; the payload
// must not be mutated after handoff. A nil payload is ignored.
func (s *Scheduler) Update(payload []byte) {
	if payload == nil {
		return
	}
	s.mu.Lock()
	s.latest = payload
	s.mu.Unlock()
	s.Notify()
}

// Notify signals the save loop without changing the recorded payload.
// Non-blocking: coalesces with a pending notification.
func (s *Scheduler) Notify() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Run drives the save loop until the context is cancelled. Storage
// failures are logged and ignored; the session continues in memory.
// The ticker retries writes that failed on the change path.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Flush()
		case <-s.notify:
			s.Flush()
		}
	}
}

// Flush performs one save check immediately. Returns true when a write
// was issued.
func (s *Scheduler) Flush() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest == nil {
		return false
	}
	if string(s.latest) == s.lastSaved {
		return false
	}

	if err := s.writer.Save(s.key, s.latest); err != nil {
		log.Printf("autosave failed: %v", err)
		return false
	}

	s.lastSaved = string(s.latest)
	return true
}

// ResetBaseline forgets the last persisted serialization, forcing the
// next trigger to write. Used after the live document is replaced.
func (s *Scheduler) ResetBaseline() {
	s.mu.Lock()
	s.lastSaved = ""
	s.mu.Unlock()
}
