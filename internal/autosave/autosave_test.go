package autosave

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// countingWriter records every Save call
type countingWriter struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func (w *countingWriter) Save(key string, payload []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.writes = append(w.writes, string(payload))
	return nil
}

func (w *countingWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.writes)
}

func (w *countingWriter) last() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.writes) == 0 {
		return ""
	}
	return w.writes[len(w.writes)-1]
}

func TestFlushWritesOncePerDistinctContent(t *testing.T) {
	writer := &countingWriter{}
	s := NewScheduler(writer, "doc", time.Hour)

	s.Update([]byte("v1"))
	if !s.Flush() {
		t.Fatal("First flush should write")
	}
	if s.Flush() {
		t.Error("Second flush with unchanged content must skip the write")
	}
	if writer.count() != 1 {
		t.Fatalf("Expected exactly 1 write, got %d", writer.count())
	}

	s.Update([]byte("v2"))
	if !s.Flush() {
		t.Error("Changed content should write again")
	}
	if writer.count() != 2 {
		t.Errorf("Expected 2 writes, got %d", writer.count())
	}
}

func TestFlushWithoutPayloadSkips(t *testing.T) {
	writer := &countingWriter{}
	s := NewScheduler(writer, "doc", time.Hour)

	if s.Flush() {
		t.Error("Flush before any Update must not write")
	}

	// A nil payload never replaces the recorded one
	s.Update(nil)
	if s.Flush() {
		t.Error("A nil update must not be written")
	}
	if writer.count() != 0 {
		t.Error("No writes expected")
	}
}

func TestWriteFailureKeepsDirtyState(t *testing.T) {
	writer := &countingWriter{err: errors.New("disk full")}
	s := NewScheduler(writer, "doc", time.Hour)

	s.Update([]byte("v1"))
	if s.Flush() {
		t.Error("Failed write should report false")
	}

	// Once the writer recovers, the same content is written: the
	// failed attempt must not update the dedup baseline.
	writer.err = nil
	if !s.Flush() {
		t.Error("Flush should retry after a failed write")
	}
	if writer.count() != 1 {
		t.Errorf("Expected 1 successful write, got %d", writer.count())
	}
}

func TestResetBaselineForcesWrite(t *testing.T) {
	writer := &countingWriter{}
	s := NewScheduler(writer, "doc", time.Hour)

	s.Update([]byte("v1"))
	s.Flush()
	s.ResetBaseline()

	if !s.Flush() {
		t.Error("Flush after ResetBaseline must write even with unchanged content")
	}
	if writer.count() != 2 {
		t.Errorf("Expected 2 writes, got %d", writer.count())
	}
}

func TestUpdateTriggersSave(t *testing.T) {
	writer := &countingWriter{}
	s := NewScheduler(writer, "doc", time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	s.Update([]byte("v1"))

	deadline := time.After(2 * time.Second)
	for writer.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("Update should trigger a save")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run should return when the context is cancelled")
	}
}

func TestConcurrentUpdatesWhileRunning(t *testing.T) {
	writer := &countingWriter{}
	s := NewScheduler(writer, "doc", 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	// Updates race the save loop; the scheduler must only ever write
	// payloads it was handed, never partially replaced ones.
	final := ""
	for i := 0; i < 50; i++ {
		final = fmt.Sprintf("v%d", i)
		s.Update([]byte(final))
	}

	deadline := time.After(2 * time.Second)
	for writer.last() != final {
		select {
		case <-deadline:
			t.Fatalf("Expected last write %q, got %q", final, writer.last())
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	<-done

	writer.mu.Lock()
	defer writer.mu.Unlock()
	seen := map[string]bool{}
	for _, w := range writer.writes {
		if seen[w] {
			t.Errorf("Payload %q written twice despite dedup", w)
		}
		seen[w] = true
	}
}

func TestNotifyCoalesces(t *testing.T) {
	s := NewScheduler(&countingWriter{}, "doc", time.Hour)

	// Without a running loop, repeated notifies must not block
	for i := 0; i < 10; i++ {
		s.Notify()
	}
}
