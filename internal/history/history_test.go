package history

import (
	"bytes"
	"testing"

	"github.com/studiowebux/doccli/internal/document"
	"github.com/studiowebux/doccli/internal/types"
)

func newTestEngine() *Engine {
	return NewEngine(document.NewStore(types.NewDocument("Test")))
}

func encode(t *testing.T, e *Engine) []byte {
	t.Helper()
	data, err := e.Document().Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return data
}

func TestUndoRestoresPreMutationState(t *testing.T) {
	e := newTestEngine()
	before := encode(t, e)

	if !e.AddElement(types.ElementParagraph, 0) {
		t.Fatal("AddElement should succeed")
	}

	if !e.Undo() {
		t.Fatal("Undo should succeed after a mutation")
	}

	after := encode(t, e)
	if !bytes.Equal(before, after) {
		t.Errorf("Undo must restore the exact pre-mutation document\nbefore: %s\nafter:  %s", before, after)
	}
}

func TestUndoRedoScenario(t *testing.T) {
	// Start with one empty page; add a paragraph; undo; redo. The redo
	// must restore the element with the same id it was created with.
	e := newTestEngine()

	if len(e.Document().Pages[0].Elements) != 0 {
		t.Fatal("Expected an empty page")
	}

	e.AddElement(types.ElementParagraph, 0)
	created := e.Document().Pages[0].Elements[0]
	if created.Type != types.ElementParagraph {
		t.Fatalf("Expected paragraph, got %s", created.Type)
	}

	e.Undo()
	if len(e.Document().Pages[0].Elements) != 0 {
		t.Fatal("Undo should remove the element")
	}

	e.Redo()
	elements := e.Document().Pages[0].Elements
	if len(elements) != 1 {
		t.Fatal("Redo should restore the element")
	}
	if elements[0].ID != created.ID {
		t.Errorf("Redo must restore the identical id: got %s, want %s", elements[0].ID, created.ID)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	e := newTestEngine()
	e.AddElement(types.ElementHeading, 0)
	e.AddElement(types.ElementParagraph, 0)
	preUndo := encode(t, e)

	e.Undo()
	e.Redo()

	if !bytes.Equal(preUndo, encode(t, e)) {
		t.Error("undo;redo with no intervening mutation must restore the exact pre-undo document")
	}
}

func TestUndoEmptyIsNoop(t *testing.T) {
	e := newTestEngine()
	before := encode(t, e)

	if e.Undo() {
		t.Error("Undo with empty past must be a no-op")
	}
	if !bytes.Equal(before, encode(t, e)) {
		t.Error("No-op undo must not change the document")
	}
}

func TestRedoEmptyIsNoop(t *testing.T) {
	e := newTestEngine()
	e.AddElement(types.ElementHeading, 0)
	before := encode(t, e)

	if e.Redo() {
		t.Error("Redo with empty future must be a no-op")
	}
	if !bytes.Equal(before, encode(t, e)) {
		t.Error("No-op redo must not change the document")
	}
}

func TestMutationClearsFuture(t *testing.T) {
	e := newTestEngine()
	e.AddElement(types.ElementHeading, 0)
	e.Undo()

	if !e.CanRedo() {
		t.Fatal("Undo should populate the redo stack")
	}

	e.AddElement(types.ElementParagraph, 0)

	if e.CanRedo() {
		t.Error("A new mutation must clear the redo stack")
	}
}

func TestNoopMutationLeavesHistoryAlone(t *testing.T) {
	e := newTestEngine()
	e.AddElement(types.ElementHeading, 0)
	e.Undo()

	// Invalid page index: the operation changes nothing, so it must
	// neither record an undo entry nor clear the redo stack.
	if e.AddElement(types.ElementParagraph, 99) {
		t.Fatal("Expected a no-op")
	}

	if e.CanUndo() {
		t.Error("No-op mutation must not push an undo snapshot")
	}
	if !e.CanRedo() {
		t.Error("No-op mutation must not clear the redo stack")
	}
}

func TestSequenceOfMutationsUndoesOneAtATime(t *testing.T) {
	e := newTestEngine()

	var states [][]byte
	states = append(states, encode(t, e))
	e.AddElement(types.ElementHeading, 0)
	states = append(states, encode(t, e))
	e.AddPage()
	states = append(states, encode(t, e))
	e.AddElement(types.ElementParagraph, 1)

	for i := len(states) - 1; i >= 0; i-- {
		if !e.Undo() {
			t.Fatalf("Undo %d should succeed", len(states)-i)
		}
		if !bytes.Equal(states[i], encode(t, e)) {
			t.Fatalf("Undo must restore state %d exactly", i)
		}
	}

	if e.Undo() {
		t.Error("No more snapshots should remain")
	}
}

func TestResetClearsBothStacks(t *testing.T) {
	e := newTestEngine()
	e.AddElement(types.ElementHeading, 0)
	e.Undo()

	e.Reset(types.NewDocument("Fresh"))

	if e.CanUndo() || e.CanRedo() {
		t.Error("Reset must clear both history stacks")
	}
	if e.Document().Metadata.Title != "Fresh" {
		t.Error("Reset must install the new document")
	}
}

func TestDepthCapDropsOldest(t *testing.T) {
	e := NewEngineDepth(document.NewStore(types.NewDocument("Test")), 3)

	for i := 0; i < 5; i++ {
		e.AddElement(types.ElementParagraph, 0)
	}

	undone := 0
	for e.Undo() {
		undone++
	}
	if undone != 3 {
		t.Errorf("Expected the depth cap to keep 3 snapshots, undid %d", undone)
	}
	// The oldest surviving snapshot has the first two elements
	if got := len(e.Document().Pages[0].Elements); got != 2 {
		t.Errorf("Expected 2 elements after exhausting undo, got %d", got)
	}
}

func TestDeletePageUndo(t *testing.T) {
	e := newTestEngine()
	e.AddPage()
	e.AddElement(types.ElementQuote, 1)
	pageID := e.Document().Pages[1].ID
	preDelete := encode(t, e)

	if !e.DeletePage(pageID) {
		t.Fatal("DeletePage should succeed")
	}
	if len(e.Document().Pages) != 1 {
		t.Fatal("Page should be gone")
	}

	e.Undo()
	if !bytes.Equal(preDelete, encode(t, e)) {
		t.Error("Undo must restore the deleted page and its elements")
	}
}
