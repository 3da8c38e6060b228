package history

import (
	"github.com/studiowebux/doccli/internal/document"
	"github.com/studiowebux/doccli/internal/types"
)

// DefaultDepth is the default maximum number of undo snapshots kept.
// Oldest snapshots are dropped when the cap is reached.
const DefaultDepth = 100

// Engine wraps the document store with snapshot-based undo/redo.
// Every mutating operation serializes the pre-mutation document; the
// snapshot is kept only when the operation actually changed something,
// so invalid input never pollutes the stacks or clears redo state.
type Engine struct {
	store  *document.Store
	past   [][]byte // oldest first, most recent last
	future [][]byte
	depth  int
}

// NewEngine creates an engine around a store with the default depth cap
func NewEngine(store *document.Store) *Engine {
	return NewEngineDepth(store, DefaultDepth)
}

// NewEngineDepth creates an engine with an explicit depth cap.
// A depth of zero or less falls back to the default.
func NewEngineDepth(store *document.Store, depth int) *Engine {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Engine{store: store, depth: depth}
}

// Document returns the live document
func (e *Engine) Document() *types.Document {
	return e.store.Document()
}

// Reset replaces the live document and clears both stacks. Loading a
// file or instantiating a template starts a new editing session, not
// an undoable action.
func (e *Engine) Reset(doc *types.Document) {
	e.store.SetDocument(doc)
	e.past = nil
	e.future = nil
}

// CanUndo reports whether an undo snapshot is available
func (e *Engine) CanUndo() bool { return len(e.past) > 0 }

// CanRedo reports whether a redo snapshot is available
func (e *Engine) CanRedo() bool { return len(e.future) > 0 }

// Undo restores the most recent past snapshot, pushing the current
// document onto the redo stack. No-op when the past stack is empty.
func (e *Engine) Undo() bool {
	if len(e.past) == 0 {
		return false
	}
	current, err := e.store.Document().Encode()
	if err != nil {
		return false
	}
	snapshot := e.past[len(e.past)-1]
	restored, err := types.Decode(snapshot)
	if err != nil {
		return false
	}
	e.past = e.past[:len(e.past)-1]
	e.future = append(e.future, current)
	e.store.SetDocument(restored)
	return true
}

// Redo restores the most recent future snapshot, pushing the current
// document back onto the past stack. No-op when the future stack is empty.
func (e *Engine) Redo() bool {
	if len(e.future) == 0 {
		return false
	}
	current, err := e.store.Document().Encode()
	if err != nil {
		return false
	}
	snapshot := e.future[len(e.future)-1]
	restored, err := types.Decode(snapshot)
	if err != nil {
		return false
	}
	e.future = e.future[:len(e.future)-1]
	e.past = append(e.past, current)
	e.store.SetDocument(restored)
	return true
}

// apply runs a mutation with snapshot bookkeeping: the pre-mutation
// state is recorded and the redo stack cleared only when the mutation
// reports a change.
func (e *Engine) apply(mutate func() bool) bool {
	snapshot, err := e.store.Document().Encode()
	if err != nil {
		return false
	}
	if !mutate() {
		return false
	}
	e.past = append(e.past, snapshot)
	if len(e.past) > e.depth {
		e.past = e.past[len(e.past)-e.depth:]
	}
	e.future = nil
	return true
}

// AddElement appends a new element of the given type to a page
func (e *Engine) AddElement(typ types.ElementType, pageIndex int) bool {
	return e.apply(func() bool { return e.store.AddElement(typ, pageIndex) })
}

// UpdateElement replaces the payload of an element
func (e *Engine) UpdateElement(pageIndex int, elementID string, content types.Content) bool {
	return e.apply(func() bool { return e.store.UpdateElement(pageIndex, elementID, content) })
}

// DeleteElement removes an element from a page
func (e *Engine) DeleteElement(pageIndex int, elementID string) bool {
	return e.apply(func() bool { return e.store.DeleteElement(pageIndex, elementID) })
}

// DuplicateElement clones an element under a fresh id
func (e *Engine) DuplicateElement(pageIndex int, elementID string) bool {
	return e.apply(func() bool { return e.store.DuplicateElement(pageIndex, elementID) })
}

// MoveElement reorders an element within its page
func (e *Engine) MoveElement(pageIndex int, elementID string, delta int) bool {
	return e.apply(func() bool { return e.store.MoveElement(pageIndex, elementID, delta) })
}

// AddPage appends an empty page
func (e *Engine) AddPage() bool {
	return e.apply(func() bool { return e.store.AddPage() })
}

// DeletePage removes a page, refusing to remove the last one
func (e *Engine) DeletePage(pageID string) bool {
	return e.apply(func() bool { return e.store.DeletePage(pageID) })
}

// UpdateMetadata merges metadata fields
func (e *Engine) UpdateMetadata(patch document.MetadataPatch) bool {
	return e.apply(func() bool { return e.store.UpdateMetadata(patch) })
}

// UpdateSettings merges settings fields
func (e *Engine) UpdateSettings(patch document.SettingsPatch) bool {
	return e.apply(func() bool { return e.store.UpdateSettings(patch) })
}
