package session

// Zoom bounds. Scales outside this range produce an unusable canvas.
const (
	MinZoom = 0.25
	MaxZoom = 2.0
)

// State tracks what is selected versus actively edited, plus the view
// state of the editing session. It is a pure state holder: it never
// touches the document, and its transition rules hold regardless of
// call order.
type State struct {
	selectedElementID string
	editingElementID  string
	currentPageIndex  int
	zoom              float64
	generating        bool
}

// NewState creates a session state with default view settings
func NewState() *State {
	return &State{zoom: 1.0}
}

// SelectedElement returns the id of the selected element, or "" when
// nothing is selected
func (s *State) SelectedElement() string { return s.selectedElementID }

// EditingElement returns the id of the element being edited, or ""
// when not in edit mode
func (s *State) EditingElement() string { return s.editingElementID }

// CurrentPage returns the index of the page being viewed
func (s *State) CurrentPage() int { return s.currentPageIndex }

// Zoom returns the current canvas zoom factor
func (s *State) Zoom() float64 { return s.zoom }

// IsGenerating reports whether an export is in flight
func (s *State) IsGenerating() bool { return s.generating }

// SelectElement selects an element and exits edit mode. Selecting ""
// clears the selection.
func (s *State) SelectElement(id string) {
	s.selectedElementID = id
	s.editingElementID = ""
}

// SetEditing enters edit mode for an element, which always selects it
// as well. Passing "" exits edit mode but leaves the element selected:
// the element the user just typed in is the most likely target of the
// next action.
func (s *State) SetEditing(id string) {
	if id == "" {
		s.editingElementID = ""
		return
	}
	s.editingElementID = id
	s.selectedElementID = id
}

// SetCurrentPage switches the viewed page and clears the selection,
// which would otherwise reference an element on a different page.
// Bounds are enforced by the document store, not here.
func (s *State) SetCurrentPage(index int) {
	if index < 0 {
		index = 0
	}
	s.currentPageIndex = index
	s.selectedElementID = ""
	s.editingElementID = ""
}

// SetZoom clamps and applies a zoom factor
func (s *State) SetZoom(zoom float64) {
	if zoom < MinZoom {
		zoom = MinZoom
	}
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	s.zoom = zoom
}

// BeginGeneration marks an export as in flight. Returns false when one
// is already running; the caller must then skip starting another. This
// is a non-blocking guard, not a queue.
func (s *State) BeginGeneration() bool {
	if s.generating {
		return false
	}
	s.generating = true
	return true
}

// EndGeneration clears the in-flight flag
func (s *State) EndGeneration() {
	s.generating = false
}
