package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/doccli/internal/keybinds"
	"github.com/studiowebux/doccli/internal/types"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.dispatcher.Resolve(msg.String())

	// Global chords fire in every mode, including text inputs: they
	// are document-level intents that cannot be mistaken for typing.
	if ok {
		switch action {
		case keybinds.ActionQuitForce:
			m.Cleanup()
			m.quitting = true
			return tea.Quit
		case keybinds.ActionUndo:
			m.doUndo()
			return nil
		case keybinds.ActionRedo:
			m.doRedo()
			return nil
		case keybinds.ActionSaveFile:
			return m.doSaveFile()
		case keybinds.ActionExportPDF:
			return m.doExport()
		case keybinds.ActionEscape:
			m.doEscape()
			return nil
		}
	}

	switch m.mode {
	case ModeCanvas:
		return m.handleCanvasKeys(action, ok)
	case ModeEditElement:
		return m.handleEditKeys(msg, action, ok)
	case ModeMetadata:
		return m.handleMetadataKeys(msg)
	case ModeAddElement, ModeTemplatePicker, ModeFilePicker:
		return m.handlePickerKeys(msg, action, ok)
	case ModeHelp:
		if msg.String() == "q" || msg.String() == "esc" {
			m.mode = ModeCanvas
		}
		return nil
	case ModeDeletePageConfirm:
		return m.handleDeletePageConfirmKeys(msg)
	}

	return nil
}

// handleCanvasKeys executes canvas actions. Unrecognized keys fall
// through with no side effects.
func (m *Model) handleCanvasKeys(action keybinds.Action, ok bool) tea.Cmd {
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit:
		m.Cleanup()
		m.quitting = true
		return tea.Quit

	case keybinds.ActionSelectNext:
		m.moveSelection(1)
	case keybinds.ActionSelectPrev:
		m.moveSelection(-1)

	case keybinds.ActionDeleteElement:
		// Only with a selection and not while editing; the dispatcher
		// already keeps this chord out of text inputs.
		if id := m.sess.SelectedElement(); id != "" {
			if m.engine.DeleteElement(m.currentPageIndex(), id) {
				m.sess.SelectElement("")
				m.mutated()
				m.statusMsg = "Element deleted"
			}
		}

	case keybinds.ActionDuplicateElement:
		if id := m.sess.SelectedElement(); id != "" {
			if m.engine.DuplicateElement(m.currentPageIndex(), id) {
				m.mutated()
				m.statusMsg = "Element duplicated"
			}
		}

	case keybinds.ActionMoveElementUp:
		if id := m.sess.SelectedElement(); id != "" {
			if m.engine.MoveElement(m.currentPageIndex(), id, -1) {
				m.mutated()
			}
		}
	case keybinds.ActionMoveElementDown:
		if id := m.sess.SelectedElement(); id != "" {
			if m.engine.MoveElement(m.currentPageIndex(), id, 1) {
				m.mutated()
			}
		}

	case keybinds.ActionEditElement:
		m.beginEdit()

	case keybinds.ActionAddElement:
		m.openAddElementMenu()

	case keybinds.ActionAddPage:
		if m.engine.AddPage() {
			m.sess.SetCurrentPage(len(m.engine.Document().Pages) - 1)
			m.mutated()
			m.statusMsg = "Page added"
		}

	case keybinds.ActionDeletePage:
		if len(m.engine.Document().Pages) <= 1 {
			m.statusMsg = "Cannot delete the last page"
		} else {
			m.mode = ModeDeletePageConfirm
		}

	case keybinds.ActionNextPage:
		if m.currentPageIndex() < len(m.engine.Document().Pages)-1 {
			m.sess.SetCurrentPage(m.currentPageIndex() + 1)
		}
	case keybinds.ActionPrevPage:
		if m.currentPageIndex() > 0 {
			m.sess.SetCurrentPage(m.currentPageIndex() - 1)
		}

	case keybinds.ActionZoomIn:
		m.sess.SetZoom(m.sess.Zoom() + 0.25)
	case keybinds.ActionZoomOut:
		m.sess.SetZoom(m.sess.Zoom() - 0.25)

	case keybinds.ActionYankElement:
		m.yankSelected()

	case keybinds.ActionOpenTemplates:
		m.openTemplatePicker()

	case keybinds.ActionOpenFile:
		m.openFilePicker()

	case keybinds.ActionEditMetadata:
		m.openMetadataForm()

	case keybinds.ActionHelp:
		m.mode = ModeHelp
	}

	return nil
}

// doUndo restores the previous document snapshot
func (m *Model) doUndo() {
	if m.engine.Undo() {
		m.sess.SelectElement("")
		m.mutated()
		m.statusMsg = "Undo"
	}
}

// doRedo restores the next document snapshot
func (m *Model) doRedo() {
	if m.engine.Redo() {
		m.sess.SelectElement("")
		m.mutated()
		m.statusMsg = "Redo"
	}
}

// doEscape exits the current mode. In edit mode the pending text is
// committed and the element stays selected.
func (m *Model) doEscape() {
	switch m.mode {
	case ModeEditElement:
		m.commitEdit()
	case ModeCanvas:
		m.sess.SelectElement("")
	default:
		m.mode = ModeCanvas
	}
}

// doSaveFile serializes the document to a JSON artifact
func (m *Model) doSaveFile() tea.Cmd {
	doc := m.engine.Document().Clone()
	return saveFileCmd(doc)
}

// doExport triggers PDF generation unless one is already in flight.
// The generating flag is a non-blocking guard: a second request while
// true is rejected, not queued.
func (m *Model) doExport() tea.Cmd {
	if !m.sess.BeginGeneration() {
		m.statusMsg = "Export already in progress"
		return nil
	}
	m.statusMsg = "Generating PDF..."
	// Snapshot at invocation time so concurrent edits do not change
	// what is being exported mid-flight.
	doc := m.engine.Document().Clone()
	return exportCmd(m.client, doc)
}

// moveSelection selects the next or previous element on the page
func (m *Model) moveSelection(delta int) {
	elements := m.engine.Document().Pages[m.currentPageIndex()].Elements
	if len(elements) == 0 {
		return
	}

	current := -1
	for i := range elements {
		if elements[i].ID == m.sess.SelectedElement() {
			current = i
			break
		}
	}

	next := current + delta
	if current == -1 {
		if delta > 0 {
			next = 0
		} else {
			next = len(elements) - 1
		}
	}
	if next < 0 {
		next = 0
	}
	if next > len(elements)-1 {
		next = len(elements) - 1
	}

	m.sess.SelectElement(elements[next].ID)
}

// yankSelected copies the selected element's text content to the
// system clipboard
func (m *Model) yankSelected() {
	id := m.sess.SelectedElement()
	if id == "" {
		return
	}
	_, ei, ok := m.engine.Document().FindElement(id)
	if !ok {
		return
	}
	el := m.engine.Document().Pages[m.currentPageIndex()].Elements[ei]
	if err := clipboard.WriteAll(contentText(el)); err != nil {
		m.errorMsg = fmt.Sprintf("Clipboard unavailable: %v", err)
		return
	}
	m.statusMsg = "Element copied to clipboard"
}

// handleDeletePageConfirmKeys handles the delete-page confirmation
func (m *Model) handleDeletePageConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		page := m.engine.Document().Pages[m.currentPageIndex()]
		if m.engine.DeletePage(page.ID) {
			m.sess.SetCurrentPage(0)
			m.mutated()
			m.statusMsg = "Page deleted"
		}
		m.mode = ModeCanvas
	case "n", "N", "esc":
		m.mode = ModeCanvas
	}
	return nil
}

// elementTypeMenu lists the element types offered by the add menu
var elementTypeMenu = []types.ElementType{
	types.ElementHeading,
	types.ElementParagraph,
	types.ElementMath,
	types.ElementList,
	types.ElementTable,
	types.ElementImage,
	types.ElementDivider,
	types.ElementCode,
	types.ElementQuote,
	types.ElementCircuit,
	types.ElementDiagram,
	types.ElementChemistry,
	types.ElementChart,
}
