package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/doccli/internal/document"
	"github.com/studiowebux/doccli/internal/keybinds"
	"github.com/studiowebux/doccli/internal/types"
)

// beginEdit enters edit mode for the selected element. Dividers have
// no editable text.
func (m *Model) beginEdit() {
	id := m.sess.SelectedElement()
	if id == "" {
		return
	}
	pi, ei, ok := m.engine.Document().FindElement(id)
	if !ok || pi != m.currentPageIndex() {
		return
	}

	el := m.engine.Document().Pages[pi].Elements[ei]
	if el.Type == types.ElementDivider {
		m.statusMsg = "Dividers have no editable content"
		return
	}

	m.sess.SetEditing(id)
	m.editTarget = id
	m.editArea.SetValue(contentText(el))
	m.editArea.Focus()
	m.mode = ModeEditElement
}

// commitEdit applies the pending text to the element and exits edit
// mode, leaving the element selected
func (m *Model) commitEdit() {
	id := m.editTarget
	m.mode = ModeCanvas
	m.sess.SetEditing("")
	m.editArea.Blur()

	pi, ei, ok := m.engine.Document().FindElement(id)
	if !ok {
		return
	}
	el := m.engine.Document().Pages[pi].Elements[ei]
	content := contentWithText(el, m.editArea.Value())
	if m.engine.UpdateElement(pi, el.ID, content) {
		m.mutated()
		m.statusMsg = "Element updated"
	}
}

// handleEditKeys forwards keys to the textarea. Submit is esc (handled
// globally) or the text-input submit chord.
func (m *Model) handleEditKeys(msg tea.KeyMsg, action keybinds.Action, ok bool) tea.Cmd {
	if ok && action == keybinds.ActionTextSubmit {
		m.commitEdit()
		return nil
	}

	var cmd tea.Cmd
	m.editArea, cmd = m.editArea.Update(msg)
	return cmd
}

// openMetadataForm enters the metadata editing form
func (m *Model) openMetadataForm() {
	meta := m.engine.Document().Metadata
	m.metaInputs[0].SetValue(meta.Title)
	m.metaInputs[1].SetValue(meta.Author)
	m.metaInputs[2].SetValue(meta.Date)
	m.metaFocus = 0
	m.metaInputs[0].Focus()
	for i := 1; i < len(m.metaInputs); i++ {
		m.metaInputs[i].Blur()
	}
	m.mode = ModeMetadata
}

// handleMetadataKeys drives the metadata form: tab cycles fields,
// enter commits, esc is handled globally and falls back to canvas
func (m *Model) handleMetadataKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab", "down", "up":
		m.metaInputs[m.metaFocus].Blur()
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.metaFocus = (m.metaFocus + len(m.metaInputs) - 1) % len(m.metaInputs)
		} else {
			m.metaFocus = (m.metaFocus + 1) % len(m.metaInputs)
		}
		m.metaInputs[m.metaFocus].Focus()
		return nil

	case "enter":
		title := m.metaInputs[0].Value()
		author := m.metaInputs[1].Value()
		date := m.metaInputs[2].Value()
		if m.engine.UpdateMetadata(document.MetadataPatch{Title: &title, Author: &author, Date: &date}) {
			m.mutated()
			m.statusMsg = "Metadata updated"
		}
		m.mode = ModeCanvas
		return nil
	}

	var cmd tea.Cmd
	m.metaInputs[m.metaFocus], cmd = m.metaInputs[m.metaFocus].Update(msg)
	return cmd
}

// contentText extracts the editable text of an element
func contentText(el types.Element) string {
	switch el.Type {
	case types.ElementMath:
		return el.Content.Latex
	case types.ElementList:
		return strings.Join(el.Content.Items, "\n")
	case types.ElementImage:
		return el.Content.URL
	case types.ElementCode, types.ElementCircuit, types.ElementDiagram, types.ElementChart:
		return el.Content.Code
	case types.ElementChemistry:
		return el.Content.Formula
	case types.ElementTable:
		return el.Content.Caption
	default:
		return el.Content.Text
	}
}

// contentWithText returns the element's content with the edited text
// applied to the type's primary field
func contentWithText(el types.Element, text string) types.Content {
	content := types.CloneContent(el.Content)
	switch el.Type {
	case types.ElementMath:
		content.Latex = text
	case types.ElementList:
		content.Items = strings.Split(text, "\n")
	case types.ElementImage:
		content.URL = text
	case types.ElementCode, types.ElementCircuit, types.ElementDiagram, types.ElementChart:
		content.Code = text
	case types.ElementChemistry:
		content.Formula = text
	case types.ElementTable:
		content.Caption = text
	default:
		content.Text = text
	}
	return content
}
