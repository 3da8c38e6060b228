package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/doccli/internal/keybinds"
	"github.com/studiowebux/doccli/internal/types"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	pageStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	editingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("130"))
	typeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
)

// View renders the current mode
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case ModeEditElement:
		return m.renderEditor()
	case ModeMetadata:
		return m.renderMetadataForm()
	case ModeAddElement, ModeTemplatePicker, ModeFilePicker:
		return m.renderPicker()
	case ModeHelp:
		return m.renderHelp()
	case ModeDeletePageConfirm:
		return m.renderCanvas() + "\n" + errorStyle.Render("Delete this page and all its elements? (y/n)")
	default:
		return m.renderCanvas()
	}
}

func (m *Model) renderCanvas() string {
	doc := m.engine.Document()
	pageIdx := m.currentPageIndex()
	page := doc.Pages[pageIdx]

	title := doc.Metadata.Title
	if title == "" {
		title = "Untitled"
	}

	header := headerStyle.Render(title) + dimStyle.Render(fmt.Sprintf(
		"  page %d/%d  zoom %.0f%%", pageIdx+1, len(doc.Pages), m.sess.Zoom()*100))
	if m.sess.IsGenerating() {
		header += statusStyle.Render("  generating...")
	}

	var lines []string
	if len(page.Elements) == 0 {
		lines = append(lines, dimStyle.Render("(empty page - press 'a' to add an element)"))
	}
	for _, el := range page.Elements {
		lines = append(lines, m.renderElement(el))
	}

	// Zoom scales the rendered page width
	pageWidth := int(float64(72) * m.sess.Zoom())
	if m.width > 0 && pageWidth > m.width-4 {
		pageWidth = m.width - 4
	}

	body := pageStyle.Width(pageWidth).Render(strings.Join(lines, "\n"))

	return header + "\n" + body + "\n" + m.renderFooter()
}

func (m *Model) renderElement(el types.Element) string {
	label := typeStyle.Render(fmt.Sprintf("[%s] ", el.Type))
	text := elementSummary(el)

	switch el.ID {
	case m.sess.EditingElement():
		return label + editingStyle.Render(text)
	case m.sess.SelectedElement():
		return label + selectedStyle.Render(text)
	default:
		return label + text
	}
}

// elementSummary renders a one-line preview of an element's content
func elementSummary(el types.Element) string {
	var text string
	switch el.Type {
	case types.ElementDivider:
		return strings.Repeat("-", 40)
	case types.ElementList:
		text = strings.Join(el.Content.Items, " / ")
	case types.ElementTable:
		text = fmt.Sprintf("%d x %d table", len(el.Content.Rows), len(el.Content.Headers))
	case types.ElementImage:
		text = el.Content.URL
	case types.ElementMath:
		text = el.Content.Latex
	case types.ElementCode, types.ElementCircuit, types.ElementDiagram, types.ElementChart:
		text = strings.SplitN(el.Content.Code, "\n", 2)[0]
	case types.ElementChemistry:
		text = el.Content.Formula
	default:
		text = el.Content.Text
	}
	if text == "" {
		text = "(empty)"
	}
	text = strings.ReplaceAll(text, "\n", " ")
	if len(text) > 60 {
		text = text[:57] + "..."
	}
	return text
}

func (m *Model) renderFooter() string {
	if m.errorMsg != "" {
		return errorStyle.Render(m.errorMsg)
	}
	if m.statusMsg != "" {
		return statusStyle.Render(m.statusMsg)
	}
	return dimStyle.Render("a add  enter edit  ctrl+z undo  ctrl+s save  ctrl+p export  ? help  q quit")
}

func (m *Model) renderEditor() string {
	return titleStyle.Render("Edit element") + "\n\n" +
		m.editArea.View() + "\n\n" +
		dimStyle.Render("esc apply and close")
}

func (m *Model) renderMetadataForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Document metadata") + "\n\n")
	for i := range m.metaInputs {
		b.WriteString(m.metaInputs[i].View() + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("tab next field  enter apply  esc cancel"))
	return b.String()
}

func (m *Model) renderPicker() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.picker.title) + "\n")
	if m.picker.query != "" {
		b.WriteString(dimStyle.Render("filter: "+m.picker.query) + "\n")
	}
	b.WriteString("\n")

	if len(m.picker.matches) == 0 {
		b.WriteString(dimStyle.Render("(no matches)") + "\n")
	}
	for i, item := range m.picker.matches {
		if i == m.picker.index {
			b.WriteString(selectedStyle.Render("> "+item) + "\n")
		} else {
			b.WriteString("  " + item + "\n")
		}
	}

	b.WriteString("\n" + dimStyle.Render("type to filter  enter select  esc cancel"))
	return b.String()
}

// helpEntry pairs an action with its help-screen description; the keys
// themselves come from the registry so the screen never drifts from
// the actual bindings.
type helpEntry struct {
	action keybinds.Action
	label  string
}

var canvasHelp = []helpEntry{
	{keybinds.ActionSelectNext, "select next element"},
	{keybinds.ActionSelectPrev, "select previous element"},
	{keybinds.ActionPrevPage, "previous page"},
	{keybinds.ActionNextPage, "next page"},
	{keybinds.ActionEditElement, "edit selected element"},
	{keybinds.ActionAddElement, "add element"},
	{keybinds.ActionAddPage, "add page"},
	{keybinds.ActionDeletePage, "delete page"},
	{keybinds.ActionYankElement, "copy element text to clipboard"},
	{keybinds.ActionMoveElementUp, "move element up"},
	{keybinds.ActionMoveElementDown, "move element down"},
	{keybinds.ActionDuplicateElement, "duplicate element"},
	{keybinds.ActionDeleteElement, "delete element"},
	{keybinds.ActionZoomIn, "zoom in"},
	{keybinds.ActionZoomOut, "zoom out"},
	{keybinds.ActionOpenTemplates, "new document from template"},
	{keybinds.ActionOpenFile, "open saved document"},
	{keybinds.ActionEditMetadata, "edit metadata"},
}

var globalHelp = []helpEntry{
	{keybinds.ActionUndo, "undo"},
	{keybinds.ActionRedo, "redo"},
	{keybinds.ActionSaveFile, "save document as JSON"},
	{keybinds.ActionExportPDF, "export PDF"},
	{keybinds.ActionEscape, "close / clear selection"},
}

func (m *Model) renderHelp() string {
	var b strings.Builder
	b.WriteString("Keybindings\n\nCanvas\n")
	m.writeHelpSection(&b, keybinds.ContextCanvas, canvasHelp)
	b.WriteString("\nAnywhere\n")
	m.writeHelpSection(&b, keybinds.ContextGlobal, globalHelp)
	b.WriteString("\nPress q or esc to close this help.")
	return b.String()
}

func (m *Model) writeHelpSection(b *strings.Builder, context keybinds.Context, entries []helpEntry) {
	for _, entry := range entries {
		keys := m.keysFor(context, entry.action)
		if keys == "" {
			continue
		}
		fmt.Fprintf(b, "  %-16s %s\n", keys, entry.label)
	}
}

// keysFor lists the keys bound to an action in one context
func (m *Model) keysFor(context keybinds.Context, action keybinds.Action) string {
	var keys []string
	for _, bind := range m.registry.Bindings(context) {
		if bind.Action == action {
			keys = append(keys, bind.Key)
		}
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
