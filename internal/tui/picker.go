package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/studiowebux/doccli/internal/config"
	"github.com/studiowebux/doccli/internal/docfile"
	"github.com/studiowebux/doccli/internal/keybinds"
	"github.com/studiowebux/doccli/internal/template"
	"github.com/studiowebux/doccli/internal/types"
)

// pickerState drives the fuzzy-filtered list used for templates,
// saved files and the add-element menu
type pickerState struct {
	title   string
	items   []string
	matches []string
	query   string
	index   int
}

func (p *pickerState) reset(title string, items []string) {
	p.title = title
	p.items = items
	p.matches = items
	p.query = ""
	p.index = 0
}

// filter narrows the visible items with fuzzy matching; an empty query
// shows everything
func (p *pickerState) filter() {
	if p.query == "" {
		p.matches = p.items
		p.index = 0
		return
	}
	results := fuzzy.Find(p.query, p.items)
	p.matches = make([]string, len(results))
	for i, r := range results {
		p.matches[i] = r.Str
	}
	p.index = 0
}

func (p *pickerState) move(delta int) {
	if len(p.matches) == 0 {
		return
	}
	p.index += delta
	if p.index < 0 {
		p.index = 0
	}
	if p.index > len(p.matches)-1 {
		p.index = len(p.matches) - 1
	}
}

func (p *pickerState) selected() (string, bool) {
	if p.index < 0 || p.index >= len(p.matches) {
		return "", false
	}
	return p.matches[p.index], true
}

// openTemplatePicker shows the template catalog
func (m *Model) openTemplatePicker() {
	m.picker.reset("New document from template", template.Names())
	m.mode = ModeTemplatePicker
}

// openFilePicker lists saved JSON documents in the exports directory
func (m *Model) openFilePicker() {
	entries, err := os.ReadDir(config.ExportsDir)
	if err != nil {
		m.errorMsg = "Cannot read exports directory"
		return
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	if len(files) == 0 {
		m.statusMsg = "No saved documents found"
		return
	}

	m.picker.reset("Open document", files)
	m.mode = ModeFilePicker
}

// openAddElementMenu shows the element type list
func (m *Model) openAddElementMenu() {
	items := make([]string, len(elementTypeMenu))
	for i, t := range elementTypeMenu {
		items[i] = string(t)
	}
	m.picker.reset("Add element", items)
	m.mode = ModeAddElement
}

// handlePickerKeys drives all picker-based modes
func (m *Model) handlePickerKeys(msg tea.KeyMsg, action keybinds.Action, ok bool) tea.Cmd {
	if ok {
		switch action {
		case keybinds.ActionPickerUp:
			m.picker.move(-1)
			return nil
		case keybinds.ActionPickerDown:
			m.picker.move(1)
			return nil
		case keybinds.ActionPickerConfirm:
			m.confirmPicker()
			return nil
		}
	}

	switch msg.Type {
	case tea.KeyBackspace:
		if len(m.picker.query) > 0 {
			m.picker.query = m.picker.query[:len(m.picker.query)-1]
			m.picker.filter()
		}
	case tea.KeyRunes:
		m.picker.query += string(msg.Runes)
		m.picker.filter()
	}

	return nil
}

// confirmPicker applies the highlighted choice for the active mode
func (m *Model) confirmPicker() {
	choice, ok := m.picker.selected()
	if !ok {
		return
	}

	switch m.mode {
	case ModeTemplatePicker:
		m.replaceDocument(template.Instantiate(choice))
		m.statusMsg = "Created " + choice + " document"
		m.mode = ModeCanvas

	case ModeFilePicker:
		doc, err := docfile.Load(filepath.Join(config.ExportsDir, choice))
		if err != nil {
			// The live document, selection and history stay untouched
			// when an import fails.
			m.errorMsg = err.Error()
			m.mode = ModeCanvas
			return
		}
		m.replaceDocument(doc)
		m.statusMsg = "Loaded " + choice
		m.mode = ModeCanvas

	case ModeAddElement:
		if m.engine.AddElement(types.ElementType(choice), m.currentPageIndex()) {
			elements := m.engine.Document().Pages[m.currentPageIndex()].Elements
			m.sess.SelectElement(elements[len(elements)-1].ID)
			m.mutated()
			m.statusMsg = "Added " + choice
		}
		m.mode = ModeCanvas
	}
}
