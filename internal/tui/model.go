package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/doccli/internal/autosave"
	"github.com/studiowebux/doccli/internal/config"
	"github.com/studiowebux/doccli/internal/document"
	"github.com/studiowebux/doccli/internal/generator"
	"github.com/studiowebux/doccli/internal/history"
	"github.com/studiowebux/doccli/internal/keybinds"
	"github.com/studiowebux/doccli/internal/session"
	"github.com/studiowebux/doccli/internal/storage"
	"github.com/studiowebux/doccli/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeCanvas Mode = iota
	ModeEditElement
	ModeAddElement
	ModeTemplatePicker
	ModeFilePicker
	ModeMetadata
	ModeHelp
	ModeDeletePageConfirm
)

// Model represents the TUI state
type Model struct {
	// Core state
	engine     *history.Engine
	sess       *session.State
	client     *generator.Client
	store      *storage.Store
	scheduler  *autosave.Scheduler
	dispatcher *keybinds.Dispatcher
	registry   *keybinds.Registry
	settings   config.Settings

	mode Mode

	// Autosave loop lifecycle
	autosaveCancel context.CancelFunc

	// Element editing
	editArea   textarea.Model
	editTarget string // element id being edited

	// Metadata form
	metaInputs [3]textinput.Model // title, author, date
	metaFocus  int

	// Picker state (templates and files)
	picker pickerState

	// UI state
	width     int
	height    int
	statusMsg string
	errorMsg  string

	quitting bool
}

// New creates the TUI model around an initial document
func New(doc *types.Document, store *storage.Store, settings config.Settings) *Model {
	engine := history.NewEngineDepth(document.NewStore(doc), settings.HistoryDepth)

	client := generator.NewClient(settings.BackendURL)
	client.SetTimeouts(
		time.Duration(settings.WarmupTimeoutSeconds)*time.Second,
		time.Duration(settings.ExportTimeoutSeconds)*time.Second,
	)

	m := &Model{
		engine:   engine,
		sess:     session.NewState(),
		client:   client,
		store:    store,
		settings: settings,
		registry: keybinds.NewDefaultRegistry(),
	}

	// The dispatcher reads the mode through this accessor on every key
	// event, so bindings never act on stale focus state.
	m.dispatcher = keybinds.NewDispatcher(m.registry, m.bindContext)

	if store != nil {
		m.scheduler = autosave.NewScheduler(store, storage.AutosaveKey, time.Duration(settings.AutosaveIntervalSeconds)*time.Second)
	}

	m.editArea = textarea.New()
	m.editArea.ShowLineNumbers = false

	labels := [3]string{"Title", "Author", "Date"}
	for i := range m.metaInputs {
		m.metaInputs[i] = textinput.New()
		m.metaInputs[i].Prompt = labels[i] + ": "
	}

	return m
}

// bindContext maps the current mode to a keybinding context
func (m *Model) bindContext() keybinds.Context {
	switch m.mode {
	case ModeEditElement, ModeMetadata:
		return keybinds.ContextTextInput
	case ModeTemplatePicker, ModeFilePicker, ModeAddElement:
		return keybinds.ContextPicker
	default:
		return keybinds.ContextCanvas
	}
}

// snapshot serializes the current document on the update goroutine.
// The scheduler only ever sees these frozen bytes, never the live
// document, so its save loop cannot race an in-flight mutation.
func (m *Model) snapshot() []byte {
	data, err := m.engine.Document().Encode()
	if err != nil {
		return nil
	}
	return data
}

// Init starts the autosave loop and fires the backend warmup probe
func (m *Model) Init() tea.Cmd {
	if m.scheduler != nil {
		m.scheduler.Update(m.snapshot())
		ctx, cancel := context.WithCancel(context.Background())
		m.autosaveCancel = cancel
		go m.scheduler.Run(ctx)
	}
	return warmupCmd(m.client)
}

// Cleanup releases scoped resources on teardown. The autosave loop is
// cancelled unconditionally so no write can race a torn-down session.
func (m *Model) Cleanup() {
	if m.autosaveCancel != nil {
		m.autosaveCancel()
		m.autosaveCancel = nil
	}
	if m.scheduler != nil {
		m.scheduler.Flush()
	}
}

// Update handles all incoming messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editArea.SetWidth(msg.Width - 8)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case warmupDoneMsg:
		// Warmup failure is swallowed: the export call has its own
		// timeout and retry path.
		return m, nil

	case exportDoneMsg:
		m.sess.EndGeneration()
		if msg.err != nil {
			m.errorMsg = describeExportError(msg.err)
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("PDF saved to %s", msg.path)
		return m, nil

	case fileSavedMsg:
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Save failed: %v", msg.err)
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Document saved to %s", msg.path)
		return m, nil
	}

	return m, nil
}

// mutated records a document change: hand the new serialization to
// autosave and clear the stale status line
func (m *Model) mutated() {
	if m.scheduler != nil {
		m.scheduler.Update(m.snapshot())
	}
	m.errorMsg = ""
}

// replaceDocument installs a new document (load or template), clearing
// history and selection
func (m *Model) replaceDocument(doc *types.Document) {
	m.engine.Reset(doc)
	m.sess.SetCurrentPage(0)
	if m.scheduler != nil {
		m.scheduler.ResetBaseline()
		m.scheduler.Update(m.snapshot())
	}
}

// currentPageIndex returns the viewed page clamped to the document
func (m *Model) currentPageIndex() int {
	idx := m.sess.CurrentPage()
	if last := len(m.engine.Document().Pages) - 1; idx > last {
		idx = last
	}
	return idx
}
