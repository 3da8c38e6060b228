package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/doccli/internal/config"
	"github.com/studiowebux/doccli/internal/docfile"
	"github.com/studiowebux/doccli/internal/generator"
	"github.com/studiowebux/doccli/internal/types"
)

type warmupDoneMsg struct{}

type exportDoneMsg struct {
	path string
	err  error
}

type fileSavedMsg struct {
	path string
	err  error
}

// warmupCmd fires the best-effort backend warmup probe. The outcome is
// ignored; a cold backend will simply make the first export slower.
func warmupCmd(client *generator.Client) tea.Cmd {
	return func() tea.Msg {
		_ = client.Warmup(context.Background())
		return warmupDoneMsg{}
	}
}

// exportCmd runs a PDF export against the snapshot taken at invocation
// time and writes the artifact into the exports directory
func exportCmd(client *generator.Client, doc *types.Document) tea.Cmd {
	return func() tea.Msg {
		artifact, err := client.Export(context.Background(), doc)
		if err != nil {
			return exportDoneMsg{err: err}
		}

		name := artifact.Filename
		if name == "" {
			name = strings.TrimSuffix(docfile.Filename(doc), ".json") + ".pdf"
		}
		path := filepath.Join(config.ExportsDir, name)
		if err := os.WriteFile(path, artifact.Data, config.FilePermissions); err != nil {
			return exportDoneMsg{err: fmt.Errorf("failed to write PDF: %w", err)}
		}

		return exportDoneMsg{path: path}
	}
}

// saveFileCmd serializes the document to a JSON artifact named from
// its title
func saveFileCmd(doc *types.Document) tea.Cmd {
	return func() tea.Msg {
		path, err := docfile.Save(doc, config.ExportsDir)
		return fileSavedMsg{path: path, err: err}
	}
}

// describeExportError turns a classified export failure into a status
// line message, keeping backend detail when the backend provided any
func describeExportError(err error) string {
	var backendErr *generator.BackendError
	if errors.As(err, &backendErr) {
		if backendErr.Detail != "" {
			return fmt.Sprintf("Export rejected: %s (%s)", backendErr.Message, backendErr.Detail)
		}
		return fmt.Sprintf("Export rejected: %s", backendErr.Message)
	}
	if errors.Is(err, generator.ErrBackendUnreachable) {
		return "Export failed: backend unreachable or timed out, try again"
	}
	return fmt.Sprintf("Export failed: %v", err)
}
