package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/studiowebux/doccli/internal/config"
	"github.com/studiowebux/doccli/internal/docfile"
	"github.com/studiowebux/doccli/internal/generator"
	"github.com/studiowebux/doccli/internal/storage"
	"github.com/studiowebux/doccli/internal/template"
	"github.com/studiowebux/doccli/internal/tui"
	"github.com/studiowebux/doccli/internal/types"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "doccli",
	Short: "doccli - terminal document editor with PDF export",
	Long: `doccli is a terminal document editor. Documents are pages of typed
elements (headings, paragraphs, lists, tables, math, code, ...) rendered
to PDF by a remote generation backend.

Run without arguments to start the editor. The last autosaved document
is restored automatically.

Examples:
  doccli                         # Start the editor
  doccli export report.json      # Render a saved document to PDF
  doccli export --latex report.json  # Inspect the LaTeX source instead
  doccli templates               # List available templates`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return runTUI()
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file.json>",
	Short: "Render a saved document to PDF without the editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		if flagLatex {
			return runLatexPreview(args[0])
		}
		return runExport(args[0])
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available document templates",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range template.Names() {
			fmt.Println(name)
		}
	},
}

var (
	flagOutput string
	flagLatex  bool
)

func init() {
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output PDF path (default: derived from the document title)")
	exportCmd.Flags().BoolVar(&flagLatex, "latex", false, "print the LaTeX source the backend would compile instead of rendering a PDF")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTUI() error {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
	}

	// A broken store is not fatal: the session continues in memory
	// without autosave.
	store, err := storage.Open(config.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: autosave unavailable: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	doc := restoreDocument(store)

	model := tui.New(doc, store, settings)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run editor: %w", err)
	}

	return nil
}

// restoreDocument returns the autosaved document when one exists,
// otherwise a blank one. A corrupt autosave loads as "none".
func restoreDocument(store *storage.Store) *types.Document {
	if store != nil {
		if doc, err := store.Load(storage.AutosaveKey); err == nil && doc != nil {
			return doc
		}
	}
	return template.Instantiate(template.Blank)
}

func runExport(path string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
	}

	doc, err := docfile.Load(path)
	if err != nil {
		return err
	}

	client := generator.NewClient(settings.BackendURL)
	client.SetTimeouts(
		time.Duration(settings.WarmupTimeoutSeconds)*time.Second,
		time.Duration(settings.ExportTimeoutSeconds)*time.Second,
	)

	// Best effort: a failed warmup just means the export absorbs the
	// cold start itself.
	_ = client.Warmup(context.Background())

	fmt.Println("Generating PDF...")
	artifact, err := client.Export(context.Background(), doc)
	if err != nil {
		return err
	}

	output := flagOutput
	if output == "" {
		output = artifact.Filename
	}
	if output == "" {
		output = strings.TrimSuffix(docfile.Filename(doc), ".json") + ".pdf"
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(output, artifact.Data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", output, len(artifact.Data))
	return nil
}

// runLatexPreview fetches the document's LaTeX source from the backend
// and prints it, or writes it to -o when given
func runLatexPreview(path string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
	}

	doc, err := docfile.Load(path)
	if err != nil {
		return err
	}

	client := generator.NewClient(settings.BackendURL)
	client.SetTimeouts(
		time.Duration(settings.WarmupTimeoutSeconds)*time.Second,
		time.Duration(settings.ExportTimeoutSeconds)*time.Second,
	)
	_ = client.Warmup(context.Background())

	source, err := client.LaTeXPreview(context.Background(), doc)
	if err != nil {
		return err
	}

	if flagOutput == "" {
		fmt.Println(source)
		return nil
	}
	if err := os.WriteFile(flagOutput, []byte(source), config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write LaTeX source: %w", err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", flagOutput, len(source))
	return nil
}
