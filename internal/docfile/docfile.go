package docfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/tidwall/jsonc"

	"github.com/studiowebux/doccli/internal/types"
)

// DefaultBaseName is used when the document title yields no usable filename
const DefaultBaseName = "document"

// MalformedImportError wraps any failure to parse or validate an
// imported file. The live document must not be touched when it occurs.
type MalformedImportError struct {
	Path string
	Err  error
}

// Error formats the import failure
func (e *MalformedImportError) Error() string {
	return fmt.Sprintf("cannot import %s: %v", filepath.Base(e.Path), e.Err)
}

// Unwrap exposes the underlying cause
func (e *MalformedImportError) Unwrap() error {
	return e.Err
}

// Filename derives a download filename from the document title,
// falling back to the default name when the title is empty
func Filename(doc *types.Document) string {
	return slug(doc.Metadata.Title) + ".json"
}

// slug turns a title into a safe file base name
func slug(title string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return DefaultBaseName
	}
	return b.String()
}

// Save writes the document as pretty-printed JSON into dir, named from
// the title. Returns the path written.
func Save(doc *types.Document, dir string) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	path := filepath.Join(dir, Filename(doc))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write document file: %w", err)
	}

	return path, nil
}

// Load reads and validates a document file. Comments and trailing
// commas are tolerated (JSONC). Any parse or validation failure comes
// back as a MalformedImportError with no side effects.
func Load(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &MalformedImportError{Path: path, Err: err}
	}

	doc, err := types.Decode(jsonc.ToJSON(data))
	if err != nil {
		return nil, &MalformedImportError{Path: path, Err: err}
	}

	if err := Validate(doc); err != nil {
		return nil, &MalformedImportError{Path: path, Err: err}
	}

	return doc, nil
}

// Validate checks the structural invariants an imported document must
// hold before it may replace the live one
func Validate(doc *types.Document) error {
	if err := validation.Validate(doc.Pages, validation.Required.Error("document has no pages")); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for pi, page := range doc.Pages {
		if err := validation.Validate(page.ID, validation.Required.Error("page is missing an id")); err != nil {
			return fmt.Errorf("page %d: %w", pi, err)
		}
		for ei, el := range page.Elements {
			err := validation.ValidateStruct(&el,
				validation.Field(&el.ID, validation.Required.Error("element is missing an id")),
				validation.Field(&el.Type, validation.Required, validation.By(validElementType)),
			)
			if err != nil {
				return fmt.Errorf("page %d element %d: %w", pi, ei, err)
			}
			if seen[el.ID] {
				return fmt.Errorf("page %d element %d: duplicate element id %s", pi, ei, el.ID)
			}
			seen[el.ID] = true
		}
	}

	return nil
}

func validElementType(value interface{}) error {
	typ, _ := value.(types.ElementType)
	if !types.IsValidElementType(typ) {
		return fmt.Errorf("unknown element type %q", typ)
	}
	return nil
}
