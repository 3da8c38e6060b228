package template

import (
	"testing"

	"github.com/studiowebux/doccli/internal/docfile"
)

func TestInstantiateEveryTemplate(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			doc := Instantiate(name)

			if doc.Template != name {
				t.Errorf("Template = %q, want %q", doc.Template, name)
			}
			if len(doc.Pages) != 1 {
				t.Fatalf("Expected 1 page, got %d", len(doc.Pages))
			}
			if err := docfile.Validate(doc); err != nil {
				t.Errorf("Instantiated template must validate: %v", err)
			}
		})
	}
}

func TestInstantiateMintsFreshIDs(t *testing.T) {
	a := Instantiate(Report)
	b := Instantiate(Report)

	if a.Pages[0].ID == b.Pages[0].ID {
		t.Error("Each instantiation must mint fresh page ids")
	}
	if a.Pages[0].Elements[0].ID == b.Pages[0].Elements[0].ID {
		t.Error("Each instantiation must mint fresh element ids")
	}
}

func TestInstantiateUnknownFallsBackToBlank(t *testing.T) {
	doc := Instantiate("no-such-template")

	if doc.Template != Blank {
		t.Errorf("Unknown template should yield blank, got %q", doc.Template)
	}
	if len(doc.Pages[0].Elements) != 0 {
		t.Error("Blank template starts with an empty page")
	}
}
