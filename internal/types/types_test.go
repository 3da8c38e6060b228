package types

import (
	"bytes"
	"testing"
)

func TestNewDocumentHasOnePage(t *testing.T) {
	doc := NewDocument("Fresh")

	if len(doc.Pages) != 1 {
		t.Fatalf("Expected 1 page, got %d", len(doc.Pages))
	}
	if doc.Pages[0].ID == "" {
		t.Error("Page should have a minted id")
	}
	if doc.Metadata.Title != "Fresh" {
		t.Errorf("Title = %q", doc.Metadata.Title)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	doc := NewDocument("Round Trip")
	doc.Pages[0].Elements = []Element{
		{ID: NewID(), Type: ElementTable, Content: DefaultContent(ElementTable)},
	}

	data, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	again, _ := decoded.Encode()
	if !bytes.Equal(data, again) {
		t.Error("Encode must be stable across a decode round trip")
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := NewDocument("Original")
	doc.Pages[0].Elements = []Element{
		{ID: NewID(), Type: ElementList, Content: Content{Style: "bullet", Items: []string{"a"}}},
	}

	clone := doc.Clone()
	clone.Metadata.Title = "Changed"
	clone.Pages[0].Elements[0].Content.Items[0] = "changed"

	if doc.Metadata.Title != "Original" {
		t.Error("Clone must not share metadata")
	}
	if doc.Pages[0].Elements[0].Content.Items[0] != "a" {
		t.Error("Clone must not share element payloads")
	}
}

func TestCloneContentIsDeep(t *testing.T) {
	src := Content{
		Items:   []string{"a"},
		Headers: []string{"h"},
		Rows:    [][]string{{"r"}},
	}

	clone := CloneContent(src)
	clone.Items[0] = "x"
	clone.Headers[0] = "x"
	clone.Rows[0][0] = "x"

	if src.Items[0] != "a" || src.Headers[0] != "h" || src.Rows[0][0] != "r" {
		t.Error("CloneContent must copy all nested slices")
	}
}

func TestDefaultContent(t *testing.T) {
	if c := DefaultContent(ElementHeading); c.Level != 1 {
		t.Errorf("Heading default level = %d, want 1", c.Level)
	}
	if c := DefaultContent(ElementList); c.Style != "bullet" || len(c.Items) != 1 {
		t.Errorf("List default = %+v", c)
	}
	if c := DefaultContent(ElementTable); len(c.Headers) != 2 || len(c.Rows) != 1 {
		t.Errorf("Table default = %+v", c)
	}
	if c := DefaultContent(ElementMath); !c.DisplayMode {
		t.Error("Math defaults to display mode")
	}
	if c := DefaultContent(ElementDiagram); c.DiagramType != "flowchart" {
		t.Errorf("Diagram default type = %q, want flowchart", c.DiagramType)
	}
	if c := DefaultContent(ElementChemistry); !c.DisplayMode {
		t.Error("Chemistry defaults to display mode")
	}
	if c := DefaultContent(ElementChart); c.ChartType != "line" {
		t.Errorf("Chart default type = %q, want line", c.ChartType)
	}
}

func TestStyleRoundTrip(t *testing.T) {
	doc := NewDocument("Styled")
	doc.Pages[0].Elements = []Element{
		{
			ID:      NewID(),
			Type:    ElementParagraph,
			Content: Content{Text: "centered"},
			Style:   &Style{TextAlign: "center", Bold: true, TextColor: "#336699"},
		},
		{ID: NewID(), Type: ElementParagraph, Content: Content{Text: "plain"}},
	}

	data, err := doc.Encode()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}

	styled := decoded.Pages[0].Elements[0].Style
	if styled == nil || styled.TextAlign != "center" || !styled.Bold || styled.TextColor != "#336699" {
		t.Errorf("Style must survive serialization, got %+v", styled)
	}
	if decoded.Pages[0].Elements[1].Style != nil {
		t.Error("An element without a style stays style-free")
	}
}

func TestStyleClone(t *testing.T) {
	var none *Style
	if none.Clone() != nil {
		t.Error("Cloning a nil style stays nil")
	}

	orig := &Style{FontSize: 14, Italic: true}
	clone := orig.Clone()
	clone.FontSize = 20
	if orig.FontSize != 14 {
		t.Error("Clone must not share state with the original")
	}
}

func TestFindElement(t *testing.T) {
	doc := NewDocument("Find")
	doc.Pages = append(doc.Pages, Page{ID: NewID()})
	target := Element{ID: NewID(), Type: ElementQuote}
	doc.Pages[1].Elements = []Element{target}

	pi, ei, ok := doc.FindElement(target.ID)
	if !ok {
		t.Fatal("Element should be found")
	}
	if pi != 1 || ei != 0 {
		t.Errorf("Found at (%d,%d), want (1,0)", pi, ei)
	}

	if _, _, ok := doc.FindElement("missing"); ok {
		t.Error("Unknown id must not be found")
	}
}

func TestIsValidElementType(t *testing.T) {
	for _, typ := range ElementTypes {
		if !IsValidElementType(typ) {
			t.Errorf("%s should be valid", typ)
		}
	}
	if IsValidElementType("hologram") {
		t.Error("Unknown type should be invalid")
	}
}
