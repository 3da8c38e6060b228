package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ElementType identifies the kind of content an element holds
type ElementType string

const (
	ElementHeading   ElementType = "heading"
	ElementParagraph ElementType = "paragraph"
	ElementMath      ElementType = "math"
	ElementList      ElementType = "list"
	ElementTable     ElementType = "table"
	ElementImage     ElementType = "image"
	ElementDivider   ElementType = "divider"
	ElementCode      ElementType = "code"
	ElementQuote     ElementType = "quote"
	ElementCircuit   ElementType = "circuit"
	ElementDiagram   ElementType = "diagram"
	ElementChemistry ElementType = "chemistry"
	ElementChart     ElementType = "chart"
)

// ElementTypes lists every valid element type
var ElementTypes = []ElementType{
	ElementHeading,
	ElementParagraph,
	ElementMath,
	ElementList,
	ElementTable,
	ElementImage,
	ElementDivider,
	ElementCode,
	ElementQuote,
	ElementCircuit,
	ElementDiagram,
	ElementChemistry,
	ElementChart,
}

// IsValidElementType reports whether t is a known element type
func IsValidElementType(t ElementType) bool {
	for _, known := range ElementTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Content holds the type-specific payload of an element.
// Only the fields relevant to the element's type are populated;
// unused fields stay at their zero value and are omitted from JSON.
type Content struct {
	// heading, paragraph, quote
	Text  string `json:"text,omitempty"`
	Level int    `json:"level,omitempty"` // heading level 1-3

	// math
	Latex       string `json:"latex,omitempty"`
	DisplayMode bool   `json:"displayMode,omitempty"`

	// list
	Style string   `json:"style,omitempty"` // bullet or numbered
	Items []string `json:"items,omitempty"`

	// table
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`

	// image
	URL   string `json:"url,omitempty"`
	Width int    `json:"width,omitempty"`

	// code; circuit, diagram and chart reuse Code for their sources
	Language string `json:"language,omitempty"`
	Code     string `json:"code,omitempty"`

	// quote
	Attribution string `json:"attribution,omitempty"`

	// chemistry
	Formula string `json:"formula,omitempty"`

	// diagram
	DiagramType string `json:"diagramType,omitempty"` // flowchart, sequence, block, state, tree, custom

	// chart
	ChartType string `json:"chartType,omitempty"` // line, bar, scatter, histogram

	// circuit, diagram, chart
	Preset string `json:"preset,omitempty"`

	// table, image, math, divider, circuit, diagram, chemistry, chart
	Caption string `json:"caption,omitempty"`
}

// DefaultContent returns the default payload for a new element of the given type
func DefaultContent(t ElementType) Content {
	switch t {
	case ElementHeading:
		return Content{Text: "", Level: 1}
	case ElementList:
		return Content{Style: "bullet", Items: []string{""}}
	case ElementTable:
		return Content{
			Headers: []string{"Column 1", "Column 2"},
			Rows:    [][]string{{"", ""}},
		}
	case ElementMath:
		return Content{DisplayMode: true}
	case ElementDivider:
		return Content{Style: "solid"}
	case ElementDiagram:
		return Content{DiagramType: "flowchart"}
	case ElementChemistry:
		return Content{DisplayMode: true}
	case ElementChart:
		return Content{ChartType: "line"}
	default:
		return Content{}
	}
}

// Style holds per-element visual overrides. Every field is optional;
// a zero value means the renderer's default applies. The editor does
// not surface these yet, but backend-produced documents carry them and
// they must survive an import/export round trip.
type Style struct {
	TextAlign       string `json:"textAlign,omitempty"`
	FontSize        int    `json:"fontSize,omitempty"`
	FontFamily      string `json:"fontFamily,omitempty"`
	Bold            bool   `json:"bold,omitempty"`
	Italic          bool   `json:"italic,omitempty"`
	Underline       bool   `json:"underline,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// Clone returns an independent copy of a style, nil for nil
func (s *Style) Clone() *Style {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Element is a typed content unit placed on a page
type Element struct {
	ID      string      `json:"id"`
	Type    ElementType `json:"type"`
	Content Content     `json:"content"`
	Style   *Style      `json:"style,omitempty"`
}

// Page groups an ordered sequence of elements
type Page struct {
	ID       string    `json:"id"`
	Elements []Element `json:"elements"`
}

// Metadata describes the document as a whole
type Metadata struct {
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	Date      string `json:"date,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Margins are page margins in millimeters
type Margins struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// Settings control the rendered output
type Settings struct {
	PaperSize   string  `json:"paperSize"`
	Margins     Margins `json:"margins"`
	LineSpacing float64 `json:"lineSpacing"`
	PageNumbers bool    `json:"pageNumbers"`
	TwoColumn   bool    `json:"twoColumn"`
}

// DefaultSettings returns the settings applied to new documents
func DefaultSettings() Settings {
	return Settings{
		PaperSize:   "a4",
		Margins:     Margins{Top: 25, Bottom: 25, Left: 20, Right: 20},
		LineSpacing: 1.15,
		PageNumbers: true,
	}
}

// Document is the full editable artifact
type Document struct {
	Template string   `json:"template"`
	Metadata Metadata `json:"metadata"`
	Settings Settings `json:"settings"`
	Pages    []Page   `json:"pages"`
}

// NewID mints a unique identifier for pages and elements
func NewID() string {
	return uuid.NewString()
}

// NewDocument returns a blank document with a single empty page
func NewDocument(title string) *Document {
	return &Document{
		Template: "blank",
		Metadata: Metadata{
			Title:     title,
			CreatedAt: time.Now().Format(time.RFC3339),
		},
		Settings: DefaultSettings(),
		Pages:    []Page{{ID: NewID()}},
	}
}

// Encode returns the canonical serialization of the document.
// History snapshots, autosave dedup and the export payload all use it,
// so equal documents always serialize to equal bytes.
func (d *Document) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// Decode parses a canonical serialization back into a document
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	data, err := d.Encode()
	if err != nil {
		// Document contains only JSON-serializable fields
		return &Document{}
	}
	clone, err := Decode(data)
	if err != nil {
		return &Document{}
	}
	return clone
}

// CloneContent returns a deep copy of an element payload
func CloneContent(c Content) Content {
	if c.Items != nil {
		c.Items = append([]string(nil), c.Items...)
	}
	if c.Headers != nil {
		c.Headers = append([]string(nil), c.Headers...)
	}
	if c.Rows != nil {
		rows := make([][]string, len(c.Rows))
		for i, row := range c.Rows {
			rows[i] = append([]string(nil), row...)
		}
		c.Rows = rows
	}
	return c
}

// FindElement locates an element by id anywhere in the document.
// Element ids are unique across the whole document, so a page index
// is not required.
func (d *Document) FindElement(id string) (pageIndex, elementIndex int, ok bool) {
	for pi := range d.Pages {
		for ei := range d.Pages[pi].Elements {
			if d.Pages[pi].Elements[ei].ID == id {
				return pi, ei, true
			}
		}
	}
	return 0, 0, false
}
