package document

import (
	"github.com/studiowebux/doccli/internal/types"
)

// Store owns the live document and funnels every mutation through
// named operations. Invalid indices and unknown ids are absorbed as
// no-ops so a burst of UI events can never corrupt the model.
type Store struct {
	doc *types.Document
}

// NewStore creates a store around an initial document
func NewStore(doc *types.Document) *Store {
	if doc == nil {
		doc = types.NewDocument("")
	}
	return &Store{doc: doc}
}

// Document returns the live document
func (s *Store) Document() *types.Document {
	return s.doc
}

// SetDocument replaces the live document entirely (load, template select).
// History reset is the caller's responsibility.
func (s *Store) SetDocument(doc *types.Document) {
	if doc == nil {
		return
	}
	s.doc = doc
}

// AddElement appends a new element of the given type to the page at
// pageIndex. Returns false without changes when the index is out of
// range or the type is unknown.
func (s *Store) AddElement(typ types.ElementType, pageIndex int) bool {
	if pageIndex < 0 || pageIndex >= len(s.doc.Pages) {
		return false
	}
	if !types.IsValidElementType(typ) {
		return false
	}
	el := types.Element{
		ID:      types.NewID(),
		Type:    typ,
		Content: types.DefaultContent(typ),
	}
	s.doc.Pages[pageIndex].Elements = append(s.doc.Pages[pageIndex].Elements, el)
	return true
}

// UpdateElement replaces the payload of an existing element
func (s *Store) UpdateElement(pageIndex int, elementID string, content types.Content) bool {
	idx, ok := s.elementIndex(pageIndex, elementID)
	if !ok {
		return false
	}
	s.doc.Pages[pageIndex].Elements[idx].Content = types.CloneContent(content)
	return true
}

// DeleteElement removes the element with the given id from the page
func (s *Store) DeleteElement(pageIndex int, elementID string) bool {
	idx, ok := s.elementIndex(pageIndex, elementID)
	if !ok {
		return false
	}
	elements := s.doc.Pages[pageIndex].Elements
	s.doc.Pages[pageIndex].Elements = append(elements[:idx], elements[idx+1:]...)
	return true
}

// DuplicateElement clones an element under a freshly minted id and
// inserts the copy immediately after the original
func (s *Store) DuplicateElement(pageIndex int, elementID string) bool {
	idx, ok := s.elementIndex(pageIndex, elementID)
	if !ok {
		return false
	}
	src := s.doc.Pages[pageIndex].Elements[idx]
	dup := types.Element{
		ID:      types.NewID(),
		Type:    src.Type,
		Content: types.CloneContent(src.Content),
		Style:   src.Style.Clone(),
	}
	elements := s.doc.Pages[pageIndex].Elements
	elements = append(elements, types.Element{})
	copy(elements[idx+2:], elements[idx+1:])
	elements[idx+1] = dup
	s.doc.Pages[pageIndex].Elements = elements
	return true
}

// MoveElement shifts an element up (negative delta) or down (positive
// delta) within its page, clamped to the page bounds
func (s *Store) MoveElement(pageIndex int, elementID string, delta int) bool {
	idx, ok := s.elementIndex(pageIndex, elementID)
	if !ok || delta == 0 {
		return false
	}
	elements := s.doc.Pages[pageIndex].Elements
	target := idx + delta
	if target < 0 {
		target = 0
	}
	if target > len(elements)-1 {
		target = len(elements) - 1
	}
	if target == idx {
		return false
	}
	el := elements[idx]
	elements = append(elements[:idx], elements[idx+1:]...)
	elements = append(elements, types.Element{})
	copy(elements[target+1:], elements[target:])
	elements[target] = el
	s.doc.Pages[pageIndex].Elements = elements
	return true
}

// AddPage appends a new empty page at the end of the document
func (s *Store) AddPage() bool {
	s.doc.Pages = append(s.doc.Pages, types.Page{ID: types.NewID()})
	return true
}

// DeletePage removes the page with the given id. Refuses when it is
// the only remaining page: a document always has at least one page.
func (s *Store) DeletePage(pageID string) bool {
	if len(s.doc.Pages) <= 1 {
		return false
	}
	for i := range s.doc.Pages {
		if s.doc.Pages[i].ID == pageID {
			s.doc.Pages = append(s.doc.Pages[:i], s.doc.Pages[i+1:]...)
			return true
		}
	}
	return false
}

// MetadataPatch holds optional metadata fields to merge
type MetadataPatch struct {
	Title  *string
	Author *string
	Date   *string
}

// UpdateMetadata merges the set fields of the patch into the metadata
func (s *Store) UpdateMetadata(patch MetadataPatch) bool {
	changed := false
	if patch.Title != nil && *patch.Title != s.doc.Metadata.Title {
		s.doc.Metadata.Title = *patch.Title
		changed = true
	}
	if patch.Author != nil && *patch.Author != s.doc.Metadata.Author {
		s.doc.Metadata.Author = *patch.Author
		changed = true
	}
	if patch.Date != nil && *patch.Date != s.doc.Metadata.Date {
		s.doc.Metadata.Date = *patch.Date
		changed = true
	}
	return changed
}

// SettingsPatch holds optional settings fields to merge
type SettingsPatch struct {
	PaperSize   *string
	Margins     *types.Margins
	LineSpacing *float64
	PageNumbers *bool
	TwoColumn   *bool
}

// UpdateSettings merges the set fields of the patch into the settings
func (s *Store) UpdateSettings(patch SettingsPatch) bool {
	changed := false
	if patch.PaperSize != nil && *patch.PaperSize != s.doc.Settings.PaperSize {
		s.doc.Settings.PaperSize = *patch.PaperSize
		changed = true
	}
	if patch.Margins != nil && *patch.Margins != s.doc.Settings.Margins {
		s.doc.Settings.Margins = *patch.Margins
		changed = true
	}
	if patch.LineSpacing != nil && *patch.LineSpacing != s.doc.Settings.LineSpacing {
		s.doc.Settings.LineSpacing = *patch.LineSpacing
		changed = true
	}
	if patch.PageNumbers != nil && *patch.PageNumbers != s.doc.Settings.PageNumbers {
		s.doc.Settings.PageNumbers = *patch.PageNumbers
		changed = true
	}
	if patch.TwoColumn != nil && *patch.TwoColumn != s.doc.Settings.TwoColumn {
		s.doc.Settings.TwoColumn = *patch.TwoColumn
		changed = true
	}
	return changed
}

// elementIndex resolves an element id within a page, validating the
// page index first
func (s *Store) elementIndex(pageIndex int, elementID string) (int, bool) {
	if pageIndex < 0 || pageIndex >= len(s.doc.Pages) {
		return 0, false
	}
	if elementID == "" {
		return 0, false
	}
	for i := range s.doc.Pages[pageIndex].Elements {
		if s.doc.Pages[pageIndex].Elements[i].ID == elementID {
			return i, true
		}
	}
	return 0, false
}
