package template

import (
	"time"

	"github.com/studiowebux/doccli/internal/types"
)

// Template names, matching the backend's generator set
const (
	Blank        = "blank"
	Report       = "report"
	Worksheet    = "worksheet"
	Announcement = "announcement"
)

// Names lists every available template in display order
func Names() []string {
	return []string{Blank, Report, Worksheet, Announcement}
}

// Instantiate returns a fresh document for the named template, with
// newly minted page and element ids. Unknown names yield a blank
// document.
func Instantiate(name string) *types.Document {
	doc := types.NewDocument("")
	doc.Template = name
	doc.Metadata.Date = time.Now().Format("2006-01-02")

	switch name {
	case Report:
		doc.Metadata.Title = "Report"
		doc.Pages[0].Elements = []types.Element{
			element(types.ElementHeading, types.Content{Text: "Report Title", Level: 1}),
			element(types.ElementParagraph, types.Content{Text: "Summary of findings."}),
			element(types.ElementHeading, types.Content{Text: "Introduction", Level: 2}),
			element(types.ElementParagraph, types.Content{}),
			element(types.ElementHeading, types.Content{Text: "Results", Level: 2}),
			element(types.ElementTable, types.DefaultContent(types.ElementTable)),
		}
	case Worksheet:
		doc.Metadata.Title = "Worksheet"
		doc.Pages[0].Elements = []types.Element{
			element(types.ElementHeading, types.Content{Text: "Worksheet", Level: 1}),
			element(types.ElementParagraph, types.Content{Text: "Name:            Date:"}),
			element(types.ElementDivider, types.DefaultContent(types.ElementDivider)),
			element(types.ElementList, types.Content{Style: "numbered", Items: []string{"Question 1", "Question 2", "Question 3"}}),
		}
	case Announcement:
		doc.Metadata.Title = "Announcement"
		doc.Pages[0].Elements = []types.Element{
			element(types.ElementHeading, types.Content{Text: "Announcement", Level: 1}),
			element(types.ElementParagraph, types.Content{}),
			element(types.ElementDivider, types.DefaultContent(types.ElementDivider)),
			element(types.ElementQuote, types.Content{Text: "Details follow."}),
		}
	default:
		doc.Template = Blank
	}

	return doc
}

func element(typ types.ElementType, content types.Content) types.Element {
	return types.Element{ID: types.NewID(), Type: typ, Content: content}
}
