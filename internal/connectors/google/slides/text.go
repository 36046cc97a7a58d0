package slides

import (
	"strings"

	"google.golang.org/api/slides/v1"

	"github.com/custodia-labs/gwcli/internal/core/domain"
)

func toPresentation(p *slides.Presentation) *domain.Presentation {
	out := &domain.Presentation{
		ID:     p.PresentationId,
		Title:  p.Title,
		Locale: p.Locale,
		Slides: make([]domain.Slide, 0, len(p.Slides)),
	}
	for i, page := range p.Slides {
		if page == nil {
			continue
		}
		out.Slides = append(out.Slides, domain.Slide{
			ID:    page.ObjectId,
			Index: i,
			Texts: elementTexts(nil, page.PageElements),
		})
	}
	return out
}

// elementTexts collects the text of shapes and table cells, descending
// into groups. Empty texts are dropped.
func elementTexts(dst []string, elements []*slides.PageElement) []string {
	for _, el := range elements {
		switch {
		case el == nil:
		case el.Shape != nil:
			dst = appendText(dst, el.Shape.Text)
		case el.Table != nil:
			for _, row := range el.Table.TableRows {
				for _, cell := range row.TableCells {
					dst = appendText(dst, cell.Text)
				}
			}
		case el.ElementGroup != nil:
			dst = elementTexts(dst, el.ElementGroup.Children)
		}
	}
	return dst
}

func appendText(dst []string, text *slides.TextContent) []string {
	if text == nil {
		return dst
	}
	var b strings.Builder
	for _, te := range text.TextElements {
		if te != nil && te.TextRun != nil {
			b.WriteString(te.TextRun.Content)
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		dst = append(dst, s)
	}
	return dst
}
