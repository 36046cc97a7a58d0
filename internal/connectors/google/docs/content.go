package docs

import (
	"strings"

	"google.golang.org/api/docs/v1"

	"github.com/custodia-labs/gwcli/internal/core/domain"
)

// headingLevels maps named paragraph styles to heading levels.
var headingLevels = map[string]int{
	"TITLE":     1,
	"HEADING_1": 1,
	"HEADING_2": 2,
	"HEADING_3": 3,
	"HEADING_4": 4,
	"HEADING_5": 5,
	"HEADING_6": 6,
}

// toDocument flattens the document body into paragraphs. Table cells are
// read row by row.
func toDocument(doc *docs.Document) *domain.DocsDocument {
	out := &domain.DocsDocument{
		ID:         doc.DocumentId,
		Title:      doc.Title,
		RevisionID: doc.RevisionId,
		Paragraphs: []domain.DocsParagraph{},
	}
	if doc.Body != nil {
		out.Paragraphs = appendParagraphs(out.Paragraphs, doc.Body.Content)
	}
	return out
}

func appendParagraphs(dst []domain.DocsParagraph, content []*docs.StructuralElement) []domain.DocsParagraph {
	for _, el := range content {
		switch {
		case el == nil:
		case el.Paragraph != nil:
			dst = append(dst, toParagraph(el.Paragraph))
		case el.Table != nil:
			for _, row := range el.Table.TableRows {
				for _, cell := range row.TableCells {
					dst = appendParagraphs(dst, cell.Content)
				}
			}
		}
	}
	return dst
}

func toParagraph(p *docs.Paragraph) domain.DocsParagraph {
	var b strings.Builder
	for _, el := range p.Elements {
		if el != nil && el.TextRun != nil {
			b.WriteString(el.TextRun.Content)
		}
	}

	para := domain.DocsParagraph{
		Text:   strings.TrimRight(b.String(), "\n"),
		Bullet: p.Bullet != nil,
	}
	if p.ParagraphStyle != nil {
		para.Level = headingLevels[p.ParagraphStyle.NamedStyleType]
	}
	return para
}

// ToMarkdown renders a document as Markdown. Headings become #-prefixed
// lines and bulleted paragraphs become list items.
func ToMarkdown(doc domain.DocsDocument) string {
	var b strings.Builder
	inList := false
	for _, p := range doc.Paragraphs {
		if p.Text == "" {
			continue
		}
		switch {
		case p.Level > 0:
			if inList {
				b.WriteString("\n")
			}
			b.WriteString(strings.Repeat("#", p.Level) + " " + p.Text + "\n\n")
			inList = false
		case p.Bullet:
			b.WriteString("- " + p.Text + "\n")
			inList = true
		default:
			if inList {
				b.WriteString("\n")
			}
			b.WriteString(p.Text + "\n\n")
			inList = false
		}
	}
	out := strings.TrimRight(b.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}
