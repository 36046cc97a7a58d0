package domain

import "time"

// Google Workspace MIME types.
const (
	MimeTypeGoogleDoc    = "application/vnd.google-apps.document"
	MimeTypeGoogleSheet  = "application/vnd.google-apps.spreadsheet"
	MimeTypeGoogleSlides = "application/vnd.google-apps.presentation"
	MimeTypeFolder       = "application/vnd.google-apps.folder"
)

// DriveFile is a file or folder in Google Drive.
type DriveFile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size,omitempty"`
	ModifiedTime time.Time `json:"modifiedTime,omitempty"`
	WebViewLink  string    `json:"webViewLink,omitempty"`
	Parents      []string  `json:"parents,omitempty"`
}

// IsFolder returns true if the file is a Drive folder.
func (f DriveFile) IsFolder() bool {
	return f.MimeType == MimeTypeFolder
}

// IsGoogleNative returns true for Docs, Sheets and Slides files, which
// have no binary content and must be exported.
func (f DriveFile) IsGoogleNative() bool {
	switch f.MimeType {
	case MimeTypeGoogleDoc, MimeTypeGoogleSheet, MimeTypeGoogleSlides:
		return true
	default:
		return false
	}
}

// DriveListOptions filters a Drive listing.
type DriveListOptions struct {
	// Query is a raw Drive search query (q parameter).
	Query string
	// FolderID restricts the listing to children of a folder.
	FolderID string
	// PageSize caps the number of results. Zero uses the service default.
	PageSize int64
	// PageToken continues a previous listing.
	PageToken string
}

// DriveFileList is one page of a Drive listing.
type DriveFileList struct {
	Files         []DriveFile `json:"files"`
	NextPageToken string      `json:"nextPageToken,omitempty"`
}

// DocsHeading is a heading paragraph in a document.
type DocsHeading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// DocsParagraph is one paragraph of a document body.
// Level is 1-6 for headings and 0 for normal text.
type DocsParagraph struct {
	Level  int    `json:"level,omitempty"`
	Bullet bool   `json:"bullet,omitempty"`
	Text   string `json:"text"`
}

// DocsDocument is a Google Docs document reduced to its text.
type DocsDocument struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	RevisionID string          `json:"revisionId,omitempty"`
	Paragraphs []DocsParagraph `json:"paragraphs"`
}

// Text returns the plain-text body with one paragraph per line.
func (d DocsDocument) Text() string {
	var b []byte
	for i, p := range d.Paragraphs {
		if i > 0 {
			b = append(b, '\n')
		}
		b = append(b, p.Text...)
	}
	return string(b)
}

// Headings returns the heading paragraphs in document order.
func (d DocsDocument) Headings() []DocsHeading {
	var headings []DocsHeading
	for _, p := range d.Paragraphs {
		if p.Level > 0 {
			headings = append(headings, DocsHeading{Level: p.Level, Text: p.Text})
		}
	}
	return headings
}

// SheetInfo describes one worksheet of a spreadsheet.
type SheetInfo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Index       int64  `json:"index"`
	RowCount    int64  `json:"rowCount"`
	ColumnCount int64  `json:"columnCount"`
}

// Spreadsheet is a Google Sheets spreadsheet's metadata.
type Spreadsheet struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	URL    string      `json:"url,omitempty"`
	Locale string      `json:"locale,omitempty"`
	Sheets []SheetInfo `json:"sheets"`
}

// ValueRange is a rectangular block of cell values, rendered as strings.
type ValueRange struct {
	Range string     `json:"range"`
	Rows  [][]string `json:"rows"`
}

// UpdateResult summarises a write to a spreadsheet.
type UpdateResult struct {
	Range          string `json:"range"`
	UpdatedRows    int64  `json:"updatedRows"`
	UpdatedColumns int64  `json:"updatedColumns"`
	UpdatedCells   int64  `json:"updatedCells"`
}

// Slide is one page of a presentation.
type Slide struct {
	ID    string   `json:"id"`
	Index int      `json:"index"`
	Texts []string `json:"texts,omitempty"`
}

// Presentation is a Google Slides presentation reduced to its text.
type Presentation struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Locale string  `json:"locale,omitempty"`
	Slides []Slide `json:"slides"`
}
