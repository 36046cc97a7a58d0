package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDriveFile_IsFolder(t *testing.T) {
	assert.True(t, DriveFile{MimeType: MimeTypeFolder}.IsFolder())
	assert.False(t, DriveFile{MimeType: "text/plain"}.IsFolder())
}

func TestDriveFile_IsGoogleNative(t *testing.T) {
	assert.True(t, DriveFile{MimeType: MimeTypeGoogleDoc}.IsGoogleNative())
	assert.True(t, DriveFile{MimeType: MimeTypeGoogleSheet}.IsGoogleNative())
	assert.True(t, DriveFile{MimeType: MimeTypeGoogleSlides}.IsGoogleNative())
	assert.False(t, DriveFile{MimeType: MimeTypeFolder}.IsGoogleNative())
	assert.False(t, DriveFile{MimeType: "application/pdf"}.IsGoogleNative())
}

func TestDocsDocument_TextAndHeadings(t *testing.T) {
	doc := DocsDocument{
		Title: "Plan",
		Paragraphs: []DocsParagraph{
			{Level: 1, Text: "Overview"},
			{Text: "First line"},
			{Bullet: true, Text: "a point"},
			{Level: 2, Text: "Details"},
		},
	}

	assert.Equal(t, "Overview\nFirst line\na point\nDetails", doc.Text())
	assert.Equal(t, []DocsHeading{{Level: 1, Text: "Overview"}, {Level: 2, Text: "Details"}}, doc.Headings())
}

func TestDocsDocument_Empty(t *testing.T) {
	doc := DocsDocument{}
	assert.Equal(t, "", doc.Text())
	assert.Nil(t, doc.Headings())
}
