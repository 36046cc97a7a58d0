package drive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gwcli/internal/connectors/google"
	"github.com/custodia-labs/gwcli/internal/connectors/google/googletest"
	"github.com/custodia-labs/gwcli/internal/core/domain"
)

var files = map[string]map[string]any{
	"doc1": {
		"id":           "doc1",
		"name":         "Plan",
		"mimeType":     domain.MimeTypeGoogleDoc,
		"modifiedTime": "2024-05-01T10:00:00.000Z",
		"webViewLink":  "https://docs.google.com/document/d/doc1/edit",
		"parents":      []string{"root"},
	},
	"doc2":    {"id": "doc2", "name": "notes.txt", "mimeType": domain.MimeTypeGoogleDoc},
	"sheet1":  {"id": "sheet1", "name": "Budget", "mimeType": domain.MimeTypeGoogleSheet},
	"slides1": {"id": "slides1", "name": "Deck", "mimeType": domain.MimeTypeGoogleSlides},
	"bin1":    {"id": "bin1", "name": "photo.jpg", "mimeType": "image/jpeg", "size": "5"},
	"folder1": {"id": "folder1", "name": "Projects", "mimeType": domain.MimeTypeFolder},
	"slash1":  {"id": "slash1", "name": "a/b.txt", "mimeType": "text/plain", "size": "3"},
}

type driveFixture struct {
	server  *googletest.Server
	svc     *Service
	queries []string
	created []map[string]any
	deleted []string
	upload  string
}

func newDriveFixture(t *testing.T) *driveFixture {
	t.Helper()
	f := &driveFixture{server: googletest.NewServer(t)}
	mux := f.server.Mux

	mux.HandleFunc("GET /files", func(w http.ResponseWriter, r *http.Request) {
		f.queries = append(f.queries, r.URL.Query().Get("q"))
		if r.URL.Query().Get("pageToken") == "page-2" {
			googletest.WriteJSON(w, http.StatusOK, map[string]any{
				"files": []any{files["folder1"]},
			})
			return
		}
		googletest.WriteJSON(w, http.StatusOK, map[string]any{
			"files":         []any{files["doc1"], files["bin1"]},
			"nextPageToken": "page-2",
		})
	})
	mux.HandleFunc("GET /files/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		meta, ok := files[id]
		if !ok {
			googletest.WriteError(w, http.StatusNotFound, "notFound", "File not found: "+id)
			return
		}
		if r.URL.Query().Get("alt") == "media" {
			_, _ = io.WriteString(w, "bytes")
			return
		}
		googletest.WriteJSON(w, http.StatusOK, meta)
	})
	mux.HandleFunc("GET /files/{id}/export", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "exported as "+r.URL.Query().Get("mimeType"))
	})
	create := func(w http.ResponseWriter, r *http.Request) {
		meta := map[string]any{}
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		if mediaType == "multipart/related" {
			reader := multipart.NewReader(r.Body, params["boundary"])
			part, err := reader.NextPart()
			require.NoError(t, err)
			require.NoError(t, json.NewDecoder(part).Decode(&meta))
			part, err = reader.NextPart()
			require.NoError(t, err)
			body, err := io.ReadAll(part)
			require.NoError(t, err)
			f.upload = string(body)
		} else {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&meta))
		}
		f.created = append(f.created, meta)
		meta["id"] = "new1"
		if _, ok := meta["mimeType"]; !ok {
			meta["mimeType"] = "text/plain"
		}
		googletest.WriteJSON(w, http.StatusOK, meta)
	}
	mux.HandleFunc("POST /files", create)
	mux.HandleFunc("POST /upload/drive/v3/files", create)
	mux.HandleFunc("DELETE /files/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if _, ok := files[id]; !ok {
			googletest.WriteError(w, http.StatusNotFound, "notFound", "File not found: "+id)
			return
		}
		f.deleted = append(f.deleted, id)
		w.WriteHeader(http.StatusNoContent)
	})

	limiter := google.NewRateLimiter(domain.RateLimit{RequestsPerSecond: 1000, Burst: 100})
	f.svc = New(googletest.NewAccounts(t), limiter, f.server.Options())
	return f
}

func TestList(t *testing.T) {
	f := newDriveFixture(t)
	ctx := context.Background()

	list, err := f.svc.List(ctx, googletest.Email, domain.DriveListOptions{})
	require.NoError(t, err)

	require.Len(t, list.Files, 2)
	assert.Equal(t, "page-2", list.NextPageToken)

	doc := list.Files[0]
	assert.Equal(t, "doc1", doc.ID)
	assert.Equal(t, "Plan", doc.Name)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), doc.ModifiedTime.UTC())
	assert.Equal(t, []string{"root"}, doc.Parents)
	assert.Zero(t, doc.Size)
	assert.Equal(t, int64(5), list.Files[1].Size)

	next, err := f.svc.List(ctx, googletest.Email, domain.DriveListOptions{PageToken: list.NextPageToken})
	require.NoError(t, err)
	require.Len(t, next.Files, 1)
	assert.True(t, next.Files[0].IsFolder())
	assert.Empty(t, next.NextPageToken)
}

func TestList_Query(t *testing.T) {
	f := newDriveFixture(t)

	_, err := f.svc.List(context.Background(), googletest.Email, domain.DriveListOptions{
		FolderID: "fold'er",
		Query:    "name contains 'plan'",
	})
	require.NoError(t, err)

	require.Len(t, f.queries, 1)
	assert.Equal(t, `trashed = false and 'fold\'er' in parents and (name contains 'plan')`, f.queries[0])
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name string
		opts domain.DriveListOptions
		want string
	}{
		{"default", domain.DriveListOptions{}, "trashed = false"},
		{"folder", domain.DriveListOptions{FolderID: "abc"}, "trashed = false and 'abc' in parents"},
		{"query", domain.DriveListOptions{Query: " starred = true "}, "trashed = false and (starred = true)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildQuery(tt.opts))
		})
	}
}

func TestGet(t *testing.T) {
	f := newDriveFixture(t)

	file, err := f.svc.Get(context.Background(), googletest.Email, "doc1")
	require.NoError(t, err)
	assert.Equal(t, "https://docs.google.com/document/d/doc1/edit", file.WebViewLink)
	assert.True(t, file.IsGoogleNative())

	_, err = f.svc.Get(context.Background(), googletest.Email, "missing")
	assert.ErrorIs(t, err, google.ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.Get(context.Background(), googletest.Email, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_UnknownAccount(t *testing.T) {
	f := newDriveFixture(t)

	_, err := f.svc.Get(context.Background(), "bob@example.com", "doc1")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestDownload(t *testing.T) {
	tests := []struct {
		id       string
		wantName string
		wantBody string
	}{
		{"doc1", "Plan.txt", "exported as text/plain"},
		{"doc2", "notes.txt", "exported as text/plain"},
		{"sheet1", "Budget.csv", "exported as text/csv"},
		{"slides1", "Deck.pdf", "exported as application/pdf"},
		{"bin1", "photo.jpg", "bytes"},
		{"slash1", "a_b.txt", "bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			f := newDriveFixture(t)
			dest := filepath.Join(t.TempDir(), "downloads")

			path, err := f.svc.Download(context.Background(), googletest.Email, tt.id, dest)
			require.NoError(t, err)

			assert.Equal(t, filepath.Join(dest, tt.wantName), path)
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(data))
		})
	}
}

func TestDownload_Rejects(t *testing.T) {
	f := newDriveFixture(t)
	ctx := context.Background()

	_, err := f.svc.Download(ctx, googletest.Email, "folder1", t.TempDir())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.Download(ctx, googletest.Email, "doc1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.Download(ctx, googletest.Email, "missing", t.TempDir())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestWriteFile_RemovesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.bin")

	err := writeFile(path, io.MultiReader(strings.NewReader("half"), failingReader{}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoFileExists(t, path)
}

func TestUpload(t *testing.T) {
	f := newDriveFixture(t)
	local := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(local, []byte("hello drive"), 0600))

	file, err := f.svc.Upload(context.Background(), googletest.Email, local, "folder1")
	require.NoError(t, err)

	assert.Equal(t, "new1", file.ID)
	assert.Equal(t, "notes.txt", file.Name)
	assert.Equal(t, "hello drive", f.upload)
	require.Len(t, f.created, 1)
	assert.Equal(t, []any{"folder1"}, f.created[0]["parents"])
}

func TestUpload_MissingFile(t *testing.T) {
	f := newDriveFixture(t)

	_, err := f.svc.Upload(context.Background(), googletest.Email, filepath.Join(t.TempDir(), "nope"), "")
	require.Error(t, err)
	assert.Empty(t, f.created)
}

func TestCreateFolder(t *testing.T) {
	f := newDriveFixture(t)

	folder, err := f.svc.CreateFolder(context.Background(), googletest.Email, "Reports", "")
	require.NoError(t, err)

	assert.True(t, folder.IsFolder())
	assert.Equal(t, "Reports", folder.Name)
	require.Len(t, f.created, 1)
	assert.NotContains(t, f.created[0], "parents")

	_, err = f.svc.CreateFolder(context.Background(), googletest.Email, " ", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	f := newDriveFixture(t)

	require.NoError(t, f.svc.Delete(context.Background(), googletest.Email, "bin1"))
	assert.Equal(t, []string{"bin1"}, f.deleted)

	err := f.svc.Delete(context.Background(), googletest.Email, "missing")
	assert.ErrorIs(t, err, google.ErrNotFound)
}

func TestClearCache(t *testing.T) {
	f := newDriveFixture(t)

	_, err := f.svc.Get(context.Background(), googletest.Email, "doc1")
	require.NoError(t, err)
	assert.Equal(t, 1, f.svc.cache.Len())

	f.svc.ClearCache(googletest.Email)
	assert.Equal(t, 0, f.svc.cache.Len())
}

func TestZeroService(t *testing.T) {
	svc := &Service{}

	_, err := svc.List(context.Background(), googletest.Email, domain.DriveListOptions{})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	svc.ClearCache("")
}

func TestLocalName(t *testing.T) {
	assert.Equal(t, "report.pdf", localName("report.pdf", "id"))
	assert.Equal(t, "id", localName("..", "id"))
	assert.Equal(t, "id", localName("  ", "id"))
	assert.Equal(t, "x_y", localName(`x\y`, "id"))
}
