// Package drive implements the Google Drive surface.
package drive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/gwcli/internal/connectors/google"
	"github.com/custodia-labs/gwcli/internal/core/domain"
	"github.com/custodia-labs/gwcli/internal/core/ports/driving"
	"github.com/custodia-labs/gwcli/internal/logger"
)

// Ensure Service implements the interface.
var _ driving.DriveService = (*Service)(nil)

// fileFields is the partial response requested for every file.
const fileFields = "id, name, mimeType, size, modifiedTime, webViewLink, parents"

// Export formats for Google Workspace files.
const (
	ExportMimeText = "text/plain"
	ExportMimeCSV  = "text/csv"
	ExportMimePDF  = "application/pdf"
)

// exportFormat is the MIME type and file extension a native file is
// exported as.
type exportFormat struct {
	mimeType  string
	extension string
}

var exportFormats = map[string]exportFormat{
	domain.MimeTypeGoogleDoc:    {ExportMimeText, ".txt"},
	domain.MimeTypeGoogleSheet:  {ExportMimeCSV, ".csv"},
	domain.MimeTypeGoogleSlides: {ExportMimePDF, ".pdf"},
}

// Service issues Drive requests for stored accounts.
type Service struct {
	cache   *google.ClientCache[*drive.Service]
	limiter *google.RateLimiter
}

// New creates a Drive service whose API handles are built from accounts.
func New(accounts google.AccountLookup, limiter *google.RateLimiter, opts google.Options) *Service {
	return &Service{
		cache: google.NewClientCache(accounts, func(ctx context.Context, account domain.Account) (*drive.Service, error) {
			return google.NewDriveService(ctx, account, opts)
		}),
		limiter: limiter,
	}
}

// List returns one page of files matching opts. Trashed files are excluded.
func (s *Service) List(ctx context.Context, email string, opts domain.DriveListOptions) (*domain.DriveFileList, error) {
	svc, err := s.client(ctx, email)
	if err != nil {
		return nil, err
	}

	call := svc.Files.List().
		Context(ctx).
		Q(buildQuery(opts)).
		Fields(googleapi.Field("nextPageToken, files(" + fileFields + ")"))
	if opts.PageSize > 0 {
		call = call.PageSize(opts.PageSize)
	}
	if opts.PageToken != "" {
		call = call.PageToken(opts.PageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list files: %w", s.limiter.Observe(err))
	}

	list := &domain.DriveFileList{
		Files:         make([]domain.DriveFile, 0, len(resp.Files)),
		NextPageToken: resp.NextPageToken,
	}
	for _, f := range resp.Files {
		list.Files = append(list.Files, toDriveFile(f))
	}
	return list, nil
}

// Get returns a file's metadata.
func (s *Service) Get(ctx context.Context, email, fileID string) (*domain.DriveFile, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, fmt.Errorf("%w: file id is required", domain.ErrInvalidInput)
	}
	svc, err := s.client(ctx, email)
	if err != nil {
		return nil, err
	}

	f, err := svc.Files.Get(fileID).Context(ctx).Fields(fileFields).Do()
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", fileID, s.limiter.Observe(err))
	}
	file := toDriveFile(f)
	return &file, nil
}

// Download writes a file into destDir and returns the written path.
// Docs are exported as text, Sheets as CSV and Slides as PDF.
func (s *Service) Download(ctx context.Context, email, fileID, destDir string) (string, error) {
	if destDir == "" {
		return "", fmt.Errorf("%w: destination directory is required", domain.ErrInvalidInput)
	}
	file, err := s.Get(ctx, email, fileID)
	if err != nil {
		return "", err
	}
	if file.IsFolder() {
		return "", fmt.Errorf("%w: %s is a folder", domain.ErrInvalidInput, file.Name)
	}

	svc, err := s.client(ctx, email)
	if err != nil {
		return "", err
	}

	name := localName(file.Name, fileID)
	var resp *http.Response
	if format, ok := exportFormats[file.MimeType]; ok {
		if !strings.EqualFold(filepath.Ext(name), format.extension) {
			name += format.extension
		}
		logger.Debug("exporting %s as %s", fileID, format.mimeType)
		resp, err = svc.Files.Export(fileID, format.mimeType).Context(ctx).Download()
	} else {
		resp, err = svc.Files.Get(fileID).Context(ctx).Download()
	}
	if err != nil {
		return "", fmt.Errorf("download %s: %w", fileID, s.limiter.Observe(err))
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(destDir, 0700); err != nil {
		return "", fmt.Errorf("create destination: %w", err)
	}
	path := filepath.Join(destDir, name)
	if err := writeFile(path, resp.Body); err != nil {
		return "", err
	}
	return path, nil
}

// Upload creates a file from localPath, optionally inside parentID.
func (s *Service) Upload(ctx context.Context, email, localPath, parentID string) (*domain.DriveFile, error) {
	content, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer content.Close()

	svc, err := s.client(ctx, email)
	if err != nil {
		return nil, err
	}

	meta := &drive.File{Name: filepath.Base(localPath)}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	f, err := svc.Files.Create(meta).Media(content).Context(ctx).Fields(fileFields).Do()
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", localPath, s.limiter.Observe(err))
	}
	file := toDriveFile(f)
	return &file, nil
}

// CreateFolder creates a folder, optionally inside parentID.
func (s *Service) CreateFolder(ctx context.Context, email, name, parentID string) (*domain.DriveFile, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: folder name is required", domain.ErrInvalidInput)
	}
	svc, err := s.client(ctx, email)
	if err != nil {
		return nil, err
	}

	meta := &drive.File{Name: name, MimeType: domain.MimeTypeFolder}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	f, err := svc.Files.Create(meta).Context(ctx).Fields(fileFields).Do()
	if err != nil {
		return nil, fmt.Errorf("create folder %s: %w", name, s.limiter.Observe(err))
	}
	file := toDriveFile(f)
	return &file, nil
}

// Delete permanently deletes a file, bypassing the trash.
func (s *Service) Delete(ctx context.Context, email, fileID string) error {
	if strings.TrimSpace(fileID) == "" {
		return fmt.Errorf("%w: file id is required", domain.ErrInvalidInput)
	}
	svc, err := s.client(ctx, email)
	if err != nil {
		return err
	}

	if err := svc.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete %s: %w", fileID, s.limiter.Observe(err))
	}
	return nil
}

// ClearCache drops cached handles for email, or all handles if email is empty.
func (s *Service) ClearCache(email string) {
	if s.cache != nil {
		s.cache.ClearCache(email)
	}
}

func (s *Service) client(ctx context.Context, email string) (*drive.Service, error) {
	if s.cache == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.cache.Get(ctx, email)
}

// buildQuery combines the folder filter with a caller query.
func buildQuery(opts domain.DriveListOptions) string {
	clauses := []string{"trashed = false"}
	if opts.FolderID != "" {
		clauses = append(clauses, fmt.Sprintf("'%s' in parents", escapeQuery(opts.FolderID)))
	}
	if q := strings.TrimSpace(opts.Query); q != "" {
		clauses = append(clauses, "("+q+")")
	}
	return strings.Join(clauses, " and ")
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// toDriveFile maps an API file. Absent fields keep their zero values.
func toDriveFile(f *drive.File) domain.DriveFile {
	if f == nil {
		return domain.DriveFile{}
	}
	file := domain.DriveFile{
		ID:          f.Id,
		Name:        f.Name,
		MimeType:    f.MimeType,
		Size:        f.Size,
		WebViewLink: f.WebViewLink,
		Parents:     f.Parents,
	}
	if f.ModifiedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			file.ModifiedTime = t
		}
	}
	return file
}

// localName turns a Drive name into a safe file name.
func localName(name, fallback string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." {
		return fallback
	}
	return name
}

func writeFile(path string, r io.Reader) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
