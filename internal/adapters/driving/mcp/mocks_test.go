package mcp

import (
	"context"
	"sync"

	"github.com/custodia-labs/gwcli/internal/core/domain"
	"github.com/custodia-labs/gwcli/internal/core/ports/driving"
)

func account(email string) domain.Account {
	return domain.NewAccount(email,
		domain.StoredCredentials{ClientID: "id", ClientSecret: "secret"},
		domain.TokenPair{RefreshToken: "refresh"})
}

// mockAccountService is a mock implementation of driving.AccountService.
type mockAccountService struct {
	mu       sync.Mutex
	accounts []domain.Account
}

func (m *mockAccountService) set(accounts ...domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = accounts
}

func (m *mockAccountService) Configure(_, _ string) error { return nil }

func (m *mockAccountService) Credentials() (*domain.StoredCredentials, error) {
	return &domain.StoredCredentials{ClientID: "id", ClientSecret: "secret"}, nil
}

func (m *mockAccountService) AuthURL() (string, error) { return "https://example.com/auth", nil }

func (m *mockAccountService) Add(_ context.Context, _ driving.AddAccountOptions) (*domain.Account, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockAccountService) List() []domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Account(nil), m.accounts...)
}

func (m *mockAccountService) Get(email string) (*domain.Account, error) {
	for _, a := range m.List() {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *mockAccountService) Remove(_ string) error { return nil }

// cacheRecorder records ClearCache calls.
type cacheRecorder struct {
	mu      sync.Mutex
	cleared []string
}

func (c *cacheRecorder) ClearCache(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleared = append(c.cleared, email)
}

func (c *cacheRecorder) clearedEmails() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.cleared...)
}

// mockDriveService is a mock implementation of driving.DriveService.
type mockDriveService struct {
	cacheRecorder
	list      *domain.DriveFileList
	err       error
	lastEmail string
	lastOpts  domain.DriveListOptions
}

func (m *mockDriveService) List(_ context.Context, email string, opts domain.DriveListOptions) (*domain.DriveFileList, error) {
	m.lastEmail, m.lastOpts = email, opts
	return m.list, m.err
}

func (m *mockDriveService) Get(_ context.Context, _, _ string) (*domain.DriveFile, error) {
	return nil, m.err
}

func (m *mockDriveService) Download(_ context.Context, _, _, _ string) (string, error) {
	return "", m.err
}

func (m *mockDriveService) Upload(_ context.Context, _, _, _ string) (*domain.DriveFile, error) {
	return nil, m.err
}

func (m *mockDriveService) CreateFolder(_ context.Context, _, _, _ string) (*domain.DriveFile, error) {
	return nil, m.err
}

func (m *mockDriveService) Delete(_ context.Context, _, _ string) error { return m.err }

// mockDocsService is a mock implementation of driving.DocsService.
type mockDocsService struct {
	cacheRecorder
	doc    *domain.DocsDocument
	err    error
	lastID string
}

func (m *mockDocsService) Get(_ context.Context, _, id string) (*domain.DocsDocument, error) {
	m.lastID = id
	return m.doc, m.err
}

func (m *mockDocsService) Create(_ context.Context, _, _ string) (*domain.DocsDocument, error) {
	return nil, m.err
}

func (m *mockDocsService) AppendText(_ context.Context, _, _, _ string) error { return m.err }

func (m *mockDocsService) ReplaceText(_ context.Context, _, _, _, _ string) (int64, error) {
	return 0, m.err
}

// mockSheetsService is a mock implementation of driving.SheetsService.
type mockSheetsService struct {
	cacheRecorder
	values   *domain.ValueRange
	err      error
	lastArea string
}

func (m *mockSheetsService) Get(_ context.Context, _, _ string) (*domain.Spreadsheet, error) {
	return nil, m.err
}

func (m *mockSheetsService) Read(_ context.Context, _, _, area string) (*domain.ValueRange, error) {
	m.lastArea = area
	return m.values, m.err
}

func (m *mockSheetsService) Write(_ context.Context, _, _, _ string, _ [][]string) (*domain.UpdateResult, error) {
	return nil, m.err
}

func (m *mockSheetsService) Append(_ context.Context, _, _, _ string, _ [][]string) (*domain.UpdateResult, error) {
	return nil, m.err
}

func (m *mockSheetsService) Clear(_ context.Context, _, _, _ string) error { return m.err }

func (m *mockSheetsService) Create(_ context.Context, _, _ string) (*domain.Spreadsheet, error) {
	return nil, m.err
}

// mockSlidesService is a mock implementation of driving.SlidesService.
type mockSlidesService struct {
	cacheRecorder
	pres *domain.Presentation
	err  error
}

func (m *mockSlidesService) Get(_ context.Context, _, _ string) (*domain.Presentation, error) {
	return m.pres, m.err
}

func (m *mockSlidesService) Create(_ context.Context, _, _ string) (*domain.Presentation, error) {
	return nil, m.err
}

func (m *mockSlidesService) AddSlide(_ context.Context, _, _, _ string) (string, error) {
	return "", m.err
}

func (m *mockSlidesService) DeleteSlide(_ context.Context, _, _, _ string) error { return m.err }
