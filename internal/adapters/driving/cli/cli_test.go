package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/gwcli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gwcli/internal/core/domain"
	"github.com/custodia-labs/gwcli/internal/core/ports/driving"
	"github.com/custodia-labs/gwcli/internal/core/services"
)

const testEmail = "alice@example.com"

// resetFlags restores every flag in the tree to its default so package-level
// flag variables do not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args against s and returns stdout.
func execute(t *testing.T, s *Services, stdin string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	SetServices(s)
	t.Cleanup(func() {
		SetServices(nil)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// newTestServices returns services backed by in-memory settings, a mock
// account service holding emails, and fresh surface mocks.
func newTestServices(t *testing.T, emails ...string) *Services {
	t.Helper()
	accounts := &mockAccountService{}
	for _, email := range emails {
		accounts.accounts = append(accounts.accounts, testAccount(email))
	}
	return &Services{
		Accounts:  accounts,
		Settings:  services.NewSettingsService(memory.NewConfigStore()),
		Drive:     &mockDriveService{},
		Docs:      &mockDocsService{},
		Sheets:    &mockSheetsService{},
		Slides:    &mockSlidesService{},
		ConfigDir: t.TempDir(),
	}
}

func testAccount(email string) domain.Account {
	return domain.NewAccount(email,
		domain.StoredCredentials{ClientID: "1234567890-client.apps.googleusercontent.com", ClientSecret: "secret"},
		domain.TokenPair{RefreshToken: "refresh-token"})
}

// mockAccountService is a mock implementation of driving.AccountService.
type mockAccountService struct {
	accounts     []domain.Account
	clientID     string
	clientSecret string
	addOpts      driving.AddAccountOptions
	removed      []string
	err          error
}

func (m *mockAccountService) Configure(clientID, clientSecret string) error {
	if m.err != nil {
		return m.err
	}
	m.clientID, m.clientSecret = clientID, clientSecret
	return nil
}

func (m *mockAccountService) Credentials() (*domain.StoredCredentials, error) {
	if m.clientID == "" {
		return nil, domain.ErrNotConfigured
	}
	return &domain.StoredCredentials{ClientID: m.clientID, ClientSecret: m.clientSecret}, nil
}

func (m *mockAccountService) AuthURL() (string, error) {
	if m.clientID == "" {
		return "", domain.ErrNotConfigured
	}
	return "https://accounts.google.com/o/oauth2/auth?client_id=" + m.clientID, nil
}

func (m *mockAccountService) Add(_ context.Context, opts driving.AddAccountOptions) (*domain.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.addOpts = opts
	account := testAccount(opts.Email)
	m.accounts = append(m.accounts, account)
	return &account, nil
}

func (m *mockAccountService) List() []domain.Account {
	return m.accounts
}

func (m *mockAccountService) Get(email string) (*domain.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *mockAccountService) Remove(email string) error {
	if _, err := m.Get(email); err != nil {
		return err
	}
	m.removed = append(m.removed, email)
	return nil
}

// call records the account and arguments of the last surface call.
type call struct {
	email string
	args  []string
}

// mockDriveService is a mock implementation of driving.DriveService.
type mockDriveService struct {
	last     call
	listOpts domain.DriveListOptions
	list     *domain.DriveFileList
	file     *domain.DriveFile
	err      error
}

func (m *mockDriveService) List(_ context.Context, email string, opts domain.DriveListOptions) (*domain.DriveFileList, error) {
	m.last, m.listOpts = call{email: email}, opts
	if m.list == nil {
		return &domain.DriveFileList{}, m.err
	}
	return m.list, m.err
}

func (m *mockDriveService) Get(_ context.Context, email, id string) (*domain.DriveFile, error) {
	m.last = call{email, []string{id}}
	return m.file, m.err
}

func (m *mockDriveService) Download(_ context.Context, email, id, dir string) (string, error) {
	m.last = call{email, []string{id, dir}}
	return dir + "/report.txt", m.err
}

func (m *mockDriveService) Upload(_ context.Context, email, path, parent string) (*domain.DriveFile, error) {
	m.last = call{email, []string{path, parent}}
	return &domain.DriveFile{ID: "up1", Name: "notes.txt"}, m.err
}

func (m *mockDriveService) CreateFolder(_ context.Context, email, name, parent string) (*domain.DriveFile, error) {
	m.last = call{email, []string{name, parent}}
	return &domain.DriveFile{ID: "dir1", Name: name, MimeType: domain.MimeTypeFolder}, m.err
}

func (m *mockDriveService) Delete(_ context.Context, email, id string) error {
	m.last = call{email, []string{id}}
	return m.err
}

func (m *mockDriveService) ClearCache(string) {}

// mockDocsService is a mock implementation of driving.DocsService.
type mockDocsService struct {
	last     call
	doc      *domain.DocsDocument
	replaced int64
	err      error
}

func (m *mockDocsService) Get(_ context.Context, email, id string) (*domain.DocsDocument, error) {
	m.last = call{email, []string{id}}
	return m.doc, m.err
}

func (m *mockDocsService) Create(_ context.Context, email, title string) (*domain.DocsDocument, error) {
	m.last = call{email, []string{title}}
	return &domain.DocsDocument{ID: "doc1", Title: title}, m.err
}

func (m *mockDocsService) AppendText(_ context.Context, email, id, text string) error {
	m.last = call{email, []string{id, text}}
	return m.err
}

func (m *mockDocsService) ReplaceText(_ context.Context, email, id, find, replace string) (int64, error) {
	m.last = call{email, []string{id, find, replace}}
	return m.replaced, m.err
}

func (m *mockDocsService) ClearCache(string) {}

// mockSheetsService is a mock implementation of driving.SheetsService.
type mockSheetsService struct {
	last   call
	rows   [][]string
	sheet  *domain.Spreadsheet
	values *domain.ValueRange
	err    error
}

func (m *mockSheetsService) Get(_ context.Context, email, id string) (*domain.Spreadsheet, error) {
	m.last = call{email, []string{id}}
	return m.sheet, m.err
}

func (m *mockSheetsService) Read(_ context.Context, email, id, area string) (*domain.ValueRange, error) {
	m.last = call{email, []string{id, area}}
	return m.values, m.err
}

func (m *mockSheetsService) Write(_ context.Context, email, id, area string, rows [][]string) (*domain.UpdateResult, error) {
	m.last, m.rows = call{email, []string{id, area}}, rows
	return &domain.UpdateResult{Range: area, UpdatedRows: int64(len(rows)), UpdatedCells: 4}, m.err
}

func (m *mockSheetsService) Append(_ context.Context, email, id, area string, rows [][]string) (*domain.UpdateResult, error) {
	m.last, m.rows = call{email, []string{id, area}}, rows
	return &domain.UpdateResult{Range: area, UpdatedRows: int64(len(rows))}, m.err
}

func (m *mockSheetsService) Clear(_ context.Context, email, id, area string) error {
	m.last = call{email, []string{id, area}}
	return m.err
}

func (m *mockSheetsService) Create(_ context.Context, email, title string) (*domain.Spreadsheet, error) {
	m.last = call{email, []string{title}}
	return &domain.Spreadsheet{ID: "ss1", Title: title}, m.err
}

func (m *mockSheetsService) ClearCache(string) {}

// mockSlidesService is a mock implementation of driving.SlidesService.
type mockSlidesService struct {
	last call
	pres *domain.Presentation
	err  error
}

func (m *mockSlidesService) Get(_ context.Context, email, id string) (*domain.Presentation, error) {
	m.last = call{email, []string{id}}
	return m.pres, m.err
}

func (m *mockSlidesService) Create(_ context.Context, email, title string) (*domain.Presentation, error) {
	m.last = call{email, []string{title}}
	return &domain.Presentation{ID: "p1", Title: title}, m.err
}

func (m *mockSlidesService) AddSlide(_ context.Context, email, id, layout string) (string, error) {
	m.last = call{email, []string{id, layout}}
	return "slide_1", m.err
}

func (m *mockSlidesService) DeleteSlide(_ context.Context, email, id, slideID string) error {
	m.last = call{email, []string{id, slideID}}
	return m.err
}

func (m *mockSlidesService) ClearCache(string) {}
