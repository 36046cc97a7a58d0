// Package docs implements the Google Docs surface.
package docs

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/docs/v1"

	"github.com/custodia-labs/gwcli/internal/connectors/google"
	"github.com/custodia-labs/gwcli/internal/core/domain"
	"github.com/custodia-labs/gwcli/internal/core/ports/driving"
)

// Ensure Service implements the interface.
var _ driving.DocsService = (*Service)(nil)

// Service issues Docs requests for stored accounts.
type Service struct {
	cache   *google.ClientCache[*docs.Service]
	limiter *google.RateLimiter
}

// New creates a Docs service whose API handles are built from accounts.
func New(accounts google.AccountLookup, limiter *google.RateLimiter, opts google.Options) *Service {
	return &Service{
		cache: google.NewClientCache(accounts, func(ctx context.Context, account domain.Account) (*docs.Service, error) {
			return google.NewDocsService(ctx, account, opts)
		}),
		limiter: limiter,
	}
}

// Get returns a document reduced to its paragraphs.
func (s *Service) Get(ctx context.Context, email, documentID string) (*domain.DocsDocument, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}
	svc, err := s.client(ctx, email)
	if err != nil {
		return nil, err
	}

	doc, err := svc.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", documentID, s.limiter.Observe(err))
	}
	return toDocument(doc), nil
}

// Create creates an empty document.
func (s *Service) Create(ctx context.Context, email, title string) (*domain.DocsDocument, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	svc, err := s.client(ctx, email)
	if err != nil {
		return nil, err
	}

	doc, err := svc.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create document: %w", s.limiter.Observe(err))
	}
	return toDocument(doc), nil
}

// AppendText inserts text at the end of the document body.
func (s *Service) AppendText(ctx context.Context, email, documentID, text string) error {
	if text == "" {
		return fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}
	_, err := s.batchUpdate(ctx, email, documentID, &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Text:                 text,
			EndOfSegmentLocation: &docs.EndOfSegmentLocation{},
		},
	})
	return err
}

// ReplaceText replaces every case-sensitive match of find and returns the
// number of occurrences changed.
func (s *Service) ReplaceText(ctx context.Context, email, documentID, find, replace string) (int64, error) {
	if find == "" {
		return 0, fmt.Errorf("%w: search text is required", domain.ErrInvalidInput)
	}
	resp, err := s.batchUpdate(ctx, email, documentID, &docs.Request{
		ReplaceAllText: &docs.ReplaceAllTextRequest{
			ContainsText: &docs.SubstringMatchCriteria{Text: find, MatchCase: true},
			ReplaceText:  replace,
		},
	})
	if err != nil {
		return 0, err
	}

	var changed int64
	for _, reply := range resp.Replies {
		if reply != nil && reply.ReplaceAllText != nil {
			changed += reply.ReplaceAllText.OccurrencesChanged
		}
	}
	return changed, nil
}

// ClearCache drops cached handles for email, or all handles if email is empty.
func (s *Service) ClearCache(email string) {
	if s.cache != nil {
		s.cache.ClearCache(email)
	}
}

func (s *Service) batchUpdate(ctx context.Context, email, documentID string, requests ...*docs.Request) (*docs.BatchUpdateDocumentResponse, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}
	svc, err := s.client(ctx, email)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("update document %s: %w", documentID, s.limiter.Observe(err))
	}
	return resp, nil
}

func (s *Service) client(ctx context.Context, email string) (*docs.Service, error) {
	if s.cache == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.cache.Get(ctx, email)
}
