// Package slides implements the Google Slides surface.
package slides

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/slides/v1"

	"github.com/custodia-labs/gwcli/internal/connectors/google"
	"github.com/custodia-labs/gwcli/internal/core/domain"
	"github.com/custodia-labs/gwcli/internal/core/ports/driving"
)

// Ensure Service implements the interface.
var _ driving.SlidesService = (*Service)(nil)

// DefaultLayout is used by AddSlide when no layout is given.
const DefaultLayout = "BLANK"

// Layouts lists the predefined slide layouts.
var Layouts = []string{
	"BLANK",
	"CAPTION_ONLY",
	"TITLE",
	"TITLE_AND_BODY",
	"TITLE_AND_TWO_COLUMNS",
	"TITLE_ONLY",
	"SECTION_HEADER",
	"SECTION_TITLE_AND_DESCRIPTION",
	"ONE_COLUMN_TEXT",
	"MAIN_POINT",
	"BIG_NUMBER",
}

// Service issues Slides requests for stored accounts.
type Service struct {
	cache   *google.ClientCache[*slides.Service]
	limiter *google.RateLimiter
}

// New creates a Slides service whose API handles are built from accounts.
func New(accounts google.AccountLookup, limiter *google.RateLimiter, opts google.Options) *Service {
	return &Service{
		cache: google.NewClientCache(accounts, func(ctx context.Context, account domain.Account) (*slides.Service, error) {
			return google.NewSlidesService(ctx, account, opts)
		}),
		limiter: limiter,
	}
}

// Get returns a presentation with the text of every slide.
func (s *Service) Get(ctx context.Context, email, presentationID string) (*domain.Presentation, error) {
	if err := requireID(presentationID); err != nil {
		return nil, err
	}
	svc, err := s.client(ctx, email)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Presentations.Get(presentationID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get presentation %s: %w", presentationID, s.limiter.Observe(err))
	}
	return toPresentation(resp), nil
}

// Create creates a presentation with the default title slide.
func (s *Service) Create(ctx context.Context, email, title string) (*domain.Presentation, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	svc, err := s.client(ctx, email)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Presentations.Create(&slides.Presentation{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create presentation: %w", s.limiter.Observe(err))
	}
	return toPresentation(resp), nil
}

// AddSlide appends a slide using a predefined layout and returns the new
// slide's object ID.
func (s *Service) AddSlide(ctx context.Context, email, presentationID, layout string) (string, error) {
	layout = strings.ToUpper(strings.TrimSpace(layout))
	if layout == "" {
		layout = DefaultLayout
	}
	if !isLayout(layout) {
		return "", fmt.Errorf("%w: unknown layout %q", domain.ErrInvalidInput, layout)
	}

	resp, err := s.batchUpdate(ctx, email, presentationID, &slides.Request{
		CreateSlide: &slides.CreateSlideRequest{
			SlideLayoutReference: &slides.LayoutReference{PredefinedLayout: layout},
		},
	})
	if err != nil {
		return "", err
	}
	for _, reply := range resp.Replies {
		if reply != nil && reply.CreateSlide != nil {
			return reply.CreateSlide.ObjectId, nil
		}
	}
	return "", errors.New("add slide: response carried no slide id")
}

// DeleteSlide removes a slide by object ID.
func (s *Service) DeleteSlide(ctx context.Context, email, presentationID, slideID string) error {
	if strings.TrimSpace(slideID) == "" {
		return fmt.Errorf("%w: slide id is required", domain.ErrInvalidInput)
	}
	_, err := s.batchUpdate(ctx, email, presentationID, &slides.Request{
		DeleteObject: &slides.DeleteObjectRequest{ObjectId: slideID},
	})
	return err
}

// ClearCache drops cached handles for email, or all handles if email is empty.
func (s *Service) ClearCache(email string) {
	if s.cache != nil {
		s.cache.ClearCache(email)
	}
}

func (s *Service) batchUpdate(ctx context.Context, email, presentationID string, requests ...*slides.Request) (*slides.BatchUpdatePresentationResponse, error) {
	if err := requireID(presentationID); err != nil {
		return nil, err
	}
	svc, err := s.client(ctx, email)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Presentations.BatchUpdate(presentationID, &slides.BatchUpdatePresentationRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("update presentation %s: %w", presentationID, s.limiter.Observe(err))
	}
	return resp, nil
}

func (s *Service) client(ctx context.Context, email string) (*slides.Service, error) {
	if s.cache == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.cache.Get(ctx, email)
}

func requireID(presentationID string) error {
	if strings.TrimSpace(presentationID) == "" {
		return fmt.Errorf("%w: presentation id is required", domain.ErrInvalidInput)
	}
	return nil
}

func isLayout(layout string) bool {
	for _, l := range Layouts {
		if l == layout {
			return true
		}
	}
	return false
}
