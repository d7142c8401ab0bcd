package routes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/seasistemi/deliveryops/internal/auth"
	"github.com/seasistemi/deliveryops/internal/platform/httpx"
	"github.com/seasistemi/deliveryops/internal/session"
	"github.com/seasistemi/deliveryops/internal/wordpress"
)

const postType = "route"

// Service provides route CRUD and the active-route singleton.
type Service struct {
	wp     *wordpress.Client
	active *session.Cache[*Route]
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(wp *wordpress.Client, logger *slog.Logger) *Service {
	return &Service{
		wp:     wp,
		active: session.NewCache[*Route](),
		logger: logger,
	}
}

// List returns one page of routes.
func (s *Service) List(ctx context.Context, q wordpress.ListQuery) (wordpress.ListPage[Route], error) {
	page, err := wordpress.ListPosts[Route](ctx, s.wp, postType, q)
	if err != nil {
		return page, fmt.Errorf("list routes: %w", err)
	}
	for i := range page.Data {
		page.Data[i].DecodeTitle()
	}
	return page, nil
}

// Get returns a single route.
func (s *Service) Get(ctx context.Context, id int) (Route, error) {
	route, err := wordpress.GetPost[Route](ctx, s.wp, postType, id)
	if err != nil {
		return route, fmt.Errorf("get route %d: %w", id, err)
	}
	route.DecodeTitle()
	return route, nil
}

// Create stores a new route. A route created active supersedes the cached
// active route for this session.
func (s *Service) Create(ctx context.Context, body any) (Route, error) {
	route, err := wordpress.CreatePost[Route](ctx, s.wp, postType, body)
	if err != nil {
		return route, fmt.Errorf("create route: %w", err)
	}
	if route.ACF.Active {
		s.invalidateActive(ctx)
	}
	return route, nil
}

// Update modifies an existing route.
func (s *Service) Update(ctx context.Context, id int, body any) (Route, error) {
	route, err := wordpress.UpdatePost[Route](ctx, s.wp, postType, id, body)
	if err != nil {
		return route, fmt.Errorf("update route %d: %w", id, err)
	}
	s.invalidateActive(ctx)
	return route, nil
}

// Delete removes a route.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.wp.DeletePost(ctx, postType, id); err != nil {
		return fmt.Errorf("delete route %d: %w", id, err)
	}
	return nil
}

// Active returns the session's active route, or nil when none exists. The
// backend answers 404 for "no active route"; that is a valid nil result here,
// not an error. Concurrent cold calls share one fetch.
func (s *Service) Active(ctx context.Context) (*Route, error) {
	token := auth.TokenFromContext(ctx)
	if token == "" {
		return nil, httpx.ErrUnauthorized
	}
	return s.active.Get(ctx, token, s.fetchActive)
}

func (s *Service) fetchActive(ctx context.Context) (*Route, error) {
	route, err := wordpress.Get[Route](ctx, s.wp, "/wp-json/ts-route/v1/active-route", nil)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch active route: %w", err)
	}
	route.DecodeTitle()
	return &route, nil
}

// Deactivate turns off the active route and invalidates the cached singleton
// so the next Active call re-fetches.
func (s *Service) Deactivate(ctx context.Context) error {
	if err := s.wp.GetDiscard(ctx, "/wp-json/ts-route/v1/deactivate-route"); err != nil {
		return fmt.Errorf("deactivate route: %w", err)
	}
	s.invalidateActive(ctx)
	return nil
}

func (s *Service) invalidateActive(ctx context.Context) {
	if token := auth.TokenFromContext(ctx); token != "" {
		s.active.Invalidate(token)
	}
}

// InvalidateToken drops the cached active route for a token. Called on logout.
func (s *Service) InvalidateToken(token string) {
	s.active.Invalidate(token)
}
