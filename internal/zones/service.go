package zones

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seasistemi/deliveryops/internal/wordpress"
)

const postType = "zone"

// Service provides business operations on zones.
type Service struct {
	wp     *wordpress.Client
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(wp *wordpress.Client, logger *slog.Logger) *Service {
	return &Service{wp: wp, logger: logger}
}

// List returns one page of zones.
func (s *Service) List(ctx context.Context, q wordpress.ListQuery) (wordpress.ListPage[Zone], error) {
	page, err := wordpress.ListPosts[Zone](ctx, s.wp, postType, q)
	if err != nil {
		return page, fmt.Errorf("list zones: %w", err)
	}
	for i := range page.Data {
		page.Data[i].DecodeTitle()
	}
	return page, nil
}

// Get returns a single zone.
func (s *Service) Get(ctx context.Context, id int) (Zone, error) {
	zone, err := wordpress.GetPost[Zone](ctx, s.wp, postType, id)
	if err != nil {
		return zone, fmt.Errorf("get zone %d: %w", id, err)
	}
	zone.DecodeTitle()
	return zone, nil
}

// Create stores a new zone.
func (s *Service) Create(ctx context.Context, body any) (Zone, error) {
	zone, err := wordpress.CreatePost[Zone](ctx, s.wp, postType, body)
	if err != nil {
		return zone, fmt.Errorf("create zone: %w", err)
	}
	return zone, nil
}

// Update modifies an existing zone.
func (s *Service) Update(ctx context.Context, id int, body any) (Zone, error) {
	zone, err := wordpress.UpdatePost[Zone](ctx, s.wp, postType, id, body)
	if err != nil {
		return zone, fmt.Errorf("update zone %d: %w", id, err)
	}
	return zone, nil
}

// Delete removes a zone.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.wp.DeletePost(ctx, postType, id); err != nil {
		return fmt.Errorf("delete zone %d: %w", id, err)
	}
	return nil
}
