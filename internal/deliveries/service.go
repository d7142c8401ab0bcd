package deliveries

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seasistemi/deliveryops/internal/wordpress"
)

const postType = "delivery"

// Service provides business operations on deliveries.
type Service struct {
	wp     *wordpress.Client
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(wp *wordpress.Client, logger *slog.Logger) *Service {
	return &Service{wp: wp, logger: logger}
}

// List returns one page of deliveries.
func (s *Service) List(ctx context.Context, q wordpress.ListQuery) (wordpress.ListPage[Delivery], error) {
	page, err := wordpress.ListPosts[Delivery](ctx, s.wp, postType, q)
	if err != nil {
		return page, fmt.Errorf("list deliveries: %w", err)
	}
	for i := range page.Data {
		page.Data[i].DecodeTitle()
	}
	return page, nil
}

// Get returns a single delivery.
func (s *Service) Get(ctx context.Context, id int) (Delivery, error) {
	delivery, err := wordpress.GetPost[Delivery](ctx, s.wp, postType, id)
	if err != nil {
		return delivery, fmt.Errorf("get delivery %d: %w", id, err)
	}
	delivery.DecodeTitle()
	return delivery, nil
}

// Create stores a new delivery. There is no idempotency key: a double submit
// creates two records.
func (s *Service) Create(ctx context.Context, body any) (Delivery, error) {
	delivery, err := wordpress.CreatePost[Delivery](ctx, s.wp, postType, body)
	if err != nil {
		return delivery, fmt.Errorf("create delivery: %w", err)
	}
	return delivery, nil
}

// Update modifies an existing delivery.
func (s *Service) Update(ctx context.Context, id int, body any) (Delivery, error) {
	delivery, err := wordpress.UpdatePost[Delivery](ctx, s.wp, postType, id, body)
	if err != nil {
		return delivery, fmt.Errorf("update delivery %d: %w", id, err)
	}
	return delivery, nil
}

// Delete removes a delivery.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.wp.DeletePost(ctx, postType, id); err != nil {
		return fmt.Errorf("delete delivery %d: %w", id, err)
	}
	return nil
}

// scopedList prepends a meta filter and applies the scoped-list defaults:
// first page, 100 records, ordered by id ascending.
func (s *Service) scopedList(ctx context.Context, key, value string, q wordpress.ListQuery) (wordpress.ListPage[Delivery], error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PerPage == 0 {
		q.PerPage = 100
	}
	if q.OrderBy == "" {
		q.OrderBy = "id"
	}
	if q.Order == "" {
		q.Order = "asc"
	}
	q.Filters = append([]wordpress.Filter{{Key: key, Value: value}}, q.Filters...)
	return s.List(ctx, q)
}

// ByZone lists the deliveries of one zone.
func (s *Service) ByZone(ctx context.Context, zoneID string, q wordpress.ListQuery) (wordpress.ListPage[Delivery], error) {
	return s.scopedList(ctx, "zone_id", zoneID, q)
}

// ByRoute lists the deliveries of one route.
func (s *Service) ByRoute(ctx context.Context, routeID string, q wordpress.ListQuery) (wordpress.ListPage[Delivery], error) {
	return s.scopedList(ctx, "route_id", routeID, q)
}

// AddNote appends a carrier note to a delivery.
func (s *Service) AddNote(ctx context.Context, id int, note string) error {
	err := s.wp.PostDiscard(ctx, "/wp-json/ts-delivery/v1/add-note", map[string]any{
		"delivery_id": id,
		"note":        note,
	})
	if err != nil {
		return fmt.Errorf("add note to delivery %d: %w", id, err)
	}
	return nil
}

// SetCheck flips one status flag of a delivery. Exactly one flag travels per
// call; the backend rejects anything else.
func (s *Service) SetCheck(ctx context.Context, id int, check Check, value bool) error {
	if !check.Valid() {
		return fmt.Errorf("unknown delivery check %q", check)
	}
	err := s.wp.PostDiscard(ctx, "/wp-json/ts-delivery/v1/toggle-check", map[string]any{
		"delivery_id": id,
		string(check): value,
	})
	if err != nil {
		return fmt.Errorf("toggle %s on delivery %d: %w", check, id, err)
	}
	return nil
}

// Pdf asks the backend to generate the delivery document.
func (s *Service) Pdf(ctx context.Context, id int) (PdfResult, error) {
	result, err := wordpress.Get[PdfResult](ctx, s.wp, fmt.Sprintf("/wp-json/seasistemi/v1/pdf/delivery/%d", id), nil)
	if err != nil {
		return result, fmt.Errorf("generate pdf for delivery %d: %w", id, err)
	}
	return result, nil
}
