package customers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seasistemi/deliveryops/internal/wordpress"
)

const postType = "customer"

// Service provides business operations on customers.
type Service struct {
	wp     *wordpress.Client
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(wp *wordpress.Client, logger *slog.Logger) *Service {
	return &Service{wp: wp, logger: logger}
}

// List returns one page of customers.
func (s *Service) List(ctx context.Context, q wordpress.ListQuery) (wordpress.ListPage[Customer], error) {
	page, err := wordpress.ListPosts[Customer](ctx, s.wp, postType, q)
	if err != nil {
		return page, fmt.Errorf("list customers: %w", err)
	}
	for i := range page.Data {
		page.Data[i].DecodeTitle()
	}
	return page, nil
}

// Get returns a single customer.
func (s *Service) Get(ctx context.Context, id int) (Customer, error) {
	customer, err := wordpress.GetPost[Customer](ctx, s.wp, postType, id)
	if err != nil {
		return customer, fmt.Errorf("get customer %d: %w", id, err)
	}
	customer.DecodeTitle()
	return customer, nil
}

// Create stores a new customer.
func (s *Service) Create(ctx context.Context, body any) (Customer, error) {
	customer, err := wordpress.CreatePost[Customer](ctx, s.wp, postType, body)
	if err != nil {
		return customer, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

// Update modifies an existing customer.
func (s *Service) Update(ctx context.Context, id int, body any) (Customer, error) {
	customer, err := wordpress.UpdatePost[Customer](ctx, s.wp, postType, id, body)
	if err != nil {
		return customer, fmt.Errorf("update customer %d: %w", id, err)
	}
	return customer, nil
}

// Delete removes a customer.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.wp.DeletePost(ctx, postType, id); err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	return nil
}
