package vehicles

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/seasistemi/deliveryops/internal/tracking"
	"github.com/seasistemi/deliveryops/internal/wordpress"
)

const postType = "vehicle"

// DeviceSource yields live tracker data for enrichment.
type DeviceSource interface {
	Device(ctx context.Context, imei string) (tracking.Device, error)
}

// Service provides business operations on vehicles.
type Service struct {
	wp      *wordpress.Client
	devices DeviceSource
	logger  *slog.Logger
}

// NewService constructs a Service. devices may be nil when no tracking
// account is configured.
func NewService(wp *wordpress.Client, devices DeviceSource, logger *slog.Logger) *Service {
	return &Service{wp: wp, devices: devices, logger: logger}
}

// List returns one page of vehicles.
func (s *Service) List(ctx context.Context, q wordpress.ListQuery) (wordpress.ListPage[Vehicle], error) {
	page, err := wordpress.ListPosts[Vehicle](ctx, s.wp, postType, q)
	if err != nil {
		return page, fmt.Errorf("list vehicles: %w", err)
	}
	for i := range page.Data {
		page.Data[i].DecodeTitle()
	}
	return page, nil
}

// ListWithDevices returns one page of vehicles, each joined with its live
// tracker. Trackers are fetched concurrently; a vehicle whose tracker lookup
// fails keeps a nil Device rather than failing the whole page.
func (s *Service) ListWithDevices(ctx context.Context, q wordpress.ListQuery) (wordpress.ListPage[VehicleWithDevice], error) {
	page, err := s.List(ctx, q)
	if err != nil {
		return wordpress.ListPage[VehicleWithDevice]{}, err
	}

	enriched := wordpress.ListPage[VehicleWithDevice]{
		Data:       make([]VehicleWithDevice, len(page.Data)),
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
	for i, vehicle := range page.Data {
		enriched.Data[i] = VehicleWithDevice{Vehicle: vehicle}
	}
	if s.devices == nil {
		return enriched, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range enriched.Data {
		if enriched.Data[i].ACF.IMEI == "" {
			continue
		}
		i := i
		g.Go(func() error {
			device, err := s.devices.Device(gctx, enriched.Data[i].ACF.IMEI)
			if err != nil {
				s.logger.Warn("tracker lookup failed",
					slog.String("imei", enriched.Data[i].ACF.IMEI),
					slog.Any("error", err))
				return nil
			}
			enriched.Data[i].Device = &device
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return enriched, err
	}
	return enriched, nil
}

// Get returns a single vehicle.
func (s *Service) Get(ctx context.Context, id int) (Vehicle, error) {
	vehicle, err := wordpress.GetPost[Vehicle](ctx, s.wp, postType, id)
	if err != nil {
		return vehicle, fmt.Errorf("get vehicle %d: %w", id, err)
	}
	vehicle.DecodeTitle()
	return vehicle, nil
}

// Create stores a new vehicle.
func (s *Service) Create(ctx context.Context, body any) (Vehicle, error) {
	vehicle, err := wordpress.CreatePost[Vehicle](ctx, s.wp, postType, body)
	if err != nil {
		return vehicle, fmt.Errorf("create vehicle: %w", err)
	}
	return vehicle, nil
}

// Update modifies an existing vehicle.
func (s *Service) Update(ctx context.Context, id int, body any) (Vehicle, error) {
	vehicle, err := wordpress.UpdatePost[Vehicle](ctx, s.wp, postType, id, body)
	if err != nil {
		return vehicle, fmt.Errorf("update vehicle %d: %w", id, err)
	}
	return vehicle, nil
}

// Delete removes a vehicle.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.wp.DeletePost(ctx, postType, id); err != nil {
		return fmt.Errorf("delete vehicle %d: %w", id, err)
	}
	return nil
}
