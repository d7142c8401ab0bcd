package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seasistemi/deliveryops/internal/platform/cache"
)

const (
	// historyPageSize is the page size used against the positions endpoint.
	historyPageSize = 1000

	// earthRadiusKm is the mean earth radius used by the haversine formula.
	earthRadiusKm = 6371

	// segmentGapKm splits a track into segments when two consecutive points
	// are further apart than this, so a truck teleporting across a data gap
	// does not draw a straight line over the map.
	segmentGapKm = 2
)

// Service exposes fleet-tracking operations and keeps last known positions
// warm in Redis.
type Service struct {
	client      *Client
	redis       *redis.Client
	positionTTL time.Duration
	logger      *slog.Logger
}

// NewService constructs a Service. redis may be nil, in which case the
// position cache is skipped.
func NewService(client *Client, redisClient *redis.Client, positionTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{client: client, redis: redisClient, positionTTL: positionTTL, logger: logger}
}

// Devices lists every tracker on the account.
func (s *Service) Devices(ctx context.Context) ([]Device, error) {
	return s.client.Devices(ctx)
}

// Device fetches a single tracker by IMEI.
func (s *Service) Device(ctx context.Context, imei string) (Device, error) {
	return s.client.Device(ctx, imei)
}

// History downloads the full position history of a device between start and
// stop. It pages through the upstream until has_more goes false and returns
// everything in one slice.
func (s *Service) History(ctx context.Context, imei string, start, stop time.Time, filterType []int) ([]Position, error) {
	var all []Position
	skip := 0
	for {
		page, err := s.client.historyPage(ctx, imei, start, stop, filterType, historyPageSize, skip)
		if err != nil {
			return nil, fmt.Errorf("history for %s: %w", imei, err)
		}
		all = append(all, page.Data...)
		if !page.HasMore {
			return all, nil
		}
		skip += len(page.Data)
	}
}

func positionKey(imei string) string {
	return "tracking:position:" + imei
}

// LastPosition returns the cached last known position of a device, falling
// back to the live API on a cache miss.
func (s *Service) LastPosition(ctx context.Context, imei string) (Position, error) {
	if s.redis != nil {
		var pos Position
		err := cache.GetJSON(ctx, s.redis, positionKey(imei), &pos)
		if err == nil {
			return pos, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("position cache read failed", slog.String("imei", imei), slog.Any("error", err))
		}
	}

	device, err := s.client.Device(ctx, imei)
	if err != nil {
		return Position{}, err
	}
	pos := Position{
		Lng:       device.Lng,
		Lat:       device.Lat,
		Heading:   device.Heading,
		Altitude:  device.Altitude,
		Speed:     device.Speed,
		Timestamp: device.TimestampPosition,
	}
	s.storePosition(ctx, imei, pos)
	return pos, nil
}

// RefreshPositions pulls every device and stores its last position in Redis.
// The worker calls this on a schedule.
func (s *Service) RefreshPositions(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	devices, err := s.client.Devices(ctx)
	if err != nil {
		return fmt.Errorf("refresh positions: %w", err)
	}
	for _, device := range devices {
		s.storePosition(ctx, device.IMEI, Position{
			Lng:       device.Lng,
			Lat:       device.Lat,
			Heading:   device.Heading,
			Altitude:  device.Altitude,
			Speed:     device.Speed,
			Timestamp: device.TimestampPosition,
		})
	}
	s.logger.Info("positions refreshed", slog.Int("devices", len(devices)))
	return nil
}

func (s *Service) storePosition(ctx context.Context, imei string, pos Position) {
	if s.redis == nil {
		return
	}
	if err := cache.SetJSON(ctx, s.redis, positionKey(imei), pos, s.positionTTL); err != nil {
		s.logger.Warn("position cache write failed", slog.String("imei", imei), slog.Any("error", err))
	}
}

// Distance returns the haversine distance in kilometers between two points.
func Distance(latA, lngA, latB, lngB float64) float64 {
	dLat := toRadians(latB - latA)
	dLng := toRadians(lngB - lngA)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(latA))*math.Cos(toRadians(latB))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// SplitSegments breaks a position track into continuous segments, starting a
// new one wherever two consecutive points are more than segmentGapKm apart.
func SplitSegments(positions []Position) [][]Position {
	if len(positions) == 0 {
		return nil
	}
	segments := [][]Position{{positions[0]}}
	for i := 1; i < len(positions); i++ {
		prev := positions[i-1]
		cur := positions[i]
		if Distance(prev.Lat, prev.Lng, cur.Lat, cur.Lng) > segmentGapKm {
			segments = append(segments, []Position{cur})
			continue
		}
		last := len(segments) - 1
		segments[last] = append(segments[last], cur)
	}
	return segments
}
