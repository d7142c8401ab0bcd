package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHistoryPagesUntilHasMoreGoesFalse(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/external_api/v1/positionsHistory/860000000000001", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Authorization"))

		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		page := positionPage{Limit: 1000, Skip: skip}
		switch skip {
		case 0:
			page.Data = []Position{{Timestamp: 1}, {Timestamp: 2}}
			page.HasMore = true
		case 2:
			page.Data = []Position{{Timestamp: 3}}
			page.HasMore = true
		case 3:
			page.Data = []Position{{Timestamp: 4}}
			page.HasMore = false
		default:
			t.Fatalf("unexpected skip %d", skip)
		}
		_ = json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "account", "token", nil)
	service := NewService(client, nil, 0, nil)

	positions, err := service.History(context.Background(), "860000000000001",
		time.UnixMilli(0), time.UnixMilli(1000), nil)
	require.NoError(t, err)
	require.Len(t, positions, 4)
	for i, p := range positions {
		assert.Equal(t, int64(i+1), p.Timestamp)
	}
	assert.Equal(t, int32(3), requests.Load())
}

func TestHistorySendsMillisecondBounds(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	stop := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, strconv.FormatInt(start.UnixMilli(), 10), r.URL.Query().Get("start"))
		assert.Equal(t, strconv.FormatInt(stop.UnixMilli(), 10), r.URL.Query().Get("stop"))
		assert.Equal(t, "1000", r.URL.Query().Get("limit"))
		assert.Equal(t, "1,3", r.URL.Query().Get("filter_type"))
		_ = json.NewEncoder(w).Encode(positionPage{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "account", "token", nil)
	service := NewService(client, nil, 0, nil)

	_, err := service.History(context.Background(), "imei", start, stop, []int{1, 3})
	require.NoError(t, err)
}

func TestDistanceHaversine(t *testing.T) {
	// Milano Duomo to Torino Piazza Castello, roughly 126 km.
	d := Distance(45.4642, 9.1900, 45.0703, 7.6869)
	assert.InDelta(t, 126, d, 3)

	assert.Zero(t, Distance(45.0, 9.0, 45.0, 9.0))
}

func TestSplitSegments(t *testing.T) {
	base := Position{Lat: 45.0000, Lng: 9.0000}
	// A few hundred meters away, then a jump well past the gap threshold.
	near := Position{Lat: 45.0010, Lng: 9.0010}
	far := Position{Lat: 45.1000, Lng: 9.1000}
	farther := Position{Lat: 45.1005, Lng: 9.1005}

	segments := SplitSegments([]Position{base, near, far, farther})
	require.Len(t, segments, 2)
	assert.Len(t, segments[0], 2)
	assert.Len(t, segments[1], 2)
}

func TestSplitSegmentsEdgeCases(t *testing.T) {
	assert.Nil(t, SplitSegments(nil))
	assert.Nil(t, SplitSegments([]Position{}))

	single := SplitSegments([]Position{{Lat: 45, Lng: 9}})
	require.Len(t, single, 1)
	assert.Len(t, single[0], 1)
}

func TestLastPositionUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer redisClient.Close()

	var deviceCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deviceCalls.Add(1)
		_ = json.NewEncoder(w).Encode(Device{IMEI: "123", Lat: 45.1, Lng: 9.2, TimestampPosition: 99})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "account", "token", nil)
	service := NewService(client, redisClient, time.Minute, discardLogger())

	pos, err := service.LastPosition(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, 45.1, pos.Lat)
	assert.Equal(t, int64(99), pos.Timestamp)

	pos, err = service.LastPosition(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, 9.2, pos.Lng)
	assert.Equal(t, int32(1), deviceCalls.Load())
}

func TestLastPositionCacheExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer redisClient.Close()

	var deviceCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deviceCalls.Add(1)
		_ = json.NewEncoder(w).Encode(Device{IMEI: "123", Lat: 45.1})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "account", "token", nil)
	service := NewService(client, redisClient, time.Minute, discardLogger())

	_, err := service.LastPosition(context.Background(), "123")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = service.LastPosition(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, int32(2), deviceCalls.Load())
}

func TestRefreshPositionsStoresEveryDevice(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer redisClient.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/external_api/v1/devices", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]Device{
			{IMEI: "111", Lat: 45.0},
			{IMEI: "222", Lat: 46.0},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "account", "token", nil)
	service := NewService(client, redisClient, time.Minute, discardLogger())

	require.NoError(t, service.RefreshPositions(context.Background()))
	assert.True(t, mr.Exists("tracking:position:111"))
	assert.True(t, mr.Exists("tracking:position:222"))
}

func TestClientRejectsNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "account", "bad-token", nil)
	_, err := client.Devices(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprint(http.StatusUnauthorized))
}
