package vehicles

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seasistemi/deliveryops/internal/tracking"
	"github.com/seasistemi/deliveryops/internal/wordpress"
)

type stubDevices struct {
	devices map[string]tracking.Device
	err     error
}

func (s stubDevices) Device(ctx context.Context, imei string) (tracking.Device, error) {
	if s.err != nil {
		return tracking.Device{}, s.err
	}
	return s.devices[imei], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func vehicleBackend(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/vehicle", r.URL.Path)
		w.Header().Set("X-WP-Total", "2")
		w.Header().Set("X-WP-TotalPages", "1")
		_, _ = w.Write([]byte(`[
			{"id":1,"title":{"rendered":"Furgone 1"},"acf":{"plate":"AB123CD","imei":"111"}},
			{"id":2,"title":{"rendered":"Furgone 2"},"acf":{"plate":"EF456GH","imei":""}}
		]`))
	}))
}

func TestListWithDevicesJoinsTrackers(t *testing.T) {
	srv := vehicleBackend(t)
	defer srv.Close()

	source := stubDevices{devices: map[string]tracking.Device{
		"111": {IMEI: "111", Lat: 45.4, Lng: 9.1, Moving: true},
	}}
	service := NewService(wordpress.NewClient(srv.URL, nil), source, discardLogger())

	page, err := service.ListWithDevices(context.Background(), wordpress.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, 2, page.TotalItems)

	require.NotNil(t, page.Data[0].Device)
	assert.Equal(t, "111", page.Data[0].Device.IMEI)
	assert.True(t, page.Data[0].Device.Moving)

	// No tracker installed: the vehicle still lists, with a nil device.
	assert.Nil(t, page.Data[1].Device)
}

func TestListWithDevicesSurvivesTrackerFailure(t *testing.T) {
	srv := vehicleBackend(t)
	defer srv.Close()

	source := stubDevices{err: errors.New("tracker down")}
	service := NewService(wordpress.NewClient(srv.URL, nil), source, discardLogger())

	page, err := service.ListWithDevices(context.Background(), wordpress.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Nil(t, page.Data[0].Device)
	assert.Nil(t, page.Data[1].Device)
}

func TestListWithDevicesWithoutSource(t *testing.T) {
	srv := vehicleBackend(t)
	defer srv.Close()

	service := NewService(wordpress.NewClient(srv.URL, nil), nil, discardLogger())
	page, err := service.ListWithDevices(context.Background(), wordpress.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Nil(t, page.Data[0].Device)
}

func TestListDecodesTitles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"title":{"rendered":"Furgone &amp; rimorchio"},"acf":{"plate":"AB123CD"}}]`))
	}))
	defer srv.Close()

	service := NewService(wordpress.NewClient(srv.URL, nil), nil, discardLogger())
	page, err := service.List(context.Background(), wordpress.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Furgone & rimorchio", page.Data[0].Title.Rendered)
}
