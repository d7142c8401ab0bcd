package deliveries

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seasistemi/deliveryops/internal/wordpress"
)

func TestByZoneAppliesScopedDefaults(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/delivery", r.URL.Path)
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	service := NewService(wordpress.NewClient(srv.URL, nil), nil)
	_, err := service.ByZone(context.Background(), "42", wordpress.ListQuery{})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "page=1")
	assert.Contains(t, gotQuery, "per_page=100")
	assert.Contains(t, gotQuery, "orderby=id")
	assert.Contains(t, gotQuery, "order=asc")
	assert.Contains(t, gotQuery, "meta_value_zone_id=42")
}

func TestByZoneKeepsCallerOverrides(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	service := NewService(wordpress.NewClient(srv.URL, nil), nil)
	_, err := service.ByZone(context.Background(), "42", wordpress.ListQuery{
		Page:    3,
		PerPage: 10,
		OrderBy: "date",
		Order:   "desc",
	})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "page=3")
	assert.Contains(t, gotQuery, "per_page=10")
	assert.Contains(t, gotQuery, "orderby=date")
	assert.Contains(t, gotQuery, "order=desc")
}

func TestByRouteScopesOnRouteID(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	service := NewService(wordpress.NewClient(srv.URL, nil), nil)
	_, err := service.ByRoute(context.Background(), "7", wordpress.ListQuery{})
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "meta_value_route_id=7")
}

func TestAddNoteBodyShape(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/ts-delivery/v1/add-note", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	service := NewService(wordpress.NewClient(srv.URL, nil), nil)
	require.NoError(t, service.AddNote(context.Background(), 15, "citofono rotto"))

	assert.Equal(t, float64(15), gotBody["delivery_id"])
	assert.Equal(t, "citofono rotto", gotBody["note"])
}

func TestSetCheckSendsExactlyOneFlag(t *testing.T) {
	for _, check := range []Check{CheckPrepared, CheckLoaded, CheckDelivered} {
		t.Run(string(check), func(t *testing.T) {
			var gotBody map[string]any
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/wp-json/ts-delivery/v1/toggle-check", r.URL.Path)
				raw, _ := io.ReadAll(r.Body)
				require.NoError(t, json.Unmarshal(raw, &gotBody))
				_, _ = w.Write([]byte(`{}`))
			}))
			defer srv.Close()

			service := NewService(wordpress.NewClient(srv.URL, nil), nil)
			require.NoError(t, service.SetCheck(context.Background(), 8, check, true))

			assert.Equal(t, float64(8), gotBody["delivery_id"])
			assert.Equal(t, true, gotBody[string(check)])
			// delivery_id plus the single flag, nothing else.
			assert.Len(t, gotBody, 2)
		})
	}
}

func TestSetCheckRejectsUnknownFlag(t *testing.T) {
	service := NewService(wordpress.NewClient("http://unused.test", nil), nil)
	err := service.SetCheck(context.Background(), 8, Check("is_lost"), true)
	assert.Error(t, err)
}

func TestPdfEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/seasistemi/v1/pdf/delivery/31", r.URL.Path)
		_, _ = w.Write([]byte(`{"url":"https://example.test/delivery-31.pdf"}`))
	}))
	defer srv.Close()

	service := NewService(wordpress.NewClient(srv.URL, nil), nil)
	result, err := service.Pdf(context.Background(), 31)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/delivery-31.pdf", result.URL)
}

func TestListDecodesTitles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WP-Total", "1")
		w.Header().Set("X-WP-TotalPages", "1")
		_, _ = w.Write([]byte(`[{"id":1,"title":{"rendered":"Bar &amp; Forno"},"acf":{"zone_id":"3"}}]`))
	}))
	defer srv.Close()

	service := NewService(wordpress.NewClient(srv.URL, nil), nil)
	page, err := service.List(context.Background(), wordpress.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Bar & Forno", page.Data[0].Title.Rendered)
	assert.Equal(t, "3", page.Data[0].ACF.ZoneID)
	assert.Equal(t, 1, page.TotalItems)
}
