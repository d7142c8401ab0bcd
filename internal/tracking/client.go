// Package tracking integrates the fleet-tracking API: live device data,
// historical positions and a Redis-backed last-known-position cache.
package tracking

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Device is a GPS tracker with its last reported state.
type Device struct {
	IMEI                    string  `json:"imei"`
	Name                    string  `json:"name"`
	NumericLabel            int     `json:"numeric_label"`
	TimestampActivation     int64   `json:"timestamp_activation"`
	Lng                     float64 `json:"lng"`
	Lat                     float64 `json:"lat"`
	Heading                 float64 `json:"heading"`
	Odometer                float64 `json:"odometer"`
	Altitude                float64 `json:"altitude"`
	Speed                   float64 `json:"speed"`
	Satellites              int     `json:"satellites"`
	Moving                  bool    `json:"moving"`
	TimestampPosition       int64   `json:"timestamp_position"`
	TimestampLastTripChange int64   `json:"timestamp_last_trip_change"`
	HasGPS                  bool    `json:"has_GPS"`
	IsConnected             bool    `json:"is_connected"`
	IsPowerOn               bool    `json:"is_power_on"`
}

// Position is one recorded GPS point.
type Position struct {
	Lng       float64 `json:"lng"`
	Lat       float64 `json:"lat"`
	Heading   float64 `json:"heading"`
	Altitude  float64 `json:"altitude"`
	Speed     float64 `json:"speed"`
	Timestamp int64   `json:"timestamp"`
	Type      int     `json:"type"`
	Odometer  float64 `json:"odometer,omitempty"`
}

// positionPage is one page of the positions history endpoint.
type positionPage struct {
	Limit   int        `json:"limit"`
	Skip    int        `json:"skip"`
	Data    []Position `json:"data"`
	HasMore bool       `json:"has_more"`
}

// Client talks to the fleet-tracking REST API using basic auth.
type Client struct {
	baseURL string
	auth    string
	hc      *http.Client
	logger  *slog.Logger
}

// NewClient constructs a Client with the account username and API token.
func NewClient(baseURL, username, token string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+token)),
		hc:      &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, target any) error {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("tracking: build request: %w", err)
	}
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("tracking: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tracking: %s answered status %d", endpoint, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

// Devices lists every tracker on the account.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	var devices []Device
	if err := c.get(ctx, "/external_api/v1/devices", nil, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// Device fetches a single tracker by IMEI.
func (c *Client) Device(ctx context.Context, imei string) (Device, error) {
	var device Device
	if err := c.get(ctx, "/external_api/v1/device/"+imei, nil, &device); err != nil {
		return Device{}, err
	}
	return device, nil
}

// historyPage fetches one page of position history. Timestamps travel in
// milliseconds.
func (c *Client) historyPage(ctx context.Context, imei string, start, stop time.Time, filterType []int, limit, skip int) (positionPage, error) {
	params := url.Values{}
	params.Set("start", strconv.FormatInt(start.UnixMilli(), 10))
	params.Set("stop", strconv.FormatInt(stop.UnixMilli(), 10))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("skip", strconv.Itoa(skip))
	if len(filterType) > 0 {
		parts := make([]string, len(filterType))
		for i, t := range filterType {
			parts[i] = strconv.Itoa(t)
		}
		params.Set("filter_type", strings.Join(parts, ","))
	}

	var page positionPage
	if err := c.get(ctx, "/external_api/v1/positionsHistory/"+imei, params, &page); err != nil {
		return positionPage{}, err
	}
	return page, nil
}
