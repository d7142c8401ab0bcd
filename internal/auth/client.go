package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// LoginResult is the jwt-auth token grant.
type LoginResult struct {
	Token           string `json:"token"`
	UserEmail       string `json:"user_email"`
	UserNicename    string `json:"user_nicename"`
	UserDisplayName string `json:"user_display_name"`
}

// Client talks to the WordPress jwt-auth plugin endpoints.
type Client struct {
	baseURL string
	hc      *http.Client
	logger  *slog.Logger
}

// NewClient constructs a Client.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 20 * time.Second},
		logger:  logger,
	}
}

// Login exchanges credentials for a JWT.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var result LoginResult
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return result, fmt.Errorf("auth: encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/wp-json/jwt-auth/v1/token", bytes.NewReader(payload))
	if err != nil {
		return result, fmt.Errorf("auth: build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return result, fmt.Errorf("auth: login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("auth: login failed with status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("auth: decode login response: %w", err)
	}
	return result, nil
}

// Validate asks the backend whether a token is still good. Any non-200 answer
// or transport failure counts as invalid; this call never errors.
func (c *Client) Validate(ctx context.Context, token string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/wp-json/jwt-auth/v1/token/validate", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.hc.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("token validation request failed", slog.Any("error", err))
		}
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
