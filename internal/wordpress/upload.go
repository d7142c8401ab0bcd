package wordpress

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/seasistemi/deliveryops/internal/auth"
)

// Upload streams a file as multipart form data to a wp-json endpoint and
// decodes the response. Extra fields travel alongside the file part.
func Upload[T any](ctx context.Context, c *Client, endpoint, fieldName, fileName string, file io.Reader, fields map[string]string) (T, error) {
	var out T

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		part, err := writer.CreateFormFile(fieldName, fileName)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		for k, v := range fields {
			if err := writer.WriteField(k, v); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, pr)
	if err != nil {
		return out, fmt.Errorf("wordpress: build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token := auth.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return out, fmt.Errorf("wordpress: upload %s: %w", endpoint, err)
	}
	if c.observer != nil {
		c.observer.ObserveUpstream("wordpress", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		apiErr := newAPIError(resp)
		if c.logger != nil {
			c.logger.Warn("wordpress upload failed",
				slog.String("endpoint", endpoint),
				slog.Int("status", resp.StatusCode))
		}
		return out, apiErr
	}
	if err := decodeInto(resp, &out); err != nil {
		return out, fmt.Errorf("wordpress: decode upload response: %w", err)
	}
	return out, nil
}
