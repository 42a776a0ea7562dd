package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SheetWebhook appends rows to a Google Sheet through an Apps Script web app
// that accepts a JSON object per row.
type SheetWebhook struct {
	url    string
	client *http.Client
}

// NewSheetWebhook creates a webhook sink. A nil client gets a 10 second timeout.
func NewSheetWebhook(url string, client *http.Client) *SheetWebhook {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SheetWebhook{url: url, client: client}
}

// Append posts row as JSON.
func (s *SheetWebhook) Append(ctx context.Context, row any) error {
	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to encode sheet row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sheet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sheet webhook request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("sheet webhook returned status %d", resp.StatusCode)
	}
	return nil
}
