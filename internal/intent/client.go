// Package intent calls the external order-intent service. The service is
// advisory only: any failure here degrades to "no hint" upstream.
package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"warunggo/internal/domain"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 1500 * time.Millisecond
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// ParseOrder asks the service to extract order items from raw text.
// Malformed entries are dropped per entry, not per response: an empty item
// name discards that entry, a non-positive qty is kept with the qty unset so
// the builder applies its own default.
func (c *Client) ParseOrder(ctx context.Context, text string) ([]domain.Hint, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("intent service is not configured")
	}
	payload := map[string]string{"text": strings.TrimSpace(text)}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse_order", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("intent service status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var out struct {
		Items      []domain.Hint `json:"items"`
		Confidence float64       `json:"confidence"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, err
	}

	hints := make([]domain.Hint, 0, len(out.Items))
	for _, item := range out.Items {
		item.Item = strings.TrimSpace(item.Item)
		if item.Item == "" {
			continue
		}
		if item.Qty < 0 {
			item.Qty = 0
		}
		hints = append(hints, item)
	}
	return hints, nil
}
