// Package quotes fetches the auxiliary quote shown on the feed.
package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/blogit/internal/client/models"
	"github.com/dmitrijs2005/blogit/internal/common"
)

// ErrNoQuote is returned when the service answers with an empty list.
var ErrNoQuote = errors.New("quote service returned no quotes")

// NinjasClient reads quotes from an api-ninjas compatible endpoint:
// GET url with an X-Api-Key header, answering a JSON array of quotes.
type NinjasClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewNinjasClient(url, apiKey string, timeout time.Duration) *NinjasClient {
	return &NinjasClient{url: url, apiKey: apiKey, httpClient: &http.Client{Timeout: timeout}}
}

// Fetch returns the first quote of the response.
func (c *NinjasClient) Fetch(ctx context.Context) (*models.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(common.APIKeyHeaderName, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return nil, fmt.Errorf("quote request failed: %s; body: %s", resp.Status, string(b))
	}

	var list []models.Quote
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	if len(list) == 0 {
		return nil, ErrNoQuote
	}
	return &list[0], nil
}
