// Package yahoo implements the market-data provider boundary against Yahoo
// Finance. Ticker validation goes through the yf-go quote client; statement
// tables and the scalar snapshot come from the fundamentals-timeseries and
// quoteSummary endpoints, which yf-go does not cover.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	yfgo "github.com/komsit37/yf-go"

	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/catalog"
)

const (
	defaultBaseURL = "https://query1.finance.yahoo.com"
	userAgent      = "Mozilla/5.0"

	// Years of annual history requested from the timeseries endpoint.
	historyYears = 5
)

// Client talks to Yahoo Finance. Construct it once per run with the catalog
// that decides which line items are fetched.
type Client struct {
	http    *http.Client
	quotes  *yfgo.Client
	catalog catalog.Catalog
	timeout time.Duration
	base    string
}

// NewClient returns a client using the given per-request timeout.
func NewClient(cat catalog.Catalog, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		quotes:  yfgo.NewClient(),
		catalog: cat,
		timeout: timeout,
		base:    defaultBaseURL,
	}
}

// get performs a GET against the given API path and decodes the JSON body
// into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
