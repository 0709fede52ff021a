package yahoo

import (
	"context"
	"fmt"

	yfgo "github.com/komsit37/yf-go"
)

// Validate checks a symbol against the provider's price module and returns
// the company name. A symbol is valid only when the lookup succeeds and
// reports a regular market price; lookup errors are not retried.
func (c *Client) Validate(ctx context.Context, symbol string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.quotes.QuoteSummaryTyped(cctx, symbol, []yfgo.QuoteSummaryModule{yfgo.ModulePrice})
	if err != nil {
		return "", err
	}
	if res.Price == nil || res.Price.RegularMarketPrice.Raw == nil {
		return "", fmt.Errorf("no market price for %s", symbol)
	}
	if res.Price.ShortName != "" {
		return res.Price.ShortName, nil
	}
	if res.Price.LongName != "" {
		return res.Price.LongName, nil
	}
	return symbol, nil
}
