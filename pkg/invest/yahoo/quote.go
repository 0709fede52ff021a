package yahoo

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/extract"
	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/table"
)

// rawValue is Yahoo's {raw, fmt} number wrapper. Raw stays a pointer so a
// missing field is distinguishable from a literal zero.
type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

type quoteSummaryEnvelope struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  json.RawMessage      `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	Price struct {
		Symbol             string   `json:"symbol"`
		ShortName          string   `json:"shortName"`
		LongName           string   `json:"longName"`
		RegularMarketPrice rawValue `json:"regularMarketPrice"`
	} `json:"price"`
	FinancialData struct {
		CurrentPrice rawValue `json:"currentPrice"`
	} `json:"financialData"`
	DefaultKeyStatistics struct {
		SharesOutstanding rawValue `json:"sharesOutstanding"`
		ForwardEps        rawValue `json:"forwardEps"`
		EnterpriseValue   rawValue `json:"enterpriseValue"`
	} `json:"defaultKeyStatistics"`
}

// Info returns the scalar field dictionary for a symbol. Fields the provider
// did not report are left out of the map entirely.
func (c *Client) Info(ctx context.Context, symbol string) (extract.Info, error) {
	query := url.Values{}
	query.Set("modules", "price,summaryDetail,financialData,defaultKeyStatistics")

	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var env quoteSummaryEnvelope
	if err := c.get(cctx, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), query, &env); err != nil {
		return nil, err
	}
	if len(env.QuoteSummary.Result) == 0 {
		return extract.Info{}, nil
	}
	res := env.QuoteSummary.Result[0]

	info := extract.Info{}
	put := func(key string, v rawValue) {
		if v.Raw != nil {
			info[key] = table.Num(*v.Raw)
		}
	}
	put("regularMarketPrice", res.Price.RegularMarketPrice)
	put("currentPrice", res.FinancialData.CurrentPrice)
	put("sharesOutstanding", res.DefaultKeyStatistics.SharesOutstanding)
	put("forwardEps", res.DefaultKeyStatistics.ForwardEps)
	put("enterpriseValue", res.DefaultKeyStatistics.EnterpriseValue)
	return info, nil
}
