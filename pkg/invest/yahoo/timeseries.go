package yahoo

import (
	"context"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/table"
)

// metricKey converts a catalog line-item name to the provider's timeseries
// type key: a period prefix plus the name with spaces removed, e.g.
// "Total Revenue" -> "annualTotalRevenue" or "trailingTotalRevenue".
func metricKey(prefix, name string) string {
	return prefix + strings.ReplaceAll(name, " ", "")
}

type timeseriesEnvelope struct {
	Timeseries struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  json.RawMessage              `json:"error"`
	} `json:"timeseries"`
}

type timeseriesMeta struct {
	Symbol []string `json:"symbol"`
	Type   []string `json:"type"`
}

type timeseriesPoint struct {
	AsOfDate      string `json:"asOfDate"`
	PeriodType    string `json:"periodType"`
	ReportedValue struct {
		Raw *float64 `json:"raw"`
		Fmt string   `json:"fmt"`
	} `json:"reportedValue"`
}

// fundamentals fetches one statement category for a symbol. The returned
// statement has period columns most recent first and rows in metric list
// order, limited to the metrics the provider actually reported.
func (c *Client) fundamentals(ctx context.Context, symbol, prefix string, metrics []string) (*table.Statement, error) {
	keys := make([]string, 0, len(metrics))
	names := make(map[string]string, len(metrics))
	for _, m := range metrics {
		k := metricKey(prefix, m)
		keys = append(keys, k)
		names[k] = m
	}

	now := time.Now()
	query := url.Values{}
	query.Set("symbol", symbol)
	query.Set("type", strings.Join(keys, ","))
	query.Set("period1", strconv.FormatInt(now.AddDate(-historyYears, 0, 0).Unix(), 10))
	query.Set("period2", strconv.FormatInt(now.Unix(), 10))
	query.Set("merge", "false")

	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var env timeseriesEnvelope
	if err := c.get(cctx, "/ws/fundamentals-timeseries/v1/finance/timeseries/"+url.PathEscape(symbol), query, &env); err != nil {
		return nil, err
	}

	// One result entry per requested type; the series itself sits under a
	// key named after the type.
	cells := make(map[string]map[string]table.Value)
	dates := make(map[string]struct{})
	for _, entry := range env.Timeseries.Result {
		raw, ok := entry["meta"]
		if !ok {
			continue
		}
		var meta timeseriesMeta
		if err := json.Unmarshal(raw, &meta); err != nil || len(meta.Type) == 0 {
			continue
		}
		key := meta.Type[0]
		name, ok := names[key]
		if !ok {
			continue
		}
		series, ok := entry[key]
		if !ok {
			continue
		}
		var points []*timeseriesPoint
		if err := json.Unmarshal(series, &points); err != nil {
			continue
		}
		for _, p := range points {
			if p == nil || p.AsOfDate == "" || p.ReportedValue.Raw == nil {
				continue
			}
			if cells[name] == nil {
				cells[name] = make(map[string]table.Value)
			}
			cells[name][p.AsOfDate] = table.Num(*p.ReportedValue.Raw)
			dates[p.AsOfDate] = struct{}{}
		}
	}

	// ISO dates sort lexicographically; most recent column first.
	periods := make([]string, 0, len(dates))
	for d := range dates {
		periods = append(periods, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(periods)))

	st := table.New(periods...)
	for _, m := range metrics {
		row, ok := cells[m]
		if !ok {
			continue
		}
		values := make([]table.Value, 0, len(periods))
		for _, d := range periods {
			values = append(values, row[d])
		}
		st.Append(m, values...)
	}
	return st, nil
}

// Financials returns the annual income statement table.
func (c *Client) Financials(ctx context.Context, symbol string) (*table.Statement, error) {
	return c.fundamentals(ctx, symbol, "annual", c.catalog.Financial)
}

// TTMFinancials returns the trailing-twelve-month income statement table.
func (c *Client) TTMFinancials(ctx context.Context, symbol string) (*table.Statement, error) {
	return c.fundamentals(ctx, symbol, "trailing", c.catalog.Financial)
}

// BalanceSheet returns the annual balance sheet table. The provider has no
// trailing variant for balance sheets.
func (c *Client) BalanceSheet(ctx context.Context, symbol string) (*table.Statement, error) {
	return c.fundamentals(ctx, symbol, "annual", c.catalog.Balance)
}

// CashFlow returns the annual cash-flow table.
func (c *Client) CashFlow(ctx context.Context, symbol string) (*table.Statement, error) {
	return c.fundamentals(ctx, symbol, "annual", c.catalog.CashFlow)
}

// TTMCashFlow returns the trailing-twelve-month cash-flow table.
func (c *Client) TTMCashFlow(ctx context.Context, symbol string) (*table.Statement, error) {
	return c.fundamentals(ctx, symbol, "trailing", c.catalog.CashFlow)
}
