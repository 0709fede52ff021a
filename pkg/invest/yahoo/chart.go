package yahoo

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/table"
)

type chartEnvelope struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol   string `json:"symbol"`
				Currency string `json:"currency"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
				Adjclose []struct {
					Adjclose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error json.RawMessage `json:"error"`
	} `json:"chart"`
}

// Bar is one daily price bar.
type Bar struct {
	Date     time.Time
	Open     table.Value
	High     table.Value
	Low      table.Value
	Close    table.Value
	AdjClose table.Value
	Volume   int64
}

// History fetches daily price bars between start and end.
func (c *Client) History(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	query := url.Values{}
	query.Set("period1", strconv.FormatInt(start.Unix(), 10))
	query.Set("period2", strconv.FormatInt(end.Unix(), 10))
	query.Set("interval", "1d")
	query.Set("events", "div,split")

	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var env chartEnvelope
	if err := c.get(cctx, "/v8/finance/chart/"+url.PathEscape(symbol), query, &env); err != nil {
		return nil, err
	}
	if len(env.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart data for %s", symbol)
	}
	res := env.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote series for %s", symbol)
	}
	quote := res.Indicators.Quote[0]
	var adj []*float64
	if len(res.Indicators.Adjclose) > 0 {
		adj = res.Indicators.Adjclose[0].Adjclose
	}

	opt := func(series []*float64, i int) table.Value {
		if i >= len(series) || series[i] == nil {
			return table.None()
		}
		return table.Num(*series[i])
	}

	bars := make([]Bar, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		bar := Bar{
			Date:     time.Unix(ts, 0).UTC(),
			Open:     opt(quote.Open, i),
			High:     opt(quote.High, i),
			Low:      opt(quote.Low, i),
			Close:    opt(quote.Close, i),
			AdjClose: opt(adj, i),
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

// WriteHistoryCSV writes price bars in the conventional daily-price layout.
func WriteHistoryCSV(w io.Writer, bars []Bar) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume"}); err != nil {
		return err
	}
	for _, b := range bars {
		rec := []string{
			b.Date.Format(table.DateFormat),
			b.Open.String(),
			b.High.String(),
			b.Low.String(),
			b.Close.String(),
			b.AdjClose.String(),
			strconv.FormatInt(b.Volume, 10),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
