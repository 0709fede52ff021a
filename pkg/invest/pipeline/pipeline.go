// Package pipeline orchestrates a run over the requested tickers: validate
// every symbol up front, then fetch, extract and write the per-ticker CSV
// files, skipping tickers whose outputs already exist.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/extract"
	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/render"
	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/table"
)

// Validator admits a ticker symbol into a run, returning the company name.
type Validator interface {
	Validate(ctx context.Context, symbol string) (string, error)
}

// InvalidTickerError reports a symbol that failed validation. Any invalid
// symbol aborts the whole run before any file is written.
type InvalidTickerError struct {
	Symbol string
	Err    error
}

func (e *InvalidTickerError) Error() string {
	return fmt.Sprintf("invalid ticker %s: %v", e.Symbol, e.Err)
}

func (e *InvalidTickerError) Unwrap() error { return e.Err }

// Runner drives one run. Renderer is optional; when set, extracted tables
// are previewed to Writer.
type Runner struct {
	Validator Validator
	Extractor *extract.Extractor
	OutDir    string
	Renderer  render.Renderer
	Writer    io.Writer
	Log       zerolog.Logger
}

// category ties one statement type to its output file suffix and extractor.
type category struct {
	name    string
	suffix  string
	extract func(ctx context.Context, symbol string) (*table.Statement, error)
}

func (r *Runner) categories() []category {
	return []category{
		{"financial", "_financials.csv", r.Extractor.Financials},
		{"balance sheet", "_balance_sheet.csv", r.Extractor.BalanceSheet},
		{"cash flow", "_cashflow.csv", r.Extractor.CashFlow},
		{"market", "_market.csv", r.Extractor.Market},
	}
}

// Run validates every requested symbol, then processes them in order.
// Validation is all-or-nothing: one bad symbol fails the run before any
// provider fetch or file write happens. Extraction errors are likewise
// terminal; there is no per-ticker isolation.
func (r *Runner) Run(ctx context.Context, symbols []string) error {
	for _, sym := range symbols {
		name, err := r.Validator.Validate(ctx, sym)
		if err != nil {
			return &InvalidTickerError{Symbol: sym, Err: err}
		}
		r.Log.Info().Str("ticker", sym).Str("company", name).Msg("validated")
	}
	for _, sym := range symbols {
		if err := r.runTicker(ctx, sym); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runTicker(ctx context.Context, symbol string) error {
	ticker := strings.ToUpper(symbol)
	cats := r.categories()

	missing := make([]int, 0, len(cats))
	for i, cat := range cats {
		if _, err := os.Stat(r.outputPath(ticker, cat)); os.IsNotExist(err) {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		r.Log.Info().Str("ticker", ticker).Msg("all output files exist, skipping")
		return nil
	}

	// Extraction is not per-file granular: one missing file recomputes all
	// four categories. Existing sibling files are still never rewritten.
	results := make([]*table.Statement, len(cats))
	for i, cat := range cats {
		st, err := cat.extract(ctx, symbol)
		if err != nil {
			return err
		}
		results[i] = st
		r.Log.Debug().Str("ticker", ticker).Str("statement", cat.name).Int("rows", len(st.Items)).Msg("extracted")
		if r.Renderer != nil && r.Writer != nil {
			if err := r.Renderer.Render(r.Writer, ticker+" "+cat.name, st); err != nil {
				return err
			}
		}
	}

	for _, i := range missing {
		path := r.outputPath(ticker, cats[i])
		if err := table.WriteFile(path, results[i]); err != nil {
			return err
		}
		r.Log.Info().Str("file", path).Msg("written")
	}
	return nil
}

func (r *Runner) outputPath(ticker string, cat category) string {
	return filepath.Join(r.OutDir, ticker+cat.suffix)
}
