package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/catalog"
	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/extract"
	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/table"
)

// countingProvider serves a fixed statement for everything and counts calls.
type countingProvider struct {
	calls int
}

func (p *countingProvider) statement() *table.Statement {
	st := table.New("2024-09-30")
	st.Append("Total Revenue", table.Num(391))
	st.Append("Total Assets", table.Num(365))
	st.Append("Capital Expenditure", table.Num(-11))
	return st
}

func (p *countingProvider) Financials(ctx context.Context, symbol string) (*table.Statement, error) {
	p.calls++
	return p.statement(), nil
}
func (p *countingProvider) TTMFinancials(ctx context.Context, symbol string) (*table.Statement, error) {
	p.calls++
	return p.statement(), nil
}
func (p *countingProvider) BalanceSheet(ctx context.Context, symbol string) (*table.Statement, error) {
	p.calls++
	return p.statement(), nil
}
func (p *countingProvider) CashFlow(ctx context.Context, symbol string) (*table.Statement, error) {
	p.calls++
	return p.statement(), nil
}
func (p *countingProvider) TTMCashFlow(ctx context.Context, symbol string) (*table.Statement, error) {
	p.calls++
	return p.statement(), nil
}
func (p *countingProvider) Info(ctx context.Context, symbol string) (extract.Info, error) {
	p.calls++
	return extract.Info{"currentPrice": table.Num(232)}, nil
}

type fakeValidator struct {
	bad map[string]bool
}

func (v *fakeValidator) Validate(ctx context.Context, symbol string) (string, error) {
	if v.bad[symbol] {
		return "", fmt.Errorf("no market price for %s", symbol)
	}
	return symbol + " Inc.", nil
}

func newRunner(dir string, p extract.Provider, v Validator) *Runner {
	return &Runner{
		Validator: v,
		Extractor: &extract.Extractor{Provider: p, Catalog: catalog.Default()},
		OutDir:    dir,
		Log:       zerolog.Nop(),
	}
}

func outputFiles(ticker string) []string {
	return []string{
		ticker + "_financials.csv",
		ticker + "_balance_sheet.csv",
		ticker + "_cashflow.csv",
		ticker + "_market.csv",
	}
}

func TestRunWritesAllFiles(t *testing.T) {
	dir := t.TempDir()
	p := &countingProvider{}
	r := newRunner(dir, p, &fakeValidator{})

	if err := r.Run(context.Background(), []string{"aapl"}); err != nil {
		t.Fatal(err)
	}
	for _, f := range outputFiles("AAPL") {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Fatalf("missing output %s: %v", f, err)
		}
	}
}

func TestRunIdempotent(t *testing.T) {
	dir := t.TempDir()
	p := &countingProvider{}
	r := newRunner(dir, p, &fakeValidator{})

	if err := r.Run(context.Background(), []string{"AAPL"}); err != nil {
		t.Fatal(err)
	}
	before := map[string][]byte{}
	for _, f := range outputFiles("AAPL") {
		data, err := os.ReadFile(filepath.Join(dir, f))
		if err != nil {
			t.Fatal(err)
		}
		before[f] = data
	}

	p.calls = 0
	if err := r.Run(context.Background(), []string{"AAPL"}); err != nil {
		t.Fatal(err)
	}
	if p.calls != 0 {
		t.Fatalf("second run made %d provider calls, want 0", p.calls)
	}
	for f, want := range before {
		got, err := os.ReadFile(filepath.Join(dir, f))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != string(want) {
			t.Fatalf("%s changed between runs", f)
		}
	}
}

func TestRunRecomputesAllButOnlyWritesMissing(t *testing.T) {
	dir := t.TempDir()
	p := &countingProvider{}
	r := newRunner(dir, p, &fakeValidator{})

	// Pre-create one file with sentinel content.
	sentinel := "Metrics,Value\nsentinel,1\n"
	kept := filepath.Join(dir, "AAPL_market.csv")
	if err := os.WriteFile(kept, []byte(sentinel), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := r.Run(context.Background(), []string{"AAPL"}); err != nil {
		t.Fatal(err)
	}
	// All four extractors ran even though one file existed.
	if p.calls != 6 {
		t.Fatalf("provider calls = %d, want 6 (4 categories, 2 with TTM)", p.calls)
	}
	// The existing file was never overwritten.
	got, err := os.ReadFile(kept)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != sentinel {
		t.Fatalf("existing file was rewritten: %q", got)
	}
	// Missing siblings were written.
	if _, err := os.Stat(filepath.Join(dir, "AAPL_financials.csv")); err != nil {
		t.Fatalf("missing sibling not written: %v", err)
	}
}

func TestRunAbortsOnInvalidTickerBeforeAnyWrite(t *testing.T) {
	dir := t.TempDir()
	p := &countingProvider{}
	r := newRunner(dir, p, &fakeValidator{bad: map[string]bool{"BAD": true}})

	err := r.Run(context.Background(), []string{"AAPL", "BAD"})
	var invalid *InvalidTickerError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidTickerError", err)
	}
	if invalid.Symbol != "BAD" {
		t.Fatalf("error names %q, want BAD", invalid.Symbol)
	}
	if p.calls != 0 {
		t.Fatalf("provider was called %d times before admission finished", p.calls)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("files written despite aborted run: %v", entries)
	}
}
