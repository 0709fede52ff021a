// Package extract turns raw provider statements into the normalized wide
// tables the pipeline writes to disk: one extractor per statement category,
// each composing the slicer (and, where the provider has a TTM variant, the
// TTM merger) against that category's metric list.
package extract

import (
	"context"

	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/catalog"
	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/table"
)

// Provider supplies raw statement tables and the scalar info snapshot for a
// symbol. Statements are line-item indexed with period columns in provider
// order; the balance sheet has no TTM variant.
type Provider interface {
	Financials(ctx context.Context, symbol string) (*table.Statement, error)
	TTMFinancials(ctx context.Context, symbol string) (*table.Statement, error)
	BalanceSheet(ctx context.Context, symbol string) (*table.Statement, error)
	CashFlow(ctx context.Context, symbol string) (*table.Statement, error)
	TTMCashFlow(ctx context.Context, symbol string) (*table.Statement, error)
	Info(ctx context.Context, symbol string) (Info, error)
}

// Info is the provider's scalar field dictionary. Looking up a missing key
// yields the absence marker rather than a sentinel.
type Info map[string]table.Value

func (i Info) Lookup(key string) table.Value { return i[key] }

// Extractor composes the slicer and merger against one catalog. Construct it
// once per run; it holds no mutable state.
type Extractor struct {
	Provider Provider
	Catalog  catalog.Catalog
}

// Financials extracts the income-statement slice with TTM values merged in
// as the leading column.
func (e *Extractor) Financials(ctx context.Context, symbol string) (*table.Statement, error) {
	std, err := e.Provider.Financials(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if std.Empty() {
		return nil, &MissingDataError{Symbol: symbol, Statement: "annual financial"}
	}
	ttm, err := e.Provider.TTMFinancials(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if ttm.Empty() {
		return nil, &MissingDataError{Symbol: symbol, Statement: "TTM financial"}
	}
	slice, err := Slice(std, e.Catalog.Financial)
	if err != nil {
		return nil, err
	}
	return MergeTTM(slice, ttm, e.Catalog.Financial)
}

// BalanceSheet extracts the balance-sheet slice. The provider has no TTM
// balance sheet, so there is nothing to merge.
func (e *Extractor) BalanceSheet(ctx context.Context, symbol string) (*table.Statement, error) {
	std, err := e.Provider.BalanceSheet(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if std.Empty() {
		return nil, &MissingDataError{Symbol: symbol, Statement: "balance sheet"}
	}
	return Slice(std, e.Catalog.Balance)
}

// CashFlow extracts the cash-flow slice with TTM values merged in.
func (e *Extractor) CashFlow(ctx context.Context, symbol string) (*table.Statement, error) {
	std, err := e.Provider.CashFlow(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if std.Empty() {
		return nil, &MissingDataError{Symbol: symbol, Statement: "annual cash flow"}
	}
	ttm, err := e.Provider.TTMCashFlow(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if ttm.Empty() {
		return nil, &MissingDataError{Symbol: symbol, Statement: "TTM cash flow"}
	}
	slice, err := Slice(std, e.Catalog.CashFlow)
	if err != nil {
		return nil, err
	}
	return MergeTTM(slice, ttm, e.Catalog.CashFlow)
}

// Market materializes the scalar market snapshot as a two-column table.
// Unlike statement slicing, every catalog field gets a row: missing fields
// default to the absence marker instead of being omitted.
func (e *Extractor) Market(ctx context.Context, symbol string) (*table.Statement, error) {
	info, err := e.Provider.Info(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if len(info) == 0 {
		return nil, &MissingDataError{Symbol: symbol, Statement: "market info"}
	}
	st := table.New("Value")
	for _, key := range e.Catalog.Market {
		st.Append(key, info.Lookup(key))
	}
	return st, nil
}
