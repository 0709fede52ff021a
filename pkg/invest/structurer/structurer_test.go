package structurer

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/table"
)

func TestMelt(t *testing.T) {
	st := table.New("TTM", "2024-09-30")
	st.Append("Net Income", table.Num(95), table.Num(94))
	st.Append("EBIT", table.None(), table.Num(123))

	recs := Melt(st, "AAPL", "Apple Inc.", "Financial Statement")
	if len(recs) != 4 {
		t.Fatalf("got %d records, want 4", len(recs))
	}
	first := recs[0]
	if first.Year != "TTM" || first.Ticker != "AAPL" || first.Company != "Apple Inc." ||
		first.Source != "Financial Statement" || first.Metric != "Net Income" {
		t.Fatalf("first record: %+v", first)
	}
	if recs[1].Value.Valid {
		t.Fatalf("EBIT TTM record should carry the absence marker: %+v", recs[1])
	}
}

func TestPivotRowCountAndOrder(t *testing.T) {
	recs := []Record{
		{Year: "2024-09-30", Ticker: "AAPL", Company: "Apple Inc.", Source: "Balance Sheet", Metric: "Total Assets", Value: table.Num(365)},
		{Year: "2023-09-30", Ticker: "AAPL", Company: "Apple Inc.", Source: "Balance Sheet", Metric: "Total Assets", Value: table.Num(353)},
		{Year: "2024-09-30", Ticker: "AAPL", Company: "Apple Inc.", Source: "Financial Statement", Metric: "Net Income", Value: table.Num(94)},
		{Year: "TTM", Ticker: "AAPL", Company: "Apple Inc.", Source: "Financial Statement", Metric: "Net Income", Value: table.Num(95)},
	}
	w := Pivot(recs)

	// One row per distinct (Year, Ticker, Company) triple.
	if len(w.Keys) != 3 {
		t.Fatalf("got %d rows, want 3", len(w.Keys))
	}
	// Sorted by year.
	if w.Keys[0].Year != "2023-09-30" || w.Keys[2].Year != "TTM" {
		t.Fatalf("row order: %+v", w.Keys)
	}
	// Columns flattened and sorted by (source, metric).
	want := []string{"Balance Sheet Total Assets", "Financial Statement Net Income"}
	if len(w.Columns) != 2 || w.Columns[0] != want[0] || w.Columns[1] != want[1] {
		t.Fatalf("columns: %v, want %v", w.Columns, want)
	}
}

func TestPivotFirstValueWins(t *testing.T) {
	recs := []Record{
		{Year: "2024", Ticker: "T", Company: "C", Source: "S", Metric: "M", Value: table.Num(1)},
		{Year: "2024", Ticker: "T", Company: "C", Source: "S", Metric: "M", Value: table.Num(2)},
	}
	w := Pivot(recs)
	if len(w.Keys) != 1 {
		t.Fatalf("duplicate key produced extra rows: %+v", w.Keys)
	}
	if v := w.Cells[w.Keys[0]]["S M"]; !v.Valid || v.Float != 1 {
		t.Fatalf("duplicate resolution: got %v, want first value 1", v)
	}
}

func writeStatement(t *testing.T, path string, st *table.Statement) {
	t.Helper()
	if err := table.WriteFile(path, st); err != nil {
		t.Fatal(err)
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()

	fin := table.New("TTM", "2024-09-30")
	fin.Append("Net Income", table.Num(95), table.Num(94))
	writeStatement(t, filepath.Join(dir, "AAPL_financials.csv"), fin)

	bal := table.New("2024-09-30")
	bal.Append("Total Assets", table.Num(365))
	writeStatement(t, filepath.Join(dir, "AAPL_balance_sheet.csv"), bal)

	cf := table.New("TTM", "2024-09-30")
	cf.Append("Capital Expenditure", table.Num(-11), table.Num(-10))
	writeStatement(t, filepath.Join(dir, "AAPL_cashflow.csv"), cf)

	s := &Structurer{Dir: dir, Ticker: "AAPL", Company: "Apple Inc.", Log: zerolog.Nop()}
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, "structured_financials.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// Header + two periods (2024-09-30, TTM).
	if len(rows) != 3 {
		t.Fatalf("structured rows = %d, want 3", len(rows))
	}
	header := strings.Join(rows[0], ",")
	if !strings.HasPrefix(header, "Year,Company Ticker,Company Name,") {
		t.Fatalf("header = %q", header)
	}
	if !strings.Contains(header, "Financial Statement Net Income") ||
		!strings.Contains(header, "Balance Sheet Total Assets") ||
		!strings.Contains(header, "Cashflow Capital Expenditure") {
		t.Fatalf("flattened columns missing: %q", header)
	}
	// Balance sheet has no TTM column, so its TTM cell is empty.
	ttmRow := rows[2]
	if ttmRow[0] != "TTM" {
		t.Fatalf("last row year = %q, want TTM", ttmRow[0])
	}

	if _, err := os.Stat(filepath.Join(dir, "structured_financials.xlsx")); err != nil {
		t.Fatalf("xlsx output missing: %v", err)
	}
}

func TestRunMissingInputIsFatal(t *testing.T) {
	s := &Structurer{Dir: t.TempDir(), Ticker: "AAPL", Company: "Apple Inc.", Log: zerolog.Nop()}
	if err := s.Run(); err == nil {
		t.Fatalf("expected error when input CSVs are missing")
	}
}
