// Package structurer combines the saved per-category wide CSVs into one
// structured table: melt each into long records, concatenate, then pivot to
// one row per (Year, Ticker, Company) with flattened "<Source> <Metric>"
// columns.
package structurer

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/table"
)

// Record is one melted observation.
type Record struct {
	Year    string
	Ticker  string
	Company string
	Source  string
	Metric  string
	Value   table.Value
}

// Melt unpivots a wide category table into long records, one per
// (period, line item) pair, tagged with ticker, company and source.
func Melt(st *table.Statement, ticker, company, source string) []Record {
	recs := make([]Record, 0, len(st.Items)*len(st.Periods))
	for _, period := range st.Periods {
		for _, it := range st.Items {
			recs = append(recs, Record{
				Year:    period,
				Ticker:  ticker,
				Company: company,
				Source:  source,
				Metric:  it.Name,
				Value:   st.At(it.Name, period),
			})
		}
	}
	return recs
}

// Key identifies one structured row.
type Key struct {
	Year    string
	Ticker  string
	Company string
}

// Wide is the pivoted structured table.
type Wide struct {
	Keys    []Key               // row order
	Columns []string            // flattened "<Source> <Metric>" column order
	Cells   map[Key]map[string]table.Value
}

// Pivot builds the structured table from long records. Exactly one row
// exists per distinct (Year, Ticker, Company); the first value seen for a
// duplicate (row, column) pair wins and later ones are dropped silently.
// Rows sort by key, columns by (source, metric).
func Pivot(recs []Record) *Wide {
	type column struct{ source, metric string }
	colSeen := make(map[string]struct{})
	var cols []column

	w := &Wide{Cells: make(map[Key]map[string]table.Value)}
	keySeen := make(map[Key]struct{})
	for _, rec := range recs {
		k := Key{Year: rec.Year, Ticker: rec.Ticker, Company: rec.Company}
		if _, ok := keySeen[k]; !ok {
			keySeen[k] = struct{}{}
			w.Keys = append(w.Keys, k)
		}
		name := rec.Source + " " + rec.Metric
		if _, ok := colSeen[name]; !ok {
			colSeen[name] = struct{}{}
			cols = append(cols, column{source: rec.Source, metric: rec.Metric})
		}
		row := w.Cells[k]
		if row == nil {
			row = make(map[string]table.Value)
			w.Cells[k] = row
		}
		if _, ok := row[name]; !ok {
			row[name] = rec.Value
		}
	}

	sort.Slice(w.Keys, func(i, j int) bool {
		a, b := w.Keys[i], w.Keys[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Ticker != b.Ticker {
			return a.Ticker < b.Ticker
		}
		return a.Company < b.Company
	})
	sort.Slice(cols, func(i, j int) bool {
		if cols[i].source != cols[j].source {
			return cols[i].source < cols[j].source
		}
		return cols[i].metric < cols[j].metric
	})
	w.Columns = make([]string, 0, len(cols))
	for _, c := range cols {
		w.Columns = append(w.Columns, c.source+" "+c.metric)
	}
	return w
}

// Header returns the full column header row.
func (w *Wide) Header() []string {
	return append([]string{"Year", "Company Ticker", "Company Name"}, w.Columns...)
}

// Structurer loads the three persisted category CSVs for one ticker and
// writes the combined structured table. A missing input file is fatal.
type Structurer struct {
	Dir     string
	Ticker  string
	Company string
	Log     zerolog.Logger
}

// source order matters: it is the concatenation order, which decides which
// value wins on duplicates.
type sourceFile struct {
	suffix string
	name   string
}

func sourceFiles() []sourceFile {
	return []sourceFile{
		{"_balance_sheet.csv", "Balance Sheet"},
		{"_cashflow.csv", "Cashflow"},
		{"_financials.csv", "Financial Statement"},
	}
}

// Load reads the category CSVs and melts them into one record set.
func (s *Structurer) Load() ([]Record, error) {
	var recs []Record
	for _, src := range sourceFiles() {
		path := filepath.Join(s.Dir, s.Ticker+src.suffix)
		st, err := table.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s table: %w", src.name, err)
		}
		recs = append(recs, Melt(st, s.Ticker, s.Company, src.name)...)
		s.Log.Debug().Str("source", src.name).Int("records", len(recs)).Msg("melted")
	}
	return recs, nil
}

// Run builds the structured table and writes both output formats,
// overwriting any previous output.
func (s *Structurer) Run() error {
	recs, err := s.Load()
	if err != nil {
		return err
	}
	wide := Pivot(recs)

	csvPath := filepath.Join(s.Dir, "structured_financials.csv")
	if err := writeCSV(csvPath, wide); err != nil {
		return err
	}
	s.Log.Info().Str("file", csvPath).Int("rows", len(wide.Keys)).Msg("written")

	xlsxPath := filepath.Join(s.Dir, "structured_financials.xlsx")
	if err := writeXLSX(xlsxPath, wide); err != nil {
		return err
	}
	s.Log.Info().Str("file", xlsxPath).Msg("written")
	return nil
}
