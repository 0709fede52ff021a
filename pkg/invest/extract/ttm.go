package extract

import (
	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/table"
)

// MergeTTM outer-merges trailing-twelve-month values into a periodic slice,
// keyed by line-item name. The first (most recent) column of the TTM table
// is the canonical TTM period. Output column order is "TTM" first, then the
// periodic columns in their existing order.
//
// Rows come out in two groups: metrics found in the TTM table, in metric
// list order, then periodic-only rows in periodic order. Cells a side does
// not cover hold the absence marker; metrics absent from the TTM table are
// not zero-filled.
func MergeTTM(periodic, ttm *table.Statement, metrics []string) (*table.Statement, error) {
	if periodic.Empty() {
		return nil, &EmptyInputError{What: "ttm merge: periodic"}
	}
	if ttm.Empty() || len(ttm.Periods) == 0 {
		return nil, &EmptyInputError{What: "ttm merge: ttm"}
	}
	latest := ttm.Periods[0]

	out := table.New(append([]string{table.TTMColumn}, periodic.Periods...)...)
	merged := make(map[string]struct{})
	for _, m := range metrics {
		if !ttm.Has(m) {
			continue
		}
		merged[m] = struct{}{}
		row := make([]table.Value, 0, len(out.Periods))
		row = append(row, ttm.At(m, latest))
		if it, ok := periodic.Lookup(m); ok {
			row = append(row, it.Values...)
		}
		out.Append(m, row...)
	}
	for _, it := range periodic.Items {
		if _, ok := merged[it.Name]; ok {
			continue
		}
		row := append([]table.Value{table.None()}, it.Values...)
		out.Append(it.Name, row...)
	}
	return out, nil
}
