package extract

import (
	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/table"
)

// Slice normalizes a raw statement against a metric list: it keeps the
// intersection of the table's rows and the list (in table order) and renames
// every period column to an ISO-8601 calendar date. "Metrics" and "TTM"
// columns pass through unchanged.
func Slice(st *table.Statement, metrics []string) (*table.Statement, error) {
	if st.Empty() {
		return nil, &EmptyInputError{What: "slice"}
	}
	out := st.Select(metrics)
	for i, p := range out.Periods {
		iso, err := table.NormalizePeriod(p)
		if err != nil {
			return nil, err
		}
		out.Periods[i] = iso
	}
	return out, nil
}
