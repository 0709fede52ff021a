package extract

import "fmt"

// EmptyInputError reports a table with no rows where one was required.
type EmptyInputError struct {
	What string
}

func (e *EmptyInputError) Error() string {
	return e.What + ": empty input table"
}

// MissingDataError reports that the provider had no data for a required
// statement or field set.
type MissingDataError struct {
	Symbol    string
	Statement string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("no %s data available for %s", e.Statement, e.Symbol)
}
