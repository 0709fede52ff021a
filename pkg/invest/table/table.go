// Package table provides the label-indexed statement table the rest of the
// pipeline operates on: rows are financial line items, columns are reporting
// periods in the order the provider returned them.
package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Reserved column labels that pass through period normalization unchanged.
const (
	MetricsColumn = "Metrics"
	TTMColumn     = "TTM"
)

// Value is an optional numeric cell. The zero value is the absence marker,
// so a missing cell stays distinguishable from a literal zero.
type Value struct {
	Float float64
	Valid bool
}

func Num(f float64) Value { return Value{Float: f, Valid: true} }

func None() Value { return Value{} }

// String renders the cell the way it appears in CSV output: absent cells
// become empty strings.
func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float, 'f', -1, 64)
}

// ParseValue reads a CSV cell back. Empty cells are the absence marker.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("parse cell %q: %w", s, err)
	}
	return Num(f), nil
}

// Statement is one financial statement table. Row membership is by line-item
// name (set semantics), row order is whatever order rows were appended in.
type Statement struct {
	Periods []string
	Items   []LineItem
}

// LineItem is one row: a line-item name and its values aligned with Periods.
type LineItem struct {
	Name   string
	Values []Value
}

// New returns an empty statement with the given period columns.
func New(periods ...string) *Statement {
	return &Statement{Periods: periods}
}

// Empty reports whether the statement is absent or has no rows.
func (s *Statement) Empty() bool {
	return s == nil || len(s.Items) == 0
}

// Lookup finds a row by line-item name.
func (s *Statement) Lookup(name string) (LineItem, bool) {
	if s == nil {
		return LineItem{}, false
	}
	for _, it := range s.Items {
		if it.Name == name {
			return it, true
		}
	}
	return LineItem{}, false
}

// Has reports whether a line item exists in the statement.
func (s *Statement) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Append adds a row. Short value lists are padded with the absence marker so
// rows always align with Periods.
func (s *Statement) Append(name string, values ...Value) {
	row := make([]Value, len(s.Periods))
	copy(row, values)
	s.Items = append(s.Items, LineItem{Name: name, Values: row})
}

// At returns the cell for a line item and period, or the absence marker when
// either does not exist.
func (s *Statement) At(name, period string) Value {
	it, ok := s.Lookup(name)
	if !ok {
		return None()
	}
	for i, p := range s.Periods {
		if p == period {
			return it.Values[i]
		}
	}
	return None()
}

// Select keeps only the rows whose names appear in the given list. Row order
// follows the statement itself, not the list; names absent from the table
// are dropped silently, never invented.
func (s *Statement) Select(names []string) *Statement {
	keep := make(map[string]struct{}, len(names))
	for _, n := range names {
		keep[n] = struct{}{}
	}
	out := &Statement{Periods: append([]string(nil), s.Periods...)}
	for _, it := range s.Items {
		if _, ok := keep[it.Name]; !ok {
			continue
		}
		out.Items = append(out.Items, LineItem{Name: it.Name, Values: append([]Value(nil), it.Values...)})
	}
	return out
}
