package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// promptSymbols runs the interactive flow: ask for a ticker count within
// [1, max], re-prompting until the input is valid, then one symbol per slot.
// Symbols themselves are not re-prompted; an invalid one terminates the run
// later, during validation.
func promptSymbols(r io.Reader, w io.Writer, max int) ([]string, error) {
	sc := bufio.NewScanner(r)

	var count int
	for {
		fmt.Fprintf(w, "How many tickers? (1-%d): ", max)
		if !sc.Scan() {
			return nil, errors.New("input closed before a ticker count was entered")
		}
		n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err == nil && n >= 1 && n <= max {
			count = n
			break
		}
		fmt.Fprintf(w, "Please enter a number between 1 and %d.\n", max)
	}

	symbols := make([]string, 0, count)
	for i := 0; i < count; i++ {
		fmt.Fprintf(w, "Ticker %d: ", i+1)
		if !sc.Scan() {
			return nil, errors.New("input closed before all tickers were entered")
		}
		sym := strings.ToUpper(strings.TrimSpace(sc.Text()))
		if sym == "" {
			return nil, fmt.Errorf("ticker %d is empty", i+1)
		}
		symbols = append(symbols, sym)
	}
	return symbols, nil
}
