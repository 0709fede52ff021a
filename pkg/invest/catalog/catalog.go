// Package catalog defines the recognized line items per statement category.
// The catalog is built once per run and passed explicitly to the extractors;
// nothing reads it as global state.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog holds the ordered line-item names retained from each statement
// category. Market names are the provider's scalar info keys.
type Catalog struct {
	Financial []string `yaml:"financial"`
	Balance   []string `yaml:"balance"`
	CashFlow  []string `yaml:"cashflow"`
	Market    []string `yaml:"market"`
}

// Default returns the built-in catalog.
func Default() Catalog {
	return Catalog{
		Financial: []string{
			"Total Revenue",
			"Cost Of Revenue",
			"EBIT",
			"Net Income",
			"Research And Development",
		},
		Balance: []string{
			"Total Assets",
			"Current Assets",
			"Inventory",
			"Total Liabilities Net Minority Interest",
			"Current Liabilities",
			"Long Term Debt",
			"Total Debt",
			"Stockholders Equity",
		},
		CashFlow: []string{
			"Cash Flow From Continuing Financing Activities",
			"Capital Expenditure",
		},
		Market: []string{
			"currentPrice",
			"sharesOutstanding",
			"forwardEps",
			"enterpriseValue",
		},
	}
}

// Load reads a YAML catalog file. Categories absent from the file keep their
// built-in defaults, so a file may override a single list.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var override Catalog
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	cat := Default()
	if len(override.Financial) > 0 {
		cat.Financial = override.Financial
	}
	if len(override.Balance) > 0 {
		cat.Balance = override.Balance
	}
	if len(override.CashFlow) > 0 {
		cat.CashFlow = override.CashFlow
	}
	if len(override.Market) > 0 {
		cat.Market = override.Market
	}
	return cat, nil
}
