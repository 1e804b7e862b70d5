package domain

import (
	"fmt"
	"strings"
)

// ProductCatalog is the ordered set of product codes tracked by a run.
// The order drives both the aggregation loop and the output column order.
type ProductCatalog []string

// DefaultCatalog is the ten-product catalog the activity mart was built around.
var DefaultCatalog = ProductCatalog{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

// Column names of the ledger and flag schemas.
const (
	IDColumn   = "id"
	DateColumn = "date"
)

// Validate checks the catalog is non-empty and holds unique, non-blank codes.
func (c ProductCatalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("product catalog is empty")
	}
	seen := make(map[string]bool, len(c))
	for _, code := range c {
		if strings.TrimSpace(code) == "" {
			return fmt.Errorf("product catalog contains a blank code")
		}
		if seen[code] {
			return fmt.Errorf("product catalog contains duplicate code %q", code)
		}
		seen[code] = true
	}
	return nil
}

// FlagColumns returns the output header for this catalog: id followed by one flag per product.
func (c ProductCatalog) FlagColumns() []string {
	cols := make([]string, 0, len(c)+1)
	cols = append(cols, IDColumn)
	for _, code := range c {
		cols = append(cols, FlagColumn(code))
	}
	return cols
}

func SumColumn(product string) string   { return "sum_" + product }
func CountColumn(product string) string { return "count_" + product }
func FlagColumn(product string) string  { return "flag_" + product }
