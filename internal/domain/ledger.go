package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// LedgerRecord is one raw row of the transactional ledger.
// Date is kept as it appears in the source; the transformer normalizes it.
type LedgerRecord struct {
	ID     string                     `json:"id"`
	Date   string                     `json:"date"`
	Sums   map[string]decimal.Decimal `json:"sums"`
	Counts map[string]int64           `json:"counts"`
}

// AggregatedEntity holds the per-product totals of one id inside one activity window.
type AggregatedEntity struct {
	ID          string
	TotalSums   map[string]decimal.Decimal
	TotalCounts map[string]int64
}

// NewAggregatedEntity returns an entity with zero totals for every product of the catalog.
func NewAggregatedEntity(id string, catalog ProductCatalog) *AggregatedEntity {
	e := &AggregatedEntity{
		ID:          id,
		TotalSums:   make(map[string]decimal.Decimal, len(catalog)),
		TotalCounts: make(map[string]int64, len(catalog)),
	}
	for _, p := range catalog {
		e.TotalSums[p] = decimal.Zero
		e.TotalCounts[p] = 0
	}
	return e
}

// Add folds a record into the totals. A count total that would overflow int64
// is rejected and leaves the entity unchanged.
func (e *AggregatedEntity) Add(rec LedgerRecord, catalog ProductCatalog) error {
	for _, p := range catalog {
		if rec.Counts[p] > 0 && e.TotalCounts[p] > math.MaxInt64-rec.Counts[p] {
			return fmt.Errorf("%w: %s total overflows for id %s", ErrMalformedRecord, CountColumn(p), e.ID)
		}
	}
	for _, p := range catalog {
		e.TotalSums[p] = e.TotalSums[p].Add(rec.Sums[p])
		e.TotalCounts[p] += rec.Counts[p]
	}
	return nil
}

// Flags derives the activity flags. A product is active only when both the summed
// amount and the summed count are non-zero.
func (e *AggregatedEntity) Flags(catalog ProductCatalog) ActivityFlagRecord {
	out := ActivityFlagRecord{ID: e.ID, Flags: make(map[string]int, len(catalog))}
	for _, p := range catalog {
		flag := 0
		if !e.TotalSums[p].IsZero() && e.TotalCounts[p] != 0 {
			flag = 1
		}
		out.Flags[p] = flag
	}
	return out
}

// ActivityFlagRecord is one output row: an id and a 0/1 flag per product.
type ActivityFlagRecord struct {
	ID    string         `json:"id"`
	Flags map[string]int `json:"flags"`
}
