package usecase

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"activity-flags/internal/domain"
)

// Transformer computes activity flags from ledger records. It performs no I/O.
type Transformer struct {
	catalog domain.ProductCatalog
}

// NewTransformer creates a transformer for the given product catalog.
func NewTransformer(catalog domain.ProductCatalog) *Transformer {
	return &Transformer{catalog: catalog}
}

// Aggregation is the intermediate result of one transform: the window and the
// per-id totals of the records that fell inside it, ordered by id.
type Aggregation struct {
	Window       domain.ActivityWindow
	InWindowRows int
	Entities     []*domain.AggregatedEntity
}

// Transform builds one activity flag row per id that has at least one record
// inside the activity window around referenceDate. Rows are ordered by id.
func (t *Transformer) Transform(ledger []domain.LedgerRecord, referenceDate string) ([]domain.ActivityFlagRecord, error) {
	agg, err := t.Aggregate(ledger, referenceDate)
	if err != nil {
		return nil, err
	}
	return t.Flags(agg), nil
}

// Aggregate runs the validation, filtering and grouping steps of Transform.
func (t *Transformer) Aggregate(ledger []domain.LedgerRecord, referenceDate string) (*Aggregation, error) {
	// Step 1: Reference date, checked before the ledger is touched
	ref, err := domain.ParseReferenceDate(referenceDate)
	if err != nil {
		return nil, err
	}
	window := domain.NewActivityWindow(ref)

	// Step 2: Normalize dates. A single bad row rejects the whole run.
	days := make([]time.Time, len(ledger))
	for i, rec := range ledger {
		if err := t.validateRecord(rec); err != nil {
			return nil, fmt.Errorf("ledger row %d: %w", i+1, err)
		}
		day, err := domain.ParseRecordDate(rec.Date)
		if err != nil {
			return nil, fmt.Errorf("ledger row %d (id %s): %w", i+1, rec.ID, err)
		}
		days[i] = day
	}

	// Step 3: Window filtering and grouping by id
	groups := make(map[string]*domain.AggregatedEntity)
	inWindow := 0
	for i, rec := range ledger {
		if !window.Contains(days[i]) {
			continue
		}
		inWindow++
		entity, ok := groups[rec.ID]
		if !ok {
			entity = domain.NewAggregatedEntity(rec.ID, t.catalog)
			groups[rec.ID] = entity
		}
		if err := entity.Add(rec, t.catalog); err != nil {
			return nil, fmt.Errorf("ledger row %d: %w", i+1, err)
		}
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entities := make([]*domain.AggregatedEntity, 0, len(ids))
	for _, id := range ids {
		entities = append(entities, groups[id])
	}

	return &Aggregation{Window: window, InWindowRows: inWindow, Entities: entities}, nil
}

// Flags turns aggregated totals into output rows, keeping the entity order.
func (t *Transformer) Flags(agg *Aggregation) []domain.ActivityFlagRecord {
	flags := make([]domain.ActivityFlagRecord, 0, len(agg.Entities))
	for _, entity := range agg.Entities {
		flags = append(flags, entity.Flags(t.catalog))
	}
	return flags
}

func (t *Transformer) validateRecord(rec domain.LedgerRecord) error {
	if strings.TrimSpace(rec.ID) == "" {
		return fmt.Errorf("%w: missing id", domain.ErrMalformedRecord)
	}
	for _, p := range t.catalog {
		if _, ok := rec.Sums[p]; !ok {
			return fmt.Errorf("%w: missing %s", domain.ErrMalformedRecord, domain.SumColumn(p))
		}
		count, ok := rec.Counts[p]
		if !ok {
			return fmt.Errorf("%w: missing %s", domain.ErrMalformedRecord, domain.CountColumn(p))
		}
		if count < 0 {
			return fmt.Errorf("%w: negative %s", domain.ErrMalformedRecord, domain.CountColumn(p))
		}
	}
	return nil
}
