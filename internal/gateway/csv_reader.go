package gateway

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"activity-flags/internal/domain"

	"github.com/shopspring/decimal"
)

// CSVCodec reads and writes the ledger and activity flag CSV layouts for a product catalog.
type CSVCodec struct {
	catalog domain.ProductCatalog
}

// NewCSVCodec creates a new codec instance.
func NewCSVCodec(catalog domain.ProductCatalog) *CSVCodec {
	return &CSVCodec{catalog: catalog}
}

// DecodeLedger parses a ledger CSV. Columns are located by header name, so column
// order and extra columns do not matter. Every id, date, sum_p and count_p column of
// the catalog must be present. Ids are kept exactly as written.
func (c *CSVCodec) DecodeLedger(r io.Reader) ([]domain.LedgerRecord, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: ledger has no header", domain.ErrMalformedRecord)
		}
		return nil, fmt.Errorf("%w: failed to read ledger header: %w", domain.ErrMalformedRecord, err)
	}
	index := indexHeader(header)

	idCol, err := requireColumn(index, domain.IDColumn)
	if err != nil {
		return nil, err
	}
	dateCol, err := requireColumn(index, domain.DateColumn)
	if err != nil {
		return nil, err
	}
	sumCols := make(map[string]int, len(c.catalog))
	countCols := make(map[string]int, len(c.catalog))
	for _, p := range c.catalog {
		if sumCols[p], err = requireColumn(index, domain.SumColumn(p)); err != nil {
			return nil, err
		}
		if countCols[p], err = requireColumn(index, domain.CountColumn(p)); err != nil {
			return nil, err
		}
	}

	var records []domain.LedgerRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: error reading ledger line %d: %w", domain.ErrMalformedRecord, line, err)
		}

		rec := domain.LedgerRecord{
			ID:     row[idCol],
			Date:   row[dateCol],
			Sums:   make(map[string]decimal.Decimal, len(c.catalog)),
			Counts: make(map[string]int64, len(c.catalog)),
		}
		for _, p := range c.catalog {
			sum, err := parseAmount(row[sumCols[p]])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d, %s: %w", domain.ErrMalformedRecord, line, domain.SumColumn(p), err)
			}
			count, err := parseCount(row[countCols[p]])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d, %s: %w", domain.ErrMalformedRecord, line, domain.CountColumn(p), err)
			}
			rec.Sums[p] = sum
			rec.Counts[p] = count
		}
		records = append(records, rec)
	}
	return records, nil
}

// DecodeFlags parses an activity flags CSV written by EncodeFlags.
func (c *CSVCodec) DecodeFlags(r io.Reader) ([]domain.ActivityFlagRecord, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("flags artifact has no header")
		}
		return nil, fmt.Errorf("failed to read flags header: %w", err)
	}
	index := indexHeader(header)

	idCol, err := requireColumn(index, domain.IDColumn)
	if err != nil {
		return nil, err
	}
	flagCols := make(map[string]int, len(c.catalog))
	for _, p := range c.catalog {
		if flagCols[p], err = requireColumn(index, domain.FlagColumn(p)); err != nil {
			return nil, err
		}
	}

	flags := make([]domain.ActivityFlagRecord, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading flags record: %w", err)
		}

		rec := domain.ActivityFlagRecord{ID: row[idCol], Flags: make(map[string]int, len(c.catalog))}
		for _, p := range c.catalog {
			switch v := strings.TrimSpace(row[flagCols[p]]); v {
			case "0":
				rec.Flags[p] = 0
			case "1":
				rec.Flags[p] = 1
			default:
				return nil, fmt.Errorf("invalid %s value %q for id %s", domain.FlagColumn(p), v, rec.ID)
			}
		}
		flags = append(flags, rec)
	}
	return flags, nil
}

func indexHeader(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	return index
}

func requireColumn(index map[string]int, name string) (int, error) {
	i, ok := index[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing column %q", domain.ErrMalformedRecord, name)
	}
	return i, nil
}

// parseAmount reads a signed amount. A blank cell counts as zero.
func parseAmount(raw string) (decimal.Decimal, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("could not parse amount '%s'", raw)
	}
	return d, nil
}

var (
	errBadCount = errors.New("count must be a non-negative integer")
	maxCount    = decimal.NewFromInt(math.MaxInt64)
)

// parseCount reads a transaction count. Integral floats such as "3.0" are accepted,
// a blank cell counts as zero.
func parseCount(raw string) (int64, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, fmt.Errorf("could not parse count '%s'", raw)
	}
	if !d.IsInteger() || d.IsNegative() {
		return 0, fmt.Errorf("%w, got '%s'", errBadCount, raw)
	}
	if d.GreaterThan(maxCount) {
		return 0, fmt.Errorf("count '%s' exceeds %d", raw, int64(math.MaxInt64))
	}
	return d.IntPart(), nil
}
