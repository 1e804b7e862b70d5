package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	"activity-flags/internal/domain"
)

// EncodeFlags writes flags as CSV: a header followed by one row per record.
func (c *CSVCodec) EncodeFlags(w io.Writer, flags []domain.ActivityFlagRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(c.catalog.FlagColumns()); err != nil {
		return fmt.Errorf("failed to write flags header: %w", err)
	}
	if err := writeFlagRows(writer, flags, c.catalog); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func writeFlagRows(writer *csv.Writer, flags []domain.ActivityFlagRecord, catalog domain.ProductCatalog) error {
	for _, rec := range flags {
		row := make([]string, 0, len(catalog)+1)
		row = append(row, rec.ID)
		for _, p := range catalog {
			row = append(row, strconv.Itoa(rec.Flags[p]))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write flags for id %s: %w", rec.ID, err)
		}
	}
	return nil
}

// CSVFlagsSink appends activity flags to a cumulative CSV file.
//
// The file is only ever appended to. The header is written when the file is empty;
// otherwise the existing header must match the catalog. Rows are never compared with
// what is already there, so appending the same flags twice stores them twice.
type CSVFlagsSink struct {
	mu      sync.Mutex
	path    string
	catalog domain.ProductCatalog
}

// NewCSVFlagsSink creates a sink writing to path.
func NewCSVFlagsSink(path string, catalog domain.ProductCatalog) *CSVFlagsSink {
	return &CSVFlagsSink{path: path, catalog: catalog}
}

// Path returns the sink file.
func (s *CSVFlagsSink) Path() string {
	return s.path
}

// Append implements usecase.FlagsSink.
func (s *CSVFlagsSink) Append(ctx context.Context, flags []domain.ActivityFlagRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create sink directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open sink file %s: %w", s.path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to stat sink file %s: %w", s.path, err)
	}

	if info.Size() > 0 {
		if err := s.checkHeader(); err != nil {
			file.Close()
			return err
		}
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(s.catalog.FlagColumns()); err != nil {
			file.Close()
			return fmt.Errorf("failed to write sink header: %w", err)
		}
	}
	if err := writeFlagRows(writer, flags, s.catalog); err != nil {
		file.Close()
		return err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return fmt.Errorf("failed to append to %s: %w", s.path, err)
	}
	return file.Close()
}

// checkHeader refuses to append under columns written for another catalog.
func (s *CSVFlagsSink) checkHeader() error {
	file, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("failed to open sink file %s: %w", s.path, err)
	}
	defer file.Close()

	header, err := csv.NewReader(file).Read()
	if err != nil {
		return fmt.Errorf("failed to read sink header %s: %w", s.path, err)
	}
	if want := s.catalog.FlagColumns(); !slices.Equal(header, want) {
		return fmt.Errorf("sink %s has columns %v, expected %v", s.path, header, want)
	}
	return nil
}
