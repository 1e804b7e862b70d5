package gateway

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"activity-flags/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testCatalog = domain.ProductCatalog{"a", "b"}

const testLedgerHeader = "id,date,sum_a,count_a,sum_b,count_b"

func TestCSVCodec_DecodeLedger(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []domain.LedgerRecord
		wantErr  error
	}{
		{
			name: "valid ledger",
			lines: []string{
				testLedgerHeader,
				"X,2024-01-05,50,2,0,0",
				"X,2024-01-06,-50.25,1,10.5,3",
			},
			expected: []domain.LedgerRecord{
				ledgerRecord("X", "2024-01-05", "50", 2, "0", 0),
				ledgerRecord("X", "2024-01-06", "-50.25", 1, "10.5", 3),
			},
		},
		{
			name: "columns in any order with extra columns",
			lines: []string{
				"count_b,sum_b,note,date,id,count_a,sum_a",
				"1,7,hello,2024-02-01,Y,0,0",
			},
			expected: []domain.LedgerRecord{
				ledgerRecord("Y", "2024-02-01", "0", 0, "7", 1),
			},
		},
		{
			name: "blank numeric cells read as zero and integral float counts accepted",
			lines: []string{
				testLedgerHeader,
				"Z,2024-01-05,,3.0,1,",
			},
			expected: []domain.LedgerRecord{
				ledgerRecord("Z", "2024-01-05", "0", 3, "1", 0),
			},
		},
		{
			name: "date is kept as written",
			lines: []string{
				testLedgerHeader,
				"X,not-a-date,1,1,1,1",
			},
			expected: []domain.LedgerRecord{
				ledgerRecord("X", "not-a-date", "1", 1, "1", 1),
			},
		},
		{
			name: "ids kept verbatim",
			lines: []string{
				testLedgerHeader,
				" X,2024-01-05,1,1,0,0",
				"X,2024-01-05,2,1,0,0",
			},
			expected: []domain.LedgerRecord{
				ledgerRecord(" X", "2024-01-05", "1", 1, "0", 0),
				ledgerRecord("X", "2024-01-05", "2", 1, "0", 0),
			},
		},
		{
			name: "largest representable count",
			lines: []string{
				testLedgerHeader,
				"X,2024-01-05,5,9223372036854775807,0,0",
			},
			expected: []domain.LedgerRecord{
				ledgerRecord("X", "2024-01-05", "5", math.MaxInt64, "0", 0),
			},
		},
		{
			name: "count beyond int64",
			lines: []string{
				testLedgerHeader,
				"X,2024-01-05,5,18446744073709551616,0,0",
			},
			wantErr: domain.ErrMalformedRecord,
		},
		{
			name:     "header only",
			lines:    []string{testLedgerHeader},
			expected: nil,
		},
		{
			name: "missing count column",
			lines: []string{
				"id,date,sum_a,count_a,sum_b",
				"X,2024-01-05,1,1,1",
			},
			wantErr: domain.ErrMalformedRecord,
		},
		{
			name: "missing id column",
			lines: []string{
				"date,sum_a,count_a,sum_b,count_b",
			},
			wantErr: domain.ErrMalformedRecord,
		},
		{
			name: "invalid amount format",
			lines: []string{
				testLedgerHeader,
				"X,2024-01-05,invalid_amount,1,0,0",
			},
			wantErr: domain.ErrMalformedRecord,
		},
		{
			name: "negative count",
			lines: []string{
				testLedgerHeader,
				"X,2024-01-05,1,-1,0,0",
			},
			wantErr: domain.ErrMalformedRecord,
		},
		{
			name: "fractional count",
			lines: []string{
				testLedgerHeader,
				"X,2024-01-05,1,1.5,0,0",
			},
			wantErr: domain.ErrMalformedRecord,
		},
		{
			name: "wrong number of fields",
			lines: []string{
				testLedgerHeader,
				"X,2024-01-05,1,1",
			},
			wantErr: domain.ErrMalformedRecord,
		},
		{
			name:    "empty input",
			lines:   []string{},
			wantErr: domain.ErrMalformedRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := NewCSVCodec(testCatalog)

			got, err := codec.DecodeLedger(strings.NewReader(strings.Join(tt.lines, "\n")))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, len(tt.expected), len(got))
			for i := range tt.expected {
				assert.True(t, compareLedgerRecords(got[i], tt.expected[i]), "record %d = %+v, want %+v", i, got[i], tt.expected[i])
			}
		})
	}
}

func TestCSVCodec_DecodeLedger_ByteOrderMark(t *testing.T) {
	codec := NewCSVCodec(testCatalog)

	got, err := codec.DecodeLedger(strings.NewReader("\ufeff" + testLedgerHeader + "\nX,2024-01-05,1,1,0,0\n"))
	assert.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCSVCodec_DecodeLedger_DefaultCatalogFile(t *testing.T) {
	header := []string{"id", "date"}
	row := []string{"client-1", "2023-12-10"}
	for i, p := range domain.DefaultCatalog {
		header = append(header, domain.SumColumn(p), domain.CountColumn(p))
		row = append(row, fmt.Sprintf("%d", i*10), fmt.Sprintf("%d", i))
	}

	tmpFile, err := createTempCSVFromLines([]string{strings.Join(header, ","), strings.Join(row, ",")}, "profit_table.csv")
	if err != nil {
		t.Fatalf("Failed to create temp CSV file: %v", err)
	}
	defer os.Remove(tmpFile)

	file, err := os.Open(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open temp CSV file: %v", err)
	}
	defer file.Close()

	got, err := NewCSVCodec(domain.DefaultCatalog).DecodeLedger(file)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(9), got[0].Counts["j"])
	assert.True(t, got[0].Sums["a"].IsZero())
	assert.True(t, got[0].Sums["j"].Equal(decimal.NewFromInt(90)))
}

func TestCSVCodec_DecodeFlags(t *testing.T) {
	codec := NewCSVCodec(testCatalog)

	got, err := codec.DecodeFlags(strings.NewReader("id,flag_a,flag_b\nX,0,1\nY,1,0\n"))
	assert.NoError(t, err)
	assert.Equal(t, []domain.ActivityFlagRecord{
		{ID: "X", Flags: map[string]int{"a": 0, "b": 1}},
		{ID: "Y", Flags: map[string]int{"a": 1, "b": 0}},
	}, got)

	_, err = codec.DecodeFlags(strings.NewReader("id,flag_a,flag_b\nX,2,1\n"))
	assert.Error(t, err, "flag outside {0,1}")

	_, err = codec.DecodeFlags(strings.NewReader("id,flag_a\nX,1\n"))
	assert.Error(t, err, "missing flag column")

	_, err = codec.DecodeFlags(strings.NewReader(""))
	assert.Error(t, err, "empty artifact")

	got, err = codec.DecodeFlags(strings.NewReader("id,flag_a,flag_b\n"))
	assert.NoError(t, err)
	assert.Empty(t, got)
}

// Helper functions

func ledgerRecord(id, date, sumA string, countA int64, sumB string, countB int64) domain.LedgerRecord {
	return domain.LedgerRecord{
		ID:     id,
		Date:   date,
		Sums:   map[string]decimal.Decimal{"a": decimal.RequireFromString(sumA), "b": decimal.RequireFromString(sumB)},
		Counts: map[string]int64{"a": countA, "b": countB},
	}
}

func compareLedgerRecords(got, want domain.LedgerRecord) bool {
	if got.ID != want.ID || got.Date != want.Date || len(got.Sums) != len(want.Sums) || len(got.Counts) != len(want.Counts) {
		return false
	}
	for p, sum := range want.Sums {
		if !got.Sums[p].Equal(sum) {
			return false
		}
	}
	for p, count := range want.Counts {
		if got.Counts[p] != count {
			return false
		}
	}
	return true
}

func createTempCSVFromLines(lines []string, filename string) (string, error) {
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("%d_%s", os.Getpid(), filename))

	file, err := os.Create(tmpFile)
	if err != nil {
		return "", err
	}
	defer file.Close()

	for i, line := range lines {
		if i > 0 {
			file.WriteString("\n")
		}
		file.WriteString(line)
	}

	return tmpFile, nil
}

// Benchmark tests

func BenchmarkDecodeLedger(b *testing.B) {
	lines := []string{testLedgerHeader}
	for i := 0; i < 1000; i++ {
		lines = append(lines, fmt.Sprintf("ID%d,2024-01-05,150.00,2,-3.5,1", i%50))
	}
	data := strings.Join(lines, "\n")
	codec := NewCSVCodec(testCatalog)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := codec.DecodeLedger(strings.NewReader(data)); err != nil {
			b.Fatalf("Error in benchmark: %v", err)
		}
	}
}
