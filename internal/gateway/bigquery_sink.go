package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"activity-flags/internal/domain"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
)

// BigQueryFlagsSink streams activity flags into a BigQuery table.
// Rows are inserted with NoDedupeID: like the CSV sink, the table is append-only
// and a repeated load stores every row again.
type BigQueryFlagsSink struct {
	client  *bigquery.Client
	project string
	dataset string
	table   string
	catalog domain.ProductCatalog

	mu          sync.Mutex
	createTable bool
	tableReady  bool
}

// NewBigQueryFlagsSink creates a sink writing to project.dataset.table.
func NewBigQueryFlagsSink(client *bigquery.Client, project, dataset, table string, catalog domain.ProductCatalog) *BigQueryFlagsSink {
	return &BigQueryFlagsSink{client: client, project: project, dataset: dataset, table: table, catalog: catalog}
}

// CreateIfMissing makes the first Append create the table when it does not exist.
func (s *BigQueryFlagsSink) CreateIfMissing() *BigQueryFlagsSink {
	s.createTable = true
	return s
}

// Schema is the table schema for the sink's catalog.
func (s *BigQueryFlagsSink) Schema() bigquery.Schema {
	return flagsSchema(s.catalog)
}

func flagsSchema(catalog domain.ProductCatalog) bigquery.Schema {
	schema := bigquery.Schema{
		{Name: domain.IDColumn, Type: bigquery.StringFieldType, Required: true},
	}
	for _, p := range catalog {
		schema = append(schema, &bigquery.FieldSchema{Name: domain.FlagColumn(p), Type: bigquery.IntegerFieldType, Required: true})
	}
	return schema
}

// EnsureTable creates the table when it does not exist yet.
func (s *BigQueryFlagsSink) EnsureTable(ctx context.Context) error {
	table := s.client.DatasetInProject(s.project, s.dataset).Table(s.table)
	_, err := table.Metadata(ctx)
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusNotFound {
		return fmt.Errorf("EnsureTable: reading metadata: %w", err)
	}

	if err := table.Create(ctx, &bigquery.TableMetadata{Schema: s.Schema()}); err != nil {
		return fmt.Errorf("EnsureTable: creating table: %w", err)
	}
	return nil
}

// Append implements usecase.FlagsSink.
func (s *BigQueryFlagsSink) Append(ctx context.Context, flags []domain.ActivityFlagRecord) error {
	if err := s.ensureTableOnce(ctx); err != nil {
		return err
	}
	if len(flags) == 0 {
		return nil
	}

	rows := make([]bigquery.ValueSaver, 0, len(flags))
	for _, rec := range flags {
		rows = append(rows, &flagRowSaver{record: rec, catalog: s.catalog})
	}

	inserter := s.client.DatasetInProject(s.project, s.dataset).Table(s.table).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("Append: inserting rows: %w", err)
	}
	return nil
}

func (s *BigQueryFlagsSink) ensureTableOnce(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.createTable || s.tableReady {
		return nil
	}
	if err := s.EnsureTable(ctx); err != nil {
		return err
	}
	s.tableReady = true
	return nil
}

// flagRowSaver maps one record onto the dynamic flag columns.
type flagRowSaver struct {
	record  domain.ActivityFlagRecord
	catalog domain.ProductCatalog
}

// Save implements bigquery.ValueSaver.
func (r *flagRowSaver) Save() (map[string]bigquery.Value, string, error) {
	row := make(map[string]bigquery.Value, len(r.catalog)+1)
	row[domain.IDColumn] = r.record.ID
	for _, p := range r.catalog {
		row[domain.FlagColumn(p)] = int64(r.record.Flags[p])
	}
	return row, bigquery.NoDedupeID, nil
}
