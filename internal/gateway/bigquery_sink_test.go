package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"activity-flags/internal/domain"

	"cloud.google.com/go/bigquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestFlagRowSaver_Save(t *testing.T) {
	saver := &flagRowSaver{
		record:  domain.ActivityFlagRecord{ID: "X", Flags: map[string]int{"a": 1, "b": 0}},
		catalog: testCatalog,
	}

	row, insertID, err := saver.Save()
	assert.NoError(t, err)
	assert.Equal(t, bigquery.NoDedupeID, insertID, "rows must never be deduplicated")
	assert.Equal(t, map[string]bigquery.Value{
		"id":     "X",
		"flag_a": int64(1),
		"flag_b": int64(0),
	}, row)
}

func TestBigQueryFlagsSink_Schema(t *testing.T) {
	sink := NewBigQueryFlagsSink(nil, "project", "marts", "flags_activity", domain.DefaultCatalog)

	schema := sink.Schema()
	assert.Len(t, schema, 11)
	assert.Equal(t, "id", schema[0].Name)
	assert.Equal(t, bigquery.StringFieldType, schema[0].Type)
	assert.Equal(t, "flag_j", schema[10].Name)
	assert.Equal(t, bigquery.IntegerFieldType, schema[10].Type)
}

// fakeBigQuery answers the tables.get, tables.insert and tabledata.insertAll calls
// of one table and records them in order.
type fakeBigQuery struct {
	mu        sync.Mutex
	calls     []string
	getStatus int
}

func (f *fakeBigQuery) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	var call string
	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/datasets/marts/tables/flags_activity"):
		call = "get"
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/datasets/marts/tables"):
		call = "create"
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/tables/flags_activity/insertAll"):
		call = "insert"
	default:
		call = r.Method + " " + path
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch call {
	case "get":
		w.WriteHeader(f.getStatus)
		fmt.Fprintf(w, `{"error":{"code":%d,"message":"table lookup failed"}}`, f.getStatus)
	case "create":
		w.Write([]byte(`{"tableReference":{"projectId":"project","datasetId":"marts","tableId":"flags_activity"}}`))
	case "insert":
		w.Write([]byte(`{}`))
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func (f *fakeBigQuery) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func newFakeBigQueryClient(t *testing.T, fake *fakeBigQuery) *bigquery.Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := bigquery.NewClient(context.Background(), "project",
		option.WithEndpoint(srv.URL+"/bigquery/v2/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestBigQueryFlagsSink_CreatesMissingTableOnFirstAppend(t *testing.T) {
	fake := &fakeBigQuery{getStatus: http.StatusNotFound}
	sink := NewBigQueryFlagsSink(newFakeBigQueryClient(t, fake), "project", "marts", "flags_activity", testCatalog).
		CreateIfMissing()
	flags := []domain.ActivityFlagRecord{{ID: "X", Flags: map[string]int{"a": 1, "b": 0}}}

	require.NoError(t, sink.Append(context.Background(), flags))
	require.NoError(t, sink.Append(context.Background(), flags))

	assert.Equal(t, []string{"get", "create", "insert", "insert"}, fake.recorded())
}

func TestBigQueryFlagsSink_TableCheckFailureFailsAppend(t *testing.T) {
	fake := &fakeBigQuery{getStatus: http.StatusForbidden}
	sink := NewBigQueryFlagsSink(newFakeBigQueryClient(t, fake), "project", "marts", "flags_activity", testCatalog).
		CreateIfMissing()

	err := sink.Append(context.Background(), []domain.ActivityFlagRecord{{ID: "X", Flags: map[string]int{"a": 1, "b": 0}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EnsureTable")
	assert.Equal(t, []string{"get"}, fake.recorded(), "no rows are inserted")
}

func TestBigQueryFlagsSink_WithoutCreateSkipsTableCheck(t *testing.T) {
	fake := &fakeBigQuery{getStatus: http.StatusNotFound}
	sink := NewBigQueryFlagsSink(newFakeBigQueryClient(t, fake), "project", "marts", "flags_activity", testCatalog)

	require.NoError(t, sink.Append(context.Background(), []domain.ActivityFlagRecord{{ID: "X", Flags: map[string]int{"a": 1, "b": 0}}}))
	assert.Equal(t, []string{"insert"}, fake.recorded())
}
