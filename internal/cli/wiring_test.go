package cli

import (
	"context"
	"path/filepath"
	"testing"

	"activity-flags/internal/config"
	"activity-flags/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestBuildComponents_Local(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Source.Path = filepath.Join(dir, "profit_table.csv")
	cfg.Artifacts.Dir = dir
	cfg.Sink.Path = filepath.Join(dir, "flags_activity.csv")

	comps, err := buildComponents(context.Background(), cfg)
	require.NoError(t, err)
	defer comps.Close()

	assert.IsType(t, &gateway.FileLedgerSource{}, comps.source)
	assert.IsType(t, &gateway.FileArtifactStore{}, comps.artifacts)
	assert.IsType(t, &gateway.CSVFlagsSink{}, comps.sink)
	assert.Equal(t, cfg.Source.Path, comps.source.Location())
	assert.Empty(t, comps.closers)
}

func TestBuildComponents_MemoryArtifacts(t *testing.T) {
	cfg := config.Default()
	cfg.Artifacts = config.ArtifactsConfig{Kind: config.KindMemory}

	comps, err := buildComponents(context.Background(), cfg)
	require.NoError(t, err)
	defer comps.Close()

	assert.IsType(t, &gateway.MemoryArtifactStore{}, comps.artifacts)
}

func TestBuildComponents_BigQuerySinkDefersTableCheck(t *testing.T) {
	cfg := config.Default()
	cfg.Sink = config.SinkConfig{
		Kind:        config.KindBigQuery,
		Project:     "analytics",
		Dataset:     "marts",
		Table:       "flags_activity",
		CreateTable: true,
	}

	// The endpoint is unreachable: wiring must not call the API.
	comps, err := buildComponents(context.Background(), cfg,
		option.WithEndpoint("http://127.0.0.1:1/bigquery/v2/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	defer comps.Close()

	assert.IsType(t, &gateway.BigQueryFlagsSink{}, comps.sink)
	assert.Len(t, comps.closers, 1)
}

func TestBuildComponents_UnknownKind(t *testing.T) {
	cfg := config.Default()
	cfg.Sink.Kind = "parquet"

	_, err := buildComponents(context.Background(), cfg)
	assert.ErrorContains(t, err, `unsupported sink kind "parquet"`)
}
