package cli

import (
	"context"
	"errors"
	"fmt"

	"activity-flags/internal/config"
	"activity-flags/internal/gateway"
	"activity-flags/internal/usecase"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// components holds the concrete gateways of one run and the clients to close after it.
type components struct {
	source    usecase.LedgerSource
	artifacts usecase.ArtifactStore
	sink      usecase.FlagsSink
	closers   []func() error

	gcs        *storage.Client
	clientOpts []option.ClientOption
}

// buildComponents creates the source, artifact store and sink named by cfg.
// Google clients pick up credentials from the default chain unless opts say otherwise.
func buildComponents(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) (*components, error) {
	c := &components{clientOpts: opts}

	var err error
	if c.source, err = c.newLedgerSource(ctx, cfg.Source); err != nil {
		c.Close()
		return nil, err
	}
	if c.artifacts, err = c.newArtifactStore(ctx, cfg.Artifacts); err != nil {
		c.Close()
		return nil, err
	}
	if c.sink, err = c.newFlagsSink(ctx, cfg); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Close releases every client opened by buildComponents.
func (c *components) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// storageClient lazily creates one GCS client shared by source and artifacts.
func (c *components) storageClient(ctx context.Context) (*storage.Client, error) {
	if c.gcs != nil {
		return c.gcs, nil
	}
	client, err := storage.NewClient(ctx, c.clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	c.gcs = client
	c.closers = append(c.closers, client.Close)
	return client, nil
}

func (c *components) newLedgerSource(ctx context.Context, cfg config.SourceConfig) (usecase.LedgerSource, error) {
	switch cfg.Kind {
	case config.KindFile:
		return gateway.NewFileLedgerSource(cfg.Path), nil
	case config.KindGCS:
		client, err := c.storageClient(ctx)
		if err != nil {
			return nil, err
		}
		return gateway.NewGCSLedgerSource(client, cfg.Bucket, cfg.Object), nil
	case config.KindS3:
		client, err := gateway.NewS3Client(ctx, cfg.Profile, cfg.Region)
		if err != nil {
			return nil, err
		}
		return gateway.NewS3LedgerSource(client, cfg.Bucket, cfg.Object), nil
	default:
		return nil, fmt.Errorf("unsupported source kind %q", cfg.Kind)
	}
}

func (c *components) newArtifactStore(ctx context.Context, cfg config.ArtifactsConfig) (usecase.ArtifactStore, error) {
	switch cfg.Kind {
	case config.KindFile:
		store, err := gateway.NewFileArtifactStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.KindMemory:
		return gateway.NewMemoryArtifactStore(), nil
	case config.KindGCS:
		client, err := c.storageClient(ctx)
		if err != nil {
			return nil, err
		}
		return gateway.NewGCSArtifactStore(client, cfg.Bucket, cfg.Prefix), nil
	case config.KindS3:
		client, err := gateway.NewS3Client(ctx, cfg.Profile, cfg.Region)
		if err != nil {
			return nil, err
		}
		return gateway.NewS3ArtifactStore(client, cfg.Bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("unsupported artifacts kind %q", cfg.Kind)
	}
}

func (c *components) newFlagsSink(ctx context.Context, cfg *config.Config) (usecase.FlagsSink, error) {
	catalog := cfg.ProductCatalog()

	switch cfg.Sink.Kind {
	case config.KindCSV:
		return gateway.NewCSVFlagsSink(cfg.Sink.Path, catalog), nil
	case config.KindBigQuery:
		client, err := bigquery.NewClient(ctx, cfg.Sink.Project, c.clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create BigQuery client: %w", err)
		}
		c.closers = append(c.closers, client.Close)

		// The table is checked by the first load, so a failure lands in the run report.
		sink := gateway.NewBigQueryFlagsSink(client, cfg.Sink.Project, cfg.Sink.Dataset, cfg.Sink.Table, catalog)
		if cfg.Sink.CreateTable {
			sink.CreateIfMissing()
		}
		return sink, nil
	default:
		return nil, fmt.Errorf("unsupported sink kind %q", cfg.Sink.Kind)
	}
}
