package usecase

import (
	"context"
	"fmt"
	"io"
	"path"

	"activity-flags/internal/domain"
	"activity-flags/internal/handoff"
	"activity-flags/internal/logger"
)

// Artifact names inside a run's namespace.
const (
	LedgerArtifactName = "ledger.csv"
	FlagsArtifactName  = "flags.csv"
)

// Extractor copies the raw ledger into a run-scoped artifact.
type Extractor struct {
	source    LedgerSource
	artifacts ArtifactStore
}

// NewExtractor creates a new extractor.
func NewExtractor(source LedgerSource, artifacts ArtifactStore) *Extractor {
	return &Extractor{source: source, artifacts: artifacts}
}

// Extract reads the full ledger, publishes it unmodified and records its handle
// under handoff.KeyExtractedLedger. Nothing is published when the source fails.
func (e *Extractor) Extract(ctx context.Context, store *handoff.Store) (domain.ArtifactRef, error) {
	log := logger.FromContext(ctx)

	rc, err := e.source.OpenLedger(ctx)
	if err != nil {
		return domain.ArtifactRef{}, fmt.Errorf("%w: open %s: %w", domain.ErrSourceUnavailable, e.source.Location(), err)
	}
	defer rc.Close()

	// Read everything before publishing so a broken stream never leaves a partial artifact.
	data, err := io.ReadAll(rc)
	if err != nil {
		return domain.ArtifactRef{}, fmt.Errorf("%w: read %s: %w", domain.ErrSourceUnavailable, e.source.Location(), err)
	}

	ref, err := e.artifacts.Put(ctx, path.Join(store.RunID(), LedgerArtifactName), data)
	if err != nil {
		return domain.ArtifactRef{}, fmt.Errorf("could not publish ledger artifact: %w", err)
	}

	if err := store.Set(handoff.KeyExtractedLedger, ref); err != nil {
		return domain.ArtifactRef{}, err
	}

	log.Debug().
		Str("source", e.source.Location()).
		Str("artifact", ref.URI).
		Int64("bytes", ref.Size).
		Msg("ledger extracted")

	return ref, nil
}
