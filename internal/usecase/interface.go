package usecase

import (
	"context"
	"io"

	"activity-flags/internal/domain"
)

// LedgerSource is the source of record of the raw ledger.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_interface.go -source=interface.go
type LedgerSource interface {
	OpenLedger(ctx context.Context) (io.ReadCloser, error)
	Location() string
}

// ArtifactStore persists immutable, run-scoped artifacts and resolves their references.
type ArtifactStore interface {
	Put(ctx context.Context, name string, data []byte) (domain.ArtifactRef, error)
	Get(ctx context.Context, ref domain.ArtifactRef) ([]byte, error)
}

// FlagsSink is the cumulative, append-only activity flags table.
type FlagsSink interface {
	Append(ctx context.Context, flags []domain.ActivityFlagRecord) error
}

// LedgerDecoder turns an extracted ledger artifact into records.
type LedgerDecoder interface {
	DecodeLedger(r io.Reader) ([]domain.LedgerRecord, error)
}

// FlagsCodec serializes the flags artifact handed from transform to load.
type FlagsCodec interface {
	EncodeFlags(w io.Writer, flags []domain.ActivityFlagRecord) error
	DecodeFlags(r io.Reader) ([]domain.ActivityFlagRecord, error)
}
