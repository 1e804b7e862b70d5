package usecase

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"activity-flags/internal/domain"
	"activity-flags/internal/handoff"
	"activity-flags/internal/logger"
)

// Run carries the explicit, run-scoped state passed from stage to stage.
type Run struct {
	ID            string
	ReferenceDate string
	Handoff       *handoff.Store
	Report        *domain.RunReport
}

// Stage is one step of the pipeline. Reaches is the run state entered when
// Execute succeeds.
type Stage interface {
	Name() string
	Reaches() domain.RunState
	Execute(ctx context.Context, run *Run) error
}

// ExtractStage publishes the raw ledger.
type ExtractStage struct {
	extractor *Extractor
}

func NewExtractStage(extractor *Extractor) *ExtractStage {
	return &ExtractStage{extractor: extractor}
}

func (s *ExtractStage) Name() string             { return "extract" }
func (s *ExtractStage) Reaches() domain.RunState { return domain.RunStateExtracted }

func (s *ExtractStage) Execute(ctx context.Context, run *Run) error {
	_, err := s.extractor.Extract(ctx, run.Handoff)
	return err
}

// TransformStage reads the extracted ledger, computes the flags and publishes them.
type TransformStage struct {
	artifacts   ArtifactStore
	decoder     LedgerDecoder
	codec       FlagsCodec
	transformer *Transformer
}

func NewTransformStage(artifacts ArtifactStore, decoder LedgerDecoder, codec FlagsCodec, transformer *Transformer) *TransformStage {
	return &TransformStage{artifacts: artifacts, decoder: decoder, codec: codec, transformer: transformer}
}

func (s *TransformStage) Name() string             { return "transform" }
func (s *TransformStage) Reaches() domain.RunState { return domain.RunStateTransformed }

func (s *TransformStage) Execute(ctx context.Context, run *Run) error {
	log := logger.FromContext(ctx)

	ledgerRef, err := run.Handoff.Get(handoff.KeyExtractedLedger)
	if err != nil {
		return err
	}
	data, err := s.artifacts.Get(ctx, ledgerRef)
	if err != nil {
		return fmt.Errorf("could not read ledger artifact: %w", err)
	}
	ledger, err := s.decoder.DecodeLedger(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("could not decode ledger artifact: %w", err)
	}

	agg, err := s.transformer.Aggregate(ledger, run.ReferenceDate)
	if err != nil {
		return err
	}
	flags := s.transformer.Flags(agg)

	run.Report.LedgerRows = len(ledger)
	run.Report.InWindowRows = agg.InWindowRows
	run.Report.FlagRows = len(flags)

	var buf bytes.Buffer
	if err := s.codec.EncodeFlags(&buf, flags); err != nil {
		return fmt.Errorf("could not encode flags: %w", err)
	}
	ref, err := s.artifacts.Put(ctx, path.Join(run.ID, FlagsArtifactName), buf.Bytes())
	if err != nil {
		return fmt.Errorf("could not publish flags artifact: %w", err)
	}
	if err := run.Handoff.Set(handoff.KeyTransformedFlags, ref); err != nil {
		return err
	}

	log.Debug().
		Int("ledger_rows", len(ledger)).
		Int("in_window_rows", agg.InWindowRows).
		Int("flag_rows", len(flags)).
		Str("window", agg.Window.String()).
		Msg("flags computed")

	return nil
}

// LoadStage appends the published flags to the sink.
type LoadStage struct {
	artifacts ArtifactStore
	codec     FlagsCodec
	loader    *Loader
}

func NewLoadStage(artifacts ArtifactStore, codec FlagsCodec, loader *Loader) *LoadStage {
	return &LoadStage{artifacts: artifacts, codec: codec, loader: loader}
}

func (s *LoadStage) Name() string             { return "load" }
func (s *LoadStage) Reaches() domain.RunState { return domain.RunStateLoaded }

func (s *LoadStage) Execute(ctx context.Context, run *Run) error {
	ref, err := run.Handoff.Get(handoff.KeyTransformedFlags)
	if err != nil {
		return err
	}
	data, err := s.artifacts.Get(ctx, ref)
	if err != nil {
		return fmt.Errorf("could not read flags artifact: %w", err)
	}
	flags, err := s.codec.DecodeFlags(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("could not decode flags artifact: %w", err)
	}
	return s.loader.Load(ctx, flags)
}
