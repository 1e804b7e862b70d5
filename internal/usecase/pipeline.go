package usecase

import (
	"context"
	"fmt"
	"time"

	"activity-flags/internal/domain"
	"activity-flags/internal/handoff"
	"activity-flags/internal/logger"

	"github.com/google/uuid"
)

// Pipeline runs an ordered list of stages, strictly one after the other.
// There is no retry: a failing stage fails the run and the error goes back to
// the caller.
type Pipeline struct {
	stages   []Stage
	newRunID func() string
	now      func() time.Time
}

// PipelineOption customizes a Pipeline during construction.
type PipelineOption func(*Pipeline)

// WithRunIDGenerator overrides how run ids are minted.
func WithRunIDGenerator(gen func() string) PipelineOption {
	return func(p *Pipeline) {
		p.newRunID = gen
	}
}

// WithClock overrides the clock used for report timestamps.
func WithClock(clock func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		p.now = clock
	}
}

// NewPipeline creates a pipeline from explicit stages.
func NewPipeline(stages []Stage, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		stages:   stages,
		newRunID: uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Codec is the artifact serialization used between stages.
type Codec interface {
	LedgerDecoder
	FlagsCodec
}

// NewActivityFlagsPipeline wires the extract → transform → load chain.
func NewActivityFlagsPipeline(source LedgerSource, artifacts ArtifactStore, sink FlagsSink, codec Codec, transformer *Transformer, opts ...PipelineOption) *Pipeline {
	return NewPipeline([]Stage{
		NewExtractStage(NewExtractor(source, artifacts)),
		NewTransformStage(artifacts, codec, codec, transformer),
		NewLoadStage(artifacts, codec, NewLoader(sink)),
	}, opts...)
}

// StageNames lists the stages in execution order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, 0, len(p.stages))
	for _, s := range p.stages {
		names = append(names, s.Name())
	}
	return names
}

// Run executes one run for referenceDate. The report is always returned, also on
// failure, with the final state and the artifacts published so far.
func (p *Pipeline) Run(ctx context.Context, referenceDate string) (*domain.RunReport, error) {
	runID := p.newRunID()
	log := logger.WithFields(logger.FromContext(ctx), map[string]interface{}{
		"run_id":         runID,
		"reference_date": referenceDate,
	})
	ctx = logger.WithContext(ctx, log)

	report := &domain.RunReport{
		RunID:         runID,
		ReferenceDate: referenceDate,
		State:         domain.RunStatePending,
		Artifacts:     map[string]domain.ArtifactRef{},
		StartedAt:     p.now(),
	}
	run := &Run{
		ID:            runID,
		ReferenceDate: referenceDate,
		Handoff:       handoff.New(runID),
		Report:        report,
	}

	// Reject a bad reference date before anything is extracted.
	ref, err := domain.ParseReferenceDate(referenceDate)
	if err != nil {
		return p.fail(ctx, run, "", err)
	}
	window := domain.NewActivityWindow(ref)
	report.Window = &window

	log.Info().Str("window", window.String()).Strs("stages", p.StageNames()).Msg("run started")

	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return p.fail(ctx, run, stage.Name(), err)
		}

		stageLog := log.With().Str("stage", stage.Name()).Logger()
		stageLog.Info().Str("state", string(report.State)).Msg("stage started")

		if err := stage.Execute(logger.WithContext(ctx, stageLog), run); err != nil {
			return p.fail(ctx, run, stage.Name(), err)
		}

		next, err := report.State.Transition(stage.Reaches())
		if err != nil {
			return p.fail(ctx, run, stage.Name(), err)
		}
		report.State = next
		report.Artifacts = run.Handoff.Snapshot()

		stageLog.Info().Str("state", string(report.State)).Msg("stage finished")
	}

	report.FinishedAt = p.now()
	log.Info().
		Str("state", string(report.State)).
		Int("flag_rows", report.FlagRows).
		Dur("elapsed", report.FinishedAt.Sub(report.StartedAt)).
		Msg("run finished")

	return report, nil
}

func (p *Pipeline) fail(ctx context.Context, run *Run, stage string, err error) (*domain.RunReport, error) {
	report := run.Report
	report.State = domain.RunStateFailed
	report.FailedStage = stage
	report.Error = err.Error()
	report.Artifacts = run.Handoff.Snapshot()
	report.FinishedAt = p.now()

	log := logger.FromContext(ctx)
	log.Error().Err(err).Str("stage", stage).Msg("run failed")

	if stage == "" {
		return report, err
	}
	return report, fmt.Errorf("stage %s: %w", stage, err)
}
