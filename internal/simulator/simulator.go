package simulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"armsim/internal/config"
	"armsim/pkg/domain"
	"armsim/pkg/kinematics"
	"armsim/pkg/logger"
	"armsim/pkg/metrics"
	"armsim/pkg/render"
	"armsim/pkg/serrors"
	"armsim/pkg/storage"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	instrumentationName = "armsim/internal/simulator"

	// DefaultLimit is the page size used when none is requested.
	DefaultLimit = 20
	// MaxLimit caps the page size.
	MaxLimit = 100

	outcomeOK          = "ok"
	outcomeUnreachable = "unreachable"
	outcomeInvalid     = "invalid"
	outcomeError       = "error"
)

// Options configure validation, rendering and telemetry of the simulator.
type Options struct {
	// MaxLinkLength is the largest accepted link length.
	MaxLinkLength float64
	// RenderMaxAttempts is how many times a render job runs before the
	// simulation is marked failed.
	RenderMaxAttempts int
	// ViewportHalfExtent is half the side of the drawing viewport.
	ViewportHalfExtent float64

	// MeterProvider and TracerProvider default to the otel globals.
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxLinkLength:      cfg.Simulator.MaxLinkLength,
		RenderMaxAttempts:  cfg.Simulator.RenderMaxAttempts,
		ViewportHalfExtent: cfg.Simulator.ViewportHalfExtent,
	}
}

// simulator is the concrete implementation of the Simulator interface. It
// solves requests, stores them and enqueues their drawings.
type simulator struct {
	options Options
	storage storage.Storage

	tracer   trace.Tracer
	solves   metric.Int64Counter
	duration metric.Float64Histogram
}

// New creates a Simulator backed by the provided storage.
func New(storage storage.Storage, options Options) (Simulator, error) {
	if options.MeterProvider == nil {
		options.MeterProvider = otel.GetMeterProvider()
	}
	if options.TracerProvider == nil {
		options.TracerProvider = otel.GetTracerProvider()
	}
	if options.ViewportHalfExtent <= 0 {
		options.ViewportHalfExtent = render.DefaultHalfExtent
	}

	meter := options.MeterProvider.Meter(instrumentationName)
	solves, err := meter.Int64Counter("armsim.simulator.solves",
		metric.WithDescription("Number of kinematics requests by mode and outcome"))
	if err != nil {
		return nil, fmt.Errorf("could not create solves counter: %w", err)
	}
	duration, err := meter.Float64Histogram("armsim.simulator.solve.duration",
		metric.WithDescription("Time spent solving and storing a request"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create duration histogram: %w", err)
	}

	return &simulator{
		options:  options,
		storage:  storage,
		tracer:   options.TracerProvider.Tracer(instrumentationName),
		solves:   solves,
		duration: duration,
	}, nil
}

// observe records the outcome of a solve on the span and the instruments.
func (s *simulator) observe(ctx context.Context, span trace.Span, mode domain.Mode, start time.Time, err error) {
	outcome := outcomeOK
	switch {
	case err == nil:
	case errors.Is(err, kinematics.ErrUnreachableTarget):
		outcome = outcomeUnreachable
	case errors.Is(err, serrors.ErrBadRequest):
		outcome = outcomeInvalid
	default:
		outcome = outcomeError
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.String("outcome", outcome))

	attrs := metric.WithAttributes(
		attribute.String("mode", string(mode)),
		attribute.String("outcome", outcome),
	)
	s.solves.Add(ctx, 1, attrs)
	s.duration.Record(ctx, time.Since(start).Seconds(), attrs)
}

// Forward solves the pose reached with the requested angles and stores it.
func (s *simulator) Forward(ctx context.Context,
	userID domain.UserID,
	req ForwardRequest) (sim *domain.Simulation, err error) {
	ctx, span := s.tracer.Start(ctx, "simulator.Forward")
	defer span.End()
	defer func(start time.Time) { s.observe(ctx, span, domain.ModeForward, start, err) }(time.Now())

	solved, err := SolveForward(req, s.options.MaxLinkLength)
	if err != nil {
		return nil, err
	}
	solved.UserID = userID
	solved.Status = domain.RenderStatusPending

	return s.store(ctx, solved)
}

// Inverse solves the joint angles reaching the requested target and stores
// the result. Targets beyond the reach of the arm are not stored.
func (s *simulator) Inverse(ctx context.Context,
	userID domain.UserID,
	req InverseRequest) (sim *domain.Simulation, err error) {
	ctx, span := s.tracer.Start(ctx, "simulator.Inverse")
	defer span.End()
	defer func(start time.Time) { s.observe(ctx, span, domain.ModeInverse, start, err) }(time.Now())

	solved, err := SolveInverse(req, s.options.MaxLinkLength)
	if err != nil {
		return nil, err
	}
	if solved.InnerBoundViolation {
		logger.Warn(ctx, "target lies inside the inner workspace bound, returning the folded pose",
			zap.Float64("x", solved.Target.X),
			zap.Float64("y", solved.Target.Y),
			zap.Float64("innerReach", solved.Links.InnerReach()))
	}
	solved.UserID = userID
	solved.Status = domain.RenderStatusPending

	return s.store(ctx, solved)
}

// store persists a simulation and enqueues its render job in one transaction.
func (s *simulator) store(ctx context.Context, sim domain.Simulation) (*domain.Simulation, error) {
	var stored *domain.Simulation
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		res, err := tx.StoreSimulations(ctx, sim)
		if err != nil {
			return fmt.Errorf("could not store simulation: %w", err)
		}
		stored = &res[0]

		if _, err := tx.AddJob(ctx, RenderJobArgs{
			SimulationID: uuid.UUID(stored.ID),
			maxAttempts:  s.options.RenderMaxAttempts,
		}, nil); err != nil {
			return fmt.Errorf("could not add render job: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not save simulation: %w", err)
	}

	return stored, nil
}

// PreviewForward solves a forward request and draws it without storing anything.
func (s *simulator) PreviewForward(ctx context.Context, req ForwardRequest) (svg []byte, err error) {
	ctx, span := s.tracer.Start(ctx, "simulator.PreviewForward")
	defer span.End()
	defer func(start time.Time) { s.observe(ctx, span, domain.ModeForward, start, err) }(time.Now())

	solved, err := SolveForward(req, s.options.MaxLinkLength)
	if err != nil {
		return nil, err
	}

	return s.draw(Scene(&solved))
}

func (s *simulator) draw(scene render.Scene) ([]byte, error) {
	opts := render.DefaultOptions()
	opts.HalfExtent = s.options.ViewportHalfExtent

	svg, err := render.SVG(scene, opts)
	if err != nil {
		return nil, fmt.Errorf("could not render pose: %w", err)
	}

	return svg, nil
}

// Simulations returns a page of a user's simulations, optionally filtered by
// mode. The cursor is the nextCursor returned with the previous page.
func (s *simulator) Simulations(ctx context.Context,
	userID domain.UserID,
	mode domain.Mode,
	cursor string,
	limit uint) ([]domain.Simulation, string, error) {
	switch mode {
	case "", domain.ModeForward, domain.ModeInverse:
	default:
		return nil, "", serrors.With(serrors.ErrBadRequest, "invalid mode %q", mode)
	}

	after, err := parseCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	if limit == 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	page, err := s.storage.UserSimulations(ctx, userID, mode, after, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get user simulations: %w", err)
	}

	return page.Simulations, formatCursor(page.NextCursor), nil
}

// Result fetches a single simulation of the given user.
func (s *simulator) Result(ctx context.Context,
	userID domain.UserID,
	simulationID domain.SimulationID) (*domain.Simulation, error) {
	res, err := s.storage.UserSimulationByID(ctx, userID, simulationID)
	if err != nil {
		return nil, fmt.Errorf("could not get simulation: %w", err)
	}
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "simulation not found")
	}

	return res, nil
}

// Rendering returns the stored drawing of a user's simulation.
func (s *simulator) Rendering(ctx context.Context,
	userID domain.UserID,
	simulationID domain.SimulationID) ([]byte, error) {
	sim, err := s.Result(ctx, userID, simulationID)
	if err != nil {
		return nil, err
	}

	switch sim.Status {
	case domain.RenderStatusRendered:
		return sim.Rendering, nil
	case domain.RenderStatusFailed:
		return nil, serrors.With(serrors.ErrUnprocessable, "simulation could not be rendered")
	default:
		return nil, serrors.With(serrors.ErrUnavailable, "rendering is pending")
	}
}

// Delete soft-deletes a user's simulation. A pending render job finds
// nothing to draw and is cancelled by the worker.
func (s *simulator) Delete(ctx context.Context, userID domain.UserID, simulationID domain.SimulationID) error {
	res, err := s.storage.DeleteSimulation(ctx, userID, simulationID)
	if err != nil {
		return fmt.Errorf("could not delete simulation: %w", err)
	}
	if res == nil {
		return serrors.With(serrors.ErrNotFound, "simulation not found")
	}

	return nil
}

// Render draws a stored simulation and saves the drawing. Drawing failures
// are recorded on the simulation, which turns FAILED once RenderMaxAttempts
// is reached.
func (s *simulator) Render(ctx context.Context, simulationID domain.SimulationID) error {
	ctx, span := s.tracer.Start(ctx, "simulator.Render",
		trace.WithAttributes(attribute.String("simulationID", simulationID.String())))
	defer span.End()

	sim, err := s.storage.SimulationByID(ctx, simulationID)
	if err != nil {
		return fmt.Errorf("could not get simulation: %w", err)
	}
	if sim == nil {
		return serrors.With(serrors.ErrNotFound, "simulation not found")
	}
	if sim.Status == domain.RenderStatusRendered {
		return nil
	}

	svg, renderErr := s.draw(Scene(sim))
	if renderErr != nil {
		span.RecordError(renderErr)
		span.SetStatus(codes.Error, renderErr.Error())

		msg := renderErr.Error()
		if _, err := s.storage.UpdateSimulationByID(ctx, simulationID, storage.SimulationUpdates{
			Status:      domain.RenderStatusFailed,
			LastError:   &msg,
			MaxAttempts: s.options.RenderMaxAttempts,
		}); err != nil {
			return fmt.Errorf("could not record render failure: %w", err)
		}

		return renderErr
	}

	noError := ""
	if _, err := s.storage.UpdateSimulationByID(ctx, simulationID, storage.SimulationUpdates{
		Status:    domain.RenderStatusRendered,
		Rendering: svg,
		LastError: &noError,
	}); err != nil {
		return fmt.Errorf("could not save rendering: %w", err)
	}

	return nil
}
