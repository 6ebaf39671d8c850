package ribbon

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/math"
	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/spline"
)

// State is a step of a ribbon build.
type State int

// Build states. A build moves Configured → KnotsBuilt → Sampled → Done,
// or stops in Failed.
const (
	Configured State = iota
	KnotsBuilt
	Sampled
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Configured:
		return "configured"
	case KnotsBuilt:
		return "knots-built"
	case Sampled:
		return "sampled"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger for state transitions and diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// Builder runs ribbon builds for one configuration. A Builder is not safe
// for concurrent use; State reports the outcome of the last Build.
type Builder struct {
	cfg   Config
	log   *zap.Logger
	state State
	err   error
}

// NewBuilder validates cfg and returns a Builder in the Configured state.
func NewBuilder(cfg Config, opts ...Option) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Builder{cfg: cfg, log: zap.NewNop(), state: Configured}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// State returns the current build state.
func (b *Builder) State() State {
	return b.state
}

// Err returns the error that moved the builder to Failed, if any.
func (b *Builder) Err() error {
	return b.err
}

// Config returns the builder's configuration as given.
func (b *Builder) Config() Config {
	return b.cfg
}

// build carries the data of one Build call between states.
type build struct {
	cfg      Config
	controls []ControlFrame
	extended []ControlFrame // periodic: wrapped duplicates at both ends
	knots    spline.KnotVector
	params   []float64
	probes   []float64
	flipped  []bool
	diags    [][]spline.Diagnostic
}

// Build evaluates the ribbon for controls. Fatal errors abort the build and
// leave the builder in Failed. Per-sample irregularities are returned in
// Result.Diagnostics.
func (b *Builder) Build(ctx context.Context, controls []ControlFrame) (*Result, error) {
	b.state, b.err = Configured, nil
	bd := &build{cfg: b.cfg.resolve(len(controls)), controls: controls}

	if err := b.buildKnots(bd); err != nil {
		return nil, b.fail(err)
	}
	b.enter(KnotsBuilt, zap.Int("controls", len(controls)), zap.Int("degree", bd.knots.Degree),
		zap.Stringer("kind", bd.knots.Kind))

	if err := b.sample(bd); err != nil {
		return nil, b.fail(err)
	}
	b.enter(Sampled, zap.Int("samples", len(bd.params)))

	frames, err := b.blend(ctx, bd)
	if err != nil {
		return nil, b.fail(err)
	}

	res := &Result{
		Frames: frames,
		Knots:  bd.knots,
		Params: bd.params,
	}
	for _, ds := range bd.diags {
		res.Diagnostics = append(res.Diagnostics, ds...)
	}
	for _, d := range res.Diagnostics {
		b.log.Warn("ribbon diagnostic",
			zap.Stringer("kind", d.Kind),
			zap.Int("sample", d.Sample),
			zap.Float64("t", d.Param),
			zap.Error(d.Err))
	}
	b.enter(Done, zap.Int("frames", len(frames)), zap.Int("diagnostics", len(res.Diagnostics)))
	return res, nil
}

func (b *Builder) enter(s State, fields ...zap.Field) {
	b.state = s
	b.log.Debug("ribbon state", append([]zap.Field{zap.Stringer("state", s)}, fields...)...)
}

func (b *Builder) fail(err error) error {
	b.state, b.err = Failed, err
	b.log.Debug("ribbon state", zap.Stringer("state", Failed), zap.Error(err))
	return err
}

// buildKnots validates the controls, wraps them for periodic curves and
// builds the knot vector.
func (b *Builder) buildKnots(bd *build) error {
	cfg := bd.cfg
	if err := spline.CheckTopology(len(bd.controls), cfg.Degree); err != nil {
		return err
	}
	if cfg.Samples < 2 {
		return fmt.Errorf("%w: %d samples requested, need at least 2", spline.ErrInvalidTopology, cfg.Samples)
	}
	for i, c := range bd.controls {
		if err := c.validate(i, cfg.BlendScale); err != nil {
			return err
		}
	}

	kv, err := spline.NewKnotVector(len(bd.controls), cfg.Degree, cfg.KnotKind)
	if err != nil {
		return err
	}
	bd.knots = kv
	bd.extended = bd.controls
	if kv.Kind == spline.Periodic {
		bd.extended = make([]ControlFrame, 0, kv.EvalCount())
		for _, j := range spline.WrapControls(len(bd.controls), cfg.Degree) {
			bd.extended = append(bd.extended, bd.controls[j])
		}
	}
	return nil
}

// position evaluates the curve at t over the extended control list.
func (bd *build) position(t float64) math.Vec3 {
	return weightedSum(bd.extended, bd.knots.Weights(t, bd.cfg.Tolerance))
}

// weights returns basis weights over the original controls. Periodic
// weights are folded back from the wrapped duplicates.
func (bd *build) weights(t float64) []float64 {
	w := bd.knots.Weights(t, bd.cfg.Tolerance)
	if bd.knots.Kind == spline.Periodic {
		return spline.ConsolidateWeights(w, bd.knots.ControlCount, bd.knots.Degree)
	}
	return w
}

// sample produces the sample parameters and their tangent probes.
func (b *Builder) sample(bd *build) error {
	params, pdiags, err := spline.SampleParameters(bd.cfg.Samples, bd.cfg.Parameterization,
		spline.DomainOf(bd.knots), bd.position)
	if err != nil {
		if errors.Is(err, spline.ErrInvalidConfig) {
			err = fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return err
	}
	n := len(params)
	bd.params = params
	bd.probes = make([]float64, n)
	bd.flipped = make([]bool, n)
	bd.diags = make([][]spline.Diagnostic, n)
	for _, d := range pdiags {
		bd.diags[d.Sample] = append(bd.diags[d.Sample], d)
	}

	eps := bd.cfg.TangentOffset
	for i, t := range params {
		probe := t + eps
		if probe > 1 {
			probe = t - 2*eps
			bd.flipped[i] = true
		}
		bd.probes[i] = probe
	}
	return nil
}

// blend evaluates every sample, in parallel when Workers > 1. Each sample
// only writes its own slot, so results do not depend on scheduling.
func (b *Builder) blend(ctx context.Context, bd *build) ([]OutputFrame, error) {
	frames := make([]OutputFrame, len(bd.params))
	one := func(i int) {
		frame, diags := Blend(BlendInput{
			Sample:       i,
			Param:        bd.params[i],
			Controls:     bd.controls,
			Weights:      bd.weights(bd.params[i]),
			ProbeWeights: bd.weights(bd.probes[i]),
			FlipProbe:    bd.flipped[i],
			AimAxis:      bd.cfg.AimAxis,
			UpAxis:       bd.cfg.UpAxis,
			BlendScale:   bd.cfg.BlendScale,
			Tolerance:    bd.cfg.Tolerance,
		})
		frames[i] = frame
		bd.diags[i] = append(bd.diags[i], diags...)
	}

	if bd.cfg.Workers <= 1 {
		for i := range frames {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			one(i)
		}
		return frames, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bd.cfg.Workers)
	for i := range frames {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			one(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}

// Build is a one-shot NewBuilder(cfg).Build(ctx, controls).
func Build(ctx context.Context, cfg Config, controls []ControlFrame, opts ...Option) (*Result, error) {
	b, err := NewBuilder(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return b.Build(ctx, controls)
}
