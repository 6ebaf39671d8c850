package spline

import (
	"fmt"
	"math"
)

// Parameterization selects how sample parameters are generated. It is a
// closed set: Uniform, ArcLength or Custom.
type Parameterization interface {
	isParameterization()
}

// Uniform spaces samples evenly in parameter space.
type Uniform struct{}

// ArcLength spaces samples evenly along the curve. Zero fields take the
// defaults DefaultSegmentsPerControl*controls, DefaultMaxIterations and
// DefaultArcTolerance.
type ArcLength struct {
	Segments      int
	MaxIterations int
	Tolerance     float64
}

// Custom uses the given parameters as they are. For periodic curves the
// values are fractions of one loop.
type Custom struct {
	Values []float64
}

func (Uniform) isParameterization()   {}
func (ArcLength) isParameterization() {}
func (Custom) isParameterization()    {}

// Arc-length defaults.
const (
	DefaultSegmentsPerControl = 64
	DefaultMaxIterations      = 64
	DefaultArcTolerance       = 1e-6
)

// WithDefaults fills zero fields for a curve with controlCount controls.
func (a ArcLength) WithDefaults(controlCount int) ArcLength {
	if a.Segments <= 0 {
		a.Segments = DefaultSegmentsPerControl * max(controlCount, 1)
	}
	if a.MaxIterations <= 0 {
		a.MaxIterations = DefaultMaxIterations
	}
	if a.Tolerance <= 0 {
		a.Tolerance = DefaultArcTolerance
	}
	return a
}

// Domain is the parameter range samples are drawn from.
type Domain struct {
	Kind KnotKind
	// Loop is the parameter length of one pass: 1 for open curves,
	// n/(n+p) for periodic ones.
	Loop float64
	// Controls is the number of distinct controls, used for default table
	// resolution.
	Controls int
}

// DomainOf returns the sampling domain of a knot vector.
func DomainOf(kv KnotVector) Domain {
	return Domain{Kind: kv.Kind, Loop: kv.LoopLength(), Controls: kv.ControlCount}
}

// uniform returns the uniform parameter of sample i. Open samples include
// both ends; periodic samples stop one step short of the seam so the first
// and last sample never coincide.
func (d Domain) uniform(i, count int) float64 {
	if d.Kind == Periodic {
		return float64(i) / float64(count) * d.Loop
	}
	return float64(i) / float64(count-1)
}

// SampleParameters produces count sample parameters. curve is only
// evaluated for ArcLength and may be nil otherwise. Arc-length inversion
// failures fall back to the uniform parameter of that sample and are
// reported as ParameterizationFailure diagnostics.
func SampleParameters(count int, mode Parameterization, dom Domain, curve Curve) ([]float64, []Diagnostic, error) {
	if count < 2 {
		return nil, nil, fmt.Errorf("%w: %d samples requested, need at least 2", ErrInvalidTopology, count)
	}
	if dom.Loop <= 0 {
		dom.Loop = 1
	}
	switch m := mode.(type) {
	case nil, Uniform:
		params := make([]float64, count)
		for i := range params {
			params[i] = dom.uniform(i, count)
		}
		return params, nil, nil

	case Custom:
		if len(m.Values) != count {
			return nil, nil, fmt.Errorf("%w: %d custom parameters for %d samples",
				ErrInvalidConfig, len(m.Values), count)
		}
		params := make([]float64, count)
		for i, v := range m.Values {
			if v < -paramEpsilon || v > 1+paramEpsilon || math.IsNaN(v) {
				return nil, nil, fmt.Errorf("%w: custom parameter %d = %g outside [0,1]",
					ErrInvalidConfig, i, v)
			}
			v = min(max(v, 0), 1)
			if dom.Kind == Periodic {
				v *= dom.Loop
			}
			params[i] = v
		}
		return params, nil, nil

	case ArcLength:
		if curve == nil {
			return nil, nil, fmt.Errorf("%w: arc-length parameterization needs a curve", ErrInvalidConfig)
		}
		return arcLengthParameters(count, m.WithDefaults(dom.Controls), dom, curve)
	}
	return nil, nil, fmt.Errorf("%w: unknown parameterization %T", ErrInvalidConfig, mode)
}

func arcLengthParameters(count int, a ArcLength, dom Domain, curve Curve) ([]float64, []Diagnostic, error) {
	tab := NewArcLengthTable(curve, 0, dom.Loop, a.Segments)
	total := tab.Total()
	tracer().Debugf("arc-length table: %d segments, total length %.6g", a.Segments, total)

	params := make([]float64, count)
	var diags []Diagnostic
	for i := range params {
		var s float64
		if dom.Kind == Periodic {
			s = float64(i) / float64(count) * total
		} else {
			s = float64(i) / float64(count-1) * total
		}
		t, err := tab.Invert(s, a.MaxIterations, a.Tolerance)
		if err != nil {
			t = dom.uniform(i, count)
			tracer().Infof("sample %d: %v, using uniform t=%.6g", i, err, t)
			diags = append(diags, Diagnostic{
				Kind:   ParameterizationFailure,
				Sample: i,
				Param:  t,
				Err:    err,
			})
		}
		params[i] = t
	}
	return params, diags, nil
}
