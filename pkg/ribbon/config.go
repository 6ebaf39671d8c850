package ribbon

import (
	"fmt"

	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/math"
	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/spline"
)

// Defaults applied to zero Config fields.
const (
	DefaultSamples       = 10
	DefaultTangentOffset = 1e-3
	DefaultTolerance     = 1e-6
	DefaultWorkers       = 1
)

// Config describes one ribbon build.
type Config struct {
	// Degree of the curve. 0 means controlCount-1.
	Degree   int
	KnotKind spline.KnotKind
	// Samples is the number of output frames. With a Custom
	// parameterization 0 means one frame per custom value.
	Samples int
	// Parameterization is spline.Uniform, spline.ArcLength or spline.Custom.
	// nil means Uniform.
	Parameterization spline.Parameterization
	// TangentOffset is the parameter step to the tangent probe.
	TangentOffset float64
	AimAxis       math.Axis
	UpAxis        math.Axis
	// BlendScale enables linear scale blending. Linear blending does not
	// respect non-uniform scale and is only an approximation.
	BlendScale bool
	Tolerance  float64
	// Workers > 1 evaluates samples in parallel.
	Workers int
}

// DefaultConfig returns an open, uniform ribbon aiming down +X with +Y up.
func DefaultConfig() Config {
	return Config{
		KnotKind:         spline.Open,
		Samples:          DefaultSamples,
		Parameterization: spline.Uniform{},
		TangentOffset:    DefaultTangentOffset,
		AimAxis:          math.PosX,
		UpAxis:           math.PosY,
		Tolerance:        DefaultTolerance,
		Workers:          DefaultWorkers,
	}
}

// Validate checks the fields that do not depend on the control list.
func (c Config) Validate() error {
	if c.Degree < 0 {
		return fmt.Errorf("%w: negative degree %d", ErrInvalidConfig, c.Degree)
	}
	if c.KnotKind != spline.Open && c.KnotKind != spline.Periodic {
		return fmt.Errorf("%w: unknown knot kind %v", ErrInvalidConfig, c.KnotKind)
	}
	if c.Samples < 0 {
		return fmt.Errorf("%w: negative sample count %d", ErrInvalidConfig, c.Samples)
	}
	if c.TangentOffset < 0 || c.TangentOffset >= 0.5 {
		return fmt.Errorf("%w: tangent offset %g outside [0, 0.5); 0 selects the default", ErrInvalidConfig, c.TangentOffset)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: negative tolerance %g", ErrInvalidConfig, c.Tolerance)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidConfig, c.Workers)
	}
	if !c.AimAxis.Valid() || !c.UpAxis.Valid() {
		return fmt.Errorf("%w: invalid axis (aim %v, up %v)", ErrInvalidConfig, c.AimAxis, c.UpAxis)
	}
	if c.AimAxis.Index() == c.UpAxis.Index() {
		return fmt.Errorf("%w: aim axis %v and up axis %v are collinear", ErrInvalidConfig, c.AimAxis, c.UpAxis)
	}
	switch p := c.Parameterization.(type) {
	case nil, spline.Uniform, spline.Custom:
	case spline.ArcLength:
		if p.Segments < 0 || p.MaxIterations < 0 || p.Tolerance < 0 {
			return fmt.Errorf("%w: negative arc-length setting %+v", ErrInvalidConfig, p)
		}
	default:
		return fmt.Errorf("%w: unknown parameterization %T", ErrInvalidConfig, p)
	}
	return nil
}

// resolve fills zero fields for a build over controlCount controls.
func (c Config) resolve(controlCount int) Config {
	if c.Degree == 0 {
		c.Degree = controlCount - 1
	}
	if c.Parameterization == nil {
		c.Parameterization = spline.Uniform{}
	}
	if c.Samples == 0 {
		if custom, ok := c.Parameterization.(spline.Custom); ok {
			c.Samples = len(custom.Values)
		}
	}
	if c.TangentOffset == 0 {
		c.TangentOffset = DefaultTangentOffset
	}
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	return c
}
