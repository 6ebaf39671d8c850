package ribbon

import (
	"go.uber.org/multierr"

	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/math"
	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/spline"
)

// Result is the output of a successful build.
type Result struct {
	Frames      []OutputFrame
	Diagnostics []spline.Diagnostic
	Knots       spline.KnotVector
	Params      []float64
}

// Err combines all diagnostics into one error, or returns nil for a clean
// build. errors.Is matches the sentinels of the individual diagnostics.
func (r *Result) Err() error {
	var err error
	for _, d := range r.Diagnostics {
		err = multierr.Append(err, d)
	}
	return err
}

// Positions returns the frame positions in sample order.
func (r *Result) Positions() []math.Vec3 {
	pts := make([]math.Vec3, len(r.Frames))
	for i, f := range r.Frames {
		pts[i] = f.Position
	}
	return pts
}
