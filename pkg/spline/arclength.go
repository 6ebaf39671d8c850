package spline

import (
	"fmt"
	gomath "math"
	"sort"

	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/math"
)

// Curve evaluates a curve position at parameter t.
type Curve func(t float64) math.Vec3

// ArcLengthTable is a cumulative chord-length table over evenly spaced
// parameters of a curve. It maps parameters to approximate lengths and,
// by bisection on the evaluated curve, lengths back to parameters.
type ArcLengthTable struct {
	curve  Curve
	params []float64
	points []math.Vec3
	cum    []float64
	extent float64 // largest distance of a sampled point from the first
}

// NewArcLengthTable samples curve at segments+1 evenly spaced parameters
// in [lo, hi].
func NewArcLengthTable(curve Curve, lo, hi float64, segments int) *ArcLengthTable {
	if segments < 1 {
		segments = 1
	}
	tab := &ArcLengthTable{
		curve:  curve,
		params: make([]float64, segments+1),
		points: make([]math.Vec3, segments+1),
		cum:    make([]float64, segments+1),
	}
	for i := 0; i <= segments; i++ {
		t := lo + (hi-lo)*float64(i)/float64(segments)
		tab.params[i] = t
		tab.points[i] = curve(t)
		if i > 0 {
			tab.cum[i] = tab.cum[i-1] + tab.points[i].Distance(tab.points[i-1])
			tab.extent = max(tab.extent, tab.points[i].Distance(tab.points[0]))
		}
	}
	return tab
}

// Total returns the approximate length of the curve over the table range.
func (tab *ArcLengthTable) Total() float64 {
	return tab.cum[len(tab.cum)-1]
}

// LengthAt returns the length from the start of the table to parameter t:
// the table prefix up to the enclosing segment plus the chord to curve(t).
func (tab *ArcLengthTable) LengthAt(t float64) float64 {
	last := len(tab.params) - 1
	if t <= tab.params[0] {
		return 0
	}
	if t >= tab.params[last] {
		return tab.cum[last]
	}
	k := sort.SearchFloat64s(tab.params, t) - 1
	k = min(max(k, 0), last-1)
	return tab.cum[k] + tab.curve(t).Distance(tab.points[k])
}

// Measurable reports whether the table length is distinguishable from
// rounding noise: it must exceed tol times the curve's extent, with an
// extent floor of 1.
func (tab *ArcLengthTable) Measurable(tol float64) bool {
	total := tab.Total()
	if gomath.IsNaN(total) || gomath.IsInf(total, 0) {
		return false
	}
	return total > tol*max(1, tab.extent)
}

// Invert finds the parameter at which the curve has length s. It brackets
// s within one table segment and bisects on LengthAt. tol is relative to
// the total length. Inversion fails with ErrParameterization if the curve
// has no length, s lies outside [0, Total()], or bisection does not reach
// tol within maxIter steps.
func (tab *ArcLengthTable) Invert(s float64, maxIter int, tol float64) (float64, error) {
	total := tab.Total()
	if !tab.Measurable(tol) {
		return 0, fmt.Errorf("%w: curve length %.3g is not measurable", ErrParameterization, total)
	}
	slack := tol * total
	if s < -slack || s > total+slack {
		return 0, fmt.Errorf("%w: length %.6g outside [0, %.6g]", ErrParameterization, s, total)
	}
	last := len(tab.cum) - 1
	if s <= 0 {
		return tab.params[0], nil
	}
	if s >= total {
		return tab.params[last], nil
	}
	j := sort.Search(len(tab.cum), func(i int) bool { return tab.cum[i] >= s })
	if j == 0 {
		return tab.params[0], nil
	}
	k := j - 1
	if tab.cum[j]-s <= slack {
		return tab.params[j], nil
	}

	lo, hi := tab.params[k], tab.params[k+1]
	for iter := 0; iter < maxIter; iter++ {
		mid := (lo + hi) / 2
		f := tab.cum[k] + tab.curve(mid).Distance(tab.points[k]) - s
		if gomath.Abs(f) <= slack {
			return mid, nil
		}
		if f < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0, fmt.Errorf("%w: no convergence for length %.6g after %d iterations",
		ErrParameterization, s, maxIter)
}
