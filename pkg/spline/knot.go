package spline

import (
	"fmt"
	"sort"
	"strings"
)

// KnotKind selects between clamped open curves and closed periodic curves.
type KnotKind int

const (
	// Open knot vectors clamp the curve to its first and last control.
	Open KnotKind = iota
	// Periodic knot vectors wrap the curve around into a closed loop.
	Periodic
)

func (k KnotKind) String() string {
	switch k {
	case Open:
		return "open"
	case Periodic:
		return "periodic"
	}
	return fmt.Sprintf("KnotKind(%d)", int(k))
}

// ParseKnotKind parses "open" or "periodic".
func ParseKnotKind(s string) (KnotKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open", "":
		return Open, nil
	case "periodic", "closed":
		return Periodic, nil
	}
	return Open, fmt.Errorf("%w: unknown knot kind %q", ErrInvalidConfig, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k KnotKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *KnotKind) UnmarshalText(text []byte) error {
	kind, err := ParseKnotKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// KnotVector is a uniform knot vector for a given control count and degree.
//
// For Open curves Knots has ControlCount+Degree+1 entries. For Periodic
// curves the evaluated control list is extended by Degree wrapped controls
// at each end (see WrapControls), so Knots has ControlCount+3*Degree+1
// entries and the valid domain is still [0,1].
type KnotVector struct {
	Kind         KnotKind
	ControlCount int
	Degree       int
	Knots        []float64
}

// CheckTopology validates a control count against a degree.
func CheckTopology(controlCount, degree int) error {
	if degree < 1 {
		return fmt.Errorf("%w: degree %d must be at least 1", ErrInvalidTopology, degree)
	}
	if controlCount < degree+1 {
		return fmt.Errorf("%w: %d controls cannot carry a degree %d curve (need %d)",
			ErrInvalidTopology, controlCount, degree, degree+1)
	}
	return nil
}

// NewKnotVector builds an open-uniform or periodic-uniform knot vector.
// It fails with ErrInvalidTopology before allocating anything if
// controlCount < degree+1.
func NewKnotVector(controlCount, degree int, kind KnotKind) (KnotVector, error) {
	if err := CheckTopology(controlCount, degree); err != nil {
		tracer().Errorf("rejected knot vector: %v", err)
		return KnotVector{}, err
	}
	n, p := controlCount, degree
	kv := KnotVector{Kind: kind, ControlCount: n, Degree: p}
	switch kind {
	case Open:
		kv.Knots = make([]float64, n+p+1)
		for i := range kv.Knots {
			switch {
			case i <= p:
				kv.Knots[i] = 0
			case i >= n:
				kv.Knots[i] = 1
			default:
				kv.Knots[i] = float64(i-p) / float64(n-p)
			}
		}
	case Periodic:
		kv.Knots = make([]float64, n+3*p+1)
		for i := range kv.Knots {
			kv.Knots[i] = float64(i-p) / float64(n+p)
		}
	default:
		return KnotVector{}, fmt.Errorf("%w: unknown knot kind %d", ErrInvalidConfig, int(kind))
	}
	tracer().Debugf("%s knot vector n=%d p=%d: %v", kind, n, p, kv.Knots)
	return kv, nil
}

// EvalCount is the number of controls the knots are built for. For
// periodic curves this includes the wrapped duplicates.
func (kv KnotVector) EvalCount() int {
	if kv.Kind == Periodic {
		return kv.ControlCount + 2*kv.Degree
	}
	return kv.ControlCount
}

// Domain returns the valid parameter range of the curve.
func (kv KnotVector) Domain() (lo, hi float64) {
	return kv.Knots[kv.Degree], kv.Knots[kv.EvalCount()]
}

// LoopLength returns the parameter length of one pass over the distinct
// controls: 1 for open curves and n/(n+p) for periodic curves, where the
// remainder of the domain repeats the start of the loop.
func (kv KnotVector) LoopLength() float64 {
	if kv.Kind == Periodic {
		return float64(kv.ControlCount) / float64(kv.ControlCount+kv.Degree)
	}
	return 1
}

// Span returns the index i of the knot span [Knots[i], Knots[i+1]) that
// contains t, clamped to the valid domain.
func (kv KnotVector) Span(t float64) int {
	lo, hi := kv.Degree, kv.EvalCount()-1
	if t <= kv.Knots[lo] {
		return lo
	}
	if t >= kv.Knots[hi+1] {
		return hi
	}
	// first knot strictly greater than t, minus one
	i := sort.Search(len(kv.Knots), func(i int) bool { return kv.Knots[i] > t }) - 1
	return min(max(i, lo), hi)
}

// IsValid checks length, monotonicity and (for open curves) end clamping.
func (kv KnotVector) IsValid() bool {
	if CheckTopology(kv.ControlCount, kv.Degree) != nil {
		return false
	}
	if len(kv.Knots) != kv.EvalCount()+kv.Degree+1 {
		return false
	}
	for i := 1; i < len(kv.Knots); i++ {
		if kv.Knots[i] < kv.Knots[i-1] {
			return false
		}
	}
	if kv.Kind == Open {
		for i := 0; i <= kv.Degree; i++ {
			if kv.Knots[i] != 0 || kv.Knots[len(kv.Knots)-1-i] != 1 {
				return false
			}
		}
	}
	return true
}

// Weights evaluates the basis weights at t. See the package-level Weights.
func (kv KnotVector) Weights(t, tol float64) []float64 {
	return Weights(t, kv.EvalCount(), kv.Degree, kv.Knots, tol)
}

// WrapControls returns the index map used to extend a periodic control list:
// entry j refers to original control (j-degree) mod n. The last degree
// controls are prepended and the first degree appended.
func WrapControls(n, degree int) []int {
	idx := make([]int, n+2*degree)
	for j := range idx {
		idx[j] = wrap(j-degree, n)
	}
	return idx
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
