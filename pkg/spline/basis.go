package spline

// Weights evaluates the Cox–de Boor basis weights of all controlCount
// controls at parameter t.
//
// t is clamped below at knots[degree]. If t+tol exceeds 1 the result is
// one-hot on the last control, which sidesteps the zero-width terminal span
// of a clamped knot vector. Zero-width denominators contribute 0, so
// repeated knots never yield NaN. Within the domain the weights are
// non-negative and sum to 1.
func Weights(t float64, controlCount, degree int, knots []float64, tol float64) []float64 {
	w := make([]float64, controlCount)
	if controlCount == 0 {
		return w
	}
	if t < knots[degree] {
		t = knots[degree]
	}
	if t+tol > 1.0 {
		w[controlCount-1] = 1
		return w
	}

	// degree-0 indicators of the half-open spans [knots[i], knots[i+1])
	m := len(knots) - 1
	b := make([]float64, m)
	for i := 0; i < m; i++ {
		if knots[i] <= t && t < knots[i+1] {
			b[i] = 1
		}
	}
	// raise the degree in place; b[i+1] is read before it is overwritten
	for d := 1; d <= degree; d++ {
		for i := 0; i < m-d; i++ {
			var left, right float64
			if den := knots[i+d] - knots[i]; den != 0 {
				left = (t - knots[i]) / den * b[i]
			}
			if den := knots[i+d+1] - knots[i+1]; den != 0 {
				right = (knots[i+d+1] - t) / den * b[i+1]
			}
			b[i] = left + right
		}
	}
	copy(w, b)
	return w
}

// ConsolidateWeights folds the weights of a wrapped periodic control list
// (length n+2*degree) back onto the n original controls.
func ConsolidateWeights(w []float64, controlCount, degree int) []float64 {
	out := make([]float64, controlCount)
	for j, v := range w {
		out[wrap(j-degree, controlCount)] += v
	}
	return out
}
