// Package spline builds uniform B-spline knot vectors, evaluates Cox–de Boor
// basis weights and generates sample parameters along a curve, either
// uniformly in parameter space or uniformly in arc length.
//
// The package is purely numerical. It knows nothing about frames or
// orientations; package ribbon combines its weights with control frames.
package spline

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'spline'
func tracer() tracing.Trace {
	return tracing.Select("spline")
}

var (
	// ErrInvalidTopology indicates too few controls for the degree, a degree
	// below 1, or fewer than two requested samples.
	ErrInvalidTopology = errors.New("invalid spline topology")
	// ErrParameterization indicates an arc-length inversion that could not
	// bracket or converge on a parameter.
	ErrParameterization = errors.New("arc-length parameterization failed")
	// ErrInvalidConfig indicates a malformed parameterization request.
	ErrInvalidConfig = errors.New("invalid spline configuration")
)

// paramEpsilon is the slack allowed for caller-supplied parameters outside [0,1].
const paramEpsilon = 1e-9
