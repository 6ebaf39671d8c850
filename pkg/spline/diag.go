package spline

import "fmt"

// DiagnosticKind classifies a recovered, per-sample irregularity.
type DiagnosticKind int

const (
	// DegenerateTangent means the tangent probe collapsed onto the sample.
	DegenerateTangent DiagnosticKind = iota
	// DegenerateUp means the blended up vector was parallel to the tangent.
	DegenerateUp
	// ParameterizationFailure means arc-length inversion failed and the
	// uniform parameter was used instead.
	ParameterizationFailure
)

func (k DiagnosticKind) String() string {
	switch k {
	case DegenerateTangent:
		return "degenerate tangent"
	case DegenerateUp:
		return "degenerate up"
	case ParameterizationFailure:
		return "parameterization failure"
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic is a warning attached to one sample of an otherwise
// successful evaluation.
type Diagnostic struct {
	Kind   DiagnosticKind
	Sample int
	Param  float64
	Err    error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("sample %d (t=%.6g): %v", d.Sample, d.Param, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}
