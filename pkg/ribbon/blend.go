package ribbon

import (
	"fmt"

	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/math"
	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/spline"
)

// BlendInput is everything needed to blend one output frame.
type BlendInput struct {
	Sample int
	Param  float64
	// Controls and Weights are parallel. ProbeWeights are the weights at
	// the tangent probe parameter.
	Controls     []ControlFrame
	Weights      []float64
	ProbeWeights []float64
	// FlipProbe is set when the probe lies behind the sample.
	FlipProbe  bool
	AimAxis    math.Axis
	UpAxis     math.Axis
	BlendScale bool
	Tolerance  float64
}

// Blend combines weighted controls into one orthonormal output frame.
//
// Position and tangent probe are affine blends of the control positions.
// The up vector comes from the blended control orientation, which is built
// by slerping pairwise in control order, q = slerp(q, q_i, w_i/sum(w_0..w_i)).
// Degenerate tangents and up vectors are replaced by orientation axes and
// reported as diagnostics.
func Blend(in BlendInput) (OutputFrame, []spline.Diagnostic) {
	var diags []spline.Diagnostic
	report := func(kind spline.DiagnosticKind, err error) {
		diags = append(diags, spline.Diagnostic{Kind: kind, Sample: in.Sample, Param: in.Param, Err: err})
	}

	pos := weightedSum(in.Controls, in.Weights)
	target := weightedSum(in.Controls, in.ProbeWeights)
	orient := blendOrientation(in.Controls, in.Weights)

	dir := target.Sub(pos)
	if in.FlipProbe {
		dir = dir.Neg()
	}
	var tangent math.Vec3
	if dist := dir.Length(); dist < in.Tolerance {
		tangent = orient.Rotate(in.AimAxis.Vector()).Normalize()
		report(spline.DegenerateTangent, fmt.Errorf("%w: probe distance %.3g below %.3g",
			ErrDegenerateTangent, dist, in.Tolerance))
	} else {
		tangent = dir.Scale(1 / dist)
	}

	up := orient.Rotate(in.UpAxis.Vector()).ProjectOut(tangent)
	if up.Length() < in.Tolerance {
		third := math.Axis(3 - in.AimAxis.Index() - in.UpAxis.Index())
		up = orient.Rotate(third.Vector()).ProjectOut(tangent)
		report(spline.DegenerateUp, fmt.Errorf("%w: up axis %v parallel to tangent",
			ErrDegenerateUp, in.UpAxis))
	}
	up = up.Normalize()

	right := tangent.Cross(up).Normalize()
	up = right.Cross(tangent)

	frame := OutputFrame{
		Param:    in.Param,
		Position: pos,
		Tangent:  tangent,
		Up:       up,
		Right:    right,
	}
	if in.BlendScale {
		var s math.Vec3
		for i, w := range in.Weights {
			if w != 0 {
				s = s.Add(in.Controls[i].scale().Scale(w))
			}
		}
		frame.Scale = &s
	}
	return frame, diags
}

func weightedSum(controls []ControlFrame, weights []float64) math.Vec3 {
	var p math.Vec3
	for i, w := range weights {
		if w != 0 {
			p = p.Add(controls[i].Position.Scale(w))
		}
	}
	return p
}

// blendOrientation averages orientations by iterative pairwise slerp in
// control order. Each step moves the running average toward the next
// orientation by that control's share of the weight seen so far.
func blendOrientation(controls []ControlFrame, weights []float64) math.Quat {
	q := math.QuatIdentity()
	var seen float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		seen += w
		qi := controls[i].rotation()
		if seen == w {
			q = qi
			continue
		}
		q = q.Slerp(qi, w/seen).Normalize()
	}
	return q
}
