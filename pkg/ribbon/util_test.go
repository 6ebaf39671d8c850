package ribbon

import (
	gomath "math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/math"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func at(pts ...math.Vec3) []ControlFrame {
	controls := make([]ControlFrame, len(pts))
	for i, p := range pts {
		controls[i] = ControlFrame{Position: p}
	}
	return controls
}

func checkOrthonormal(t *testing.T, i int, f OutputFrame) {
	t.Helper()
	const tol = 1e-9
	for name, v := range map[string]math.Vec3{"tangent": f.Tangent, "up": f.Up, "right": f.Right} {
		if l := v.Length(); gomath.Abs(l-1) > tol {
			t.Errorf("frame %d: |%s| = %v, want 1", i, name, l)
		}
	}
	if d := f.Tangent.Dot(f.Up); gomath.Abs(d) > tol {
		t.Errorf("frame %d: tangent·up = %v", i, d)
	}
	if d := f.Tangent.Dot(f.Right); gomath.Abs(d) > tol {
		t.Errorf("frame %d: tangent·right = %v", i, d)
	}
	if d := f.Up.Dot(f.Right); gomath.Abs(d) > tol {
		t.Errorf("frame %d: up·right = %v", i, d)
	}
	if d := f.Tangent.Cross(f.Up).Dot(f.Right); gomath.Abs(d-1) > tol {
		t.Errorf("frame %d: basis is not right-handed (%v)", i, d)
	}
}
