package ribbon

import (
	"errors"
	"strings"
	"testing"

	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/math"
	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/spline"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.TangentOffset != 1e-3 || cfg.Tolerance != 1e-6 {
		t.Errorf("unexpected numeric defaults: %+v", cfg)
	}
	if cfg.AimAxis != math.PosX || cfg.UpAxis != math.PosY {
		t.Errorf("axes = %v/%v, want +x/+y", cfg.AimAxis, cfg.UpAxis)
	}
}

func TestResolve(t *testing.T) {
	cfg := Config{UpAxis: math.PosZ}
	r := cfg.resolve(5)
	if r.Degree != 4 {
		t.Errorf("Degree = %d, want controlCount-1", r.Degree)
	}
	if r.TangentOffset != DefaultTangentOffset || r.Tolerance != DefaultTolerance || r.Workers != 1 {
		t.Errorf("zero fields not defaulted: %+v", r)
	}
	if _, ok := r.Parameterization.(spline.Uniform); !ok {
		t.Errorf("Parameterization = %T, want Uniform", r.Parameterization)
	}

	cfg.Parameterization = spline.Custom{Values: []float64{0, 0.3, 1}}
	if r := cfg.resolve(5); r.Samples != 3 {
		t.Errorf("Samples = %d, want one per custom value", r.Samples)
	}
	cfg.Degree = 2
	if r := cfg.resolve(5); r.Degree != 2 {
		t.Errorf("explicit degree overridden: %d", r.Degree)
	}
}

func TestTangentOffsetRange(t *testing.T) {
	tests := []struct {
		offset float64
		ok     bool
	}{
		{0, true}, // default
		{1e-3, true},
		{0.4999, true},
		{0.5, false},
		{-1e-3, false},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.TangentOffset = tt.offset
		err := cfg.Validate()
		if tt.ok {
			if err != nil {
				t.Errorf("offset %g: %v", tt.offset, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("offset %g: err = %v, want ErrInvalidConfig", tt.offset, err)
			continue
		}
		if !strings.Contains(err.Error(), "[0, 0.5); 0 selects the default") {
			t.Errorf("offset %g: message %q does not state the accepted range", tt.offset, err)
		}
	}
}
