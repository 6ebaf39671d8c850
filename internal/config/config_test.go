package config

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/math"
	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/spline"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Ribbon.KnotKind != spline.Open {
		t.Errorf("expected open knots, got %v", cfg.Ribbon.KnotKind)
	}
	if cfg.Ribbon.Samples != 10 {
		t.Errorf("expected 10 samples, got %d", cfg.Ribbon.Samples)
	}
	if cfg.Ribbon.Parameterization != "uniform" {
		t.Errorf("expected uniform parameterization, got %s", cfg.Ribbon.Parameterization)
	}
	if cfg.Ribbon.TangentOffset != 1e-3 {
		t.Errorf("expected tangent offset 1e-3, got %g", cfg.Ribbon.TangentOffset)
	}
	if cfg.Ribbon.AimAxis != math.PosX || cfg.Ribbon.UpAxis != math.PosY {
		t.Errorf("expected +x/+y axes, got %v/%v", cfg.Ribbon.AimAxis, cfg.Ribbon.UpAxis)
	}
	if cfg.Preview.Width != 512 || cfg.Preview.Height != 512 || cfg.Preview.Plane != "xy" {
		t.Errorf("unexpected preview defaults: %+v", cfg.Preview)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if _, err := cfg.RibbonConfig(); err != nil {
		t.Errorf("default ribbon config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ribbon.yaml")

	yamlContent := `
ribbon:
  degree: 3
  knot_kind: periodic
  samples: 24
  parameterization: arc_length
  arc_length:
    segments: 512
    max_iterations: 32
    tolerance: 1.0e-8
  tangent_offset: 0.002
  aim_axis: "-y"
  up_axis: "+z"
  blend_scale: true
  workers: 4

preview:
  width: 800
  height: 600
  plane: xz

logging:
  level: "debug"
  log_file: "ribbon.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Ribbon.Degree != 3 || cfg.Ribbon.KnotKind != spline.Periodic || cfg.Ribbon.Samples != 24 {
		t.Errorf("ribbon topology not loaded: %+v", cfg.Ribbon)
	}
	if cfg.Ribbon.AimAxis != math.NegY || cfg.Ribbon.UpAxis != math.PosZ {
		t.Errorf("axes not loaded: %v/%v", cfg.Ribbon.AimAxis, cfg.Ribbon.UpAxis)
	}
	if !cfg.Ribbon.BlendScale || cfg.Ribbon.Workers != 4 {
		t.Errorf("blend_scale/workers not loaded: %+v", cfg.Ribbon)
	}
	// untouched keys keep their defaults
	if cfg.Ribbon.Tolerance != 1e-6 {
		t.Errorf("expected default tolerance to survive, got %g", cfg.Ribbon.Tolerance)
	}
	if cfg.Preview.Width != 800 || cfg.Preview.Plane != "xz" || cfg.Preview.AxisLength != 0.5 {
		t.Errorf("preview not merged: %+v", cfg.Preview)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "ribbon.log" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}

	rc, err := cfg.RibbonConfig()
	if err != nil {
		t.Fatalf("RibbonConfig: %v", err)
	}
	arc, ok := rc.Parameterization.(spline.ArcLength)
	if !ok {
		t.Fatalf("expected arc-length parameterization, got %T", rc.Parameterization)
	}
	if arc.Segments != 512 || arc.MaxIterations != 32 || arc.Tolerance != 1e-8 {
		t.Errorf("arc-length settings not carried over: %+v", arc)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":       "ribbon:\n  samples: not a number\n  invalid syntax here\n",
		"unknown key":  "ribbon:\n  sampels: 12\n",
		"bad axis":     "ribbon:\n  aim_axis: sideways\n",
		"bad knotkind": "ribbon:\n  knot_kind: bezier\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid config, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Errorf("empty file should keep defaults, got %v", err)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/ribbon.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}
	if err := os.WriteFile(FileName, []byte("ribbon:\n  samples: 8\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		verify  func(*testing.T, *Config)
		wantErr bool
	}{
		{
			name: "debug flag",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "topology flags",
			args: []string{"-degree", "2", "-kind", "periodic", "-samples", "40"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Ribbon.Degree != 2 || cfg.Ribbon.KnotKind != spline.Periodic || cfg.Ribbon.Samples != 40 {
					t.Errorf("topology flags not applied: %+v", cfg.Ribbon)
				}
			},
		},
		{
			name: "axis flags",
			args: []string{"-aim", "-z", "-up", "x"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Ribbon.AimAxis != math.NegZ || cfg.Ribbon.UpAxis != math.PosX {
					t.Errorf("axis flags not applied: %v/%v", cfg.Ribbon.AimAxis, cfg.Ribbon.UpAxis)
				}
			},
		},
		{
			name: "unset flags keep values",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Ribbon.Degree != 0 || cfg.Ribbon.Samples != 10 || cfg.Ribbon.Workers != 1 {
					t.Errorf("defaults changed without flags: %+v", cfg.Ribbon)
				}
			},
		},
		{name: "bad axis", args: []string{"-up", "w"}, wantErr: true},
		{name: "bad kind", args: []string{"-kind", "loop"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			flags := BindFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			cfg := Default()
			err := applyFlags(cfg, flags)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applyFlags error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.verify != nil {
				tt.verify(t, cfg)
			}
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "ribbon.yaml")
	if err := os.WriteFile(configPath, []byte("ribbon:\n  samples: 12\n  degree: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse([]string{"-config", configPath, "-samples", "30"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Ribbon.Samples != 30 {
		t.Errorf("flag should beat file: samples = %d", cfg.Ribbon.Samples)
	}
	if cfg.Ribbon.Degree != 2 {
		t.Errorf("file should beat default: degree = %d", cfg.Ribbon.Degree)
	}
}

func TestRibbonConfig(t *testing.T) {
	cfg := Default()
	cfg.Ribbon.Parameterization = "custom"
	if _, err := cfg.RibbonConfig(); err == nil {
		t.Error("custom without values should fail")
	}
	cfg.Ribbon.CustomParameters = []float64{0, 0.5, 1}
	rc, err := cfg.RibbonConfig()
	if err != nil {
		t.Fatal(err)
	}
	if custom, ok := rc.Parameterization.(spline.Custom); !ok || len(custom.Values) != 3 {
		t.Errorf("custom parameters not carried over: %#v", rc.Parameterization)
	}

	cfg.Ribbon.Parameterization = "chebyshev"
	if _, err := cfg.RibbonConfig(); err == nil {
		t.Error("unknown parameterization should fail")
	}

	cfg = Default()
	cfg.Ribbon.UpAxis = math.NegX
	if _, err := cfg.RibbonConfig(); err == nil {
		t.Error("collinear axes should fail")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Ribbon.KnotKind = spline.Periodic
	cfg.Ribbon.AimAxis = math.NegZ
	cfg.Ribbon.Samples = 33

	path := filepath.Join(t.TempDir(), "nested", "ribbon.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"knot_kind: periodic", "samples: 33"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("saved config missing %q:\n%s", want, data)
		}
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Ribbon.KnotKind != spline.Periodic || loaded.Ribbon.AimAxis != math.NegZ || loaded.Ribbon.Samples != 33 {
		t.Errorf("round trip mismatch: %+v", loaded.Ribbon)
	}
	if loaded.Preview != cfg.Preview || loaded.Logging != cfg.Logging {
		t.Errorf("round trip mismatch: %+v %+v", loaded.Preview, loaded.Logging)
	}

	var buf bytes.Buffer
	if err := cfg.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != string(data) {
		t.Error("Write and SaveTo disagree")
	}
}
