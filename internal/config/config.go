// Package config handles ribbontool configuration loading and management.
package config

import (
	"fmt"
	"strings"

	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/math"
	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/ribbon"
	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/spline"
)

// Config holds all tool settings.
type Config struct {
	Ribbon  RibbonConfig  `yaml:"ribbon"`
	Preview PreviewConfig `yaml:"preview"`
	Logging LoggingConfig `yaml:"logging"`
}

// RibbonConfig holds the ribbon build settings.
type RibbonConfig struct {
	Degree           int             `yaml:"degree"` // 0 = control count - 1
	KnotKind         spline.KnotKind `yaml:"knot_kind"`
	Samples          int             `yaml:"samples"`
	Parameterization string          `yaml:"parameterization"` // uniform, arc_length, custom
	CustomParameters []float64       `yaml:"custom_parameters,omitempty"`
	ArcLength        ArcLengthConfig `yaml:"arc_length"`
	TangentOffset    float64         `yaml:"tangent_offset"`
	AimAxis          math.Axis       `yaml:"aim_axis"`
	UpAxis           math.Axis       `yaml:"up_axis"`
	BlendScale       bool            `yaml:"blend_scale"`
	Tolerance        float64         `yaml:"tolerance"`
	Workers          int             `yaml:"workers"`
}

// ArcLengthConfig holds arc-length inversion settings. Zero values pick
// the library defaults.
type ArcLengthConfig struct {
	Segments      int     `yaml:"segments"`
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
}

// PreviewConfig holds PNG preview settings.
type PreviewConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Plane      string  `yaml:"plane"`       // xy, xz or yz
	AxisLength float64 `yaml:"axis_length"` // frame axis length in world units, 0 hides axes
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	rc := ribbon.DefaultConfig()
	return &Config{
		Ribbon: RibbonConfig{
			Degree:           rc.Degree,
			KnotKind:         rc.KnotKind,
			Samples:          rc.Samples,
			Parameterization: "uniform",
			ArcLength: ArcLengthConfig{
				MaxIterations: spline.DefaultMaxIterations,
				Tolerance:     spline.DefaultArcTolerance,
			},
			TangentOffset: rc.TangentOffset,
			AimAxis:       rc.AimAxis,
			UpAxis:        rc.UpAxis,
			Tolerance:     rc.Tolerance,
			Workers:       rc.Workers,
		},
		Preview: PreviewConfig{
			Width:      512,
			Height:     512,
			Plane:      "xy",
			AxisLength: 0.5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// RibbonConfig converts the ribbon section into a library configuration.
func (c *Config) RibbonConfig() (ribbon.Config, error) {
	r := c.Ribbon
	rc := ribbon.Config{
		Degree:        r.Degree,
		KnotKind:      r.KnotKind,
		Samples:       r.Samples,
		TangentOffset: r.TangentOffset,
		AimAxis:       r.AimAxis,
		UpAxis:        r.UpAxis,
		BlendScale:    r.BlendScale,
		Tolerance:     r.Tolerance,
		Workers:       r.Workers,
	}
	switch strings.ToLower(r.Parameterization) {
	case "", "uniform":
		rc.Parameterization = spline.Uniform{}
	case "arc_length", "arclength":
		rc.Parameterization = spline.ArcLength{
			Segments:      r.ArcLength.Segments,
			MaxIterations: r.ArcLength.MaxIterations,
			Tolerance:     r.ArcLength.Tolerance,
		}
	case "custom":
		if len(r.CustomParameters) == 0 {
			return ribbon.Config{}, fmt.Errorf("custom parameterization needs custom_parameters")
		}
		rc.Parameterization = spline.Custom{Values: r.CustomParameters}
	default:
		return ribbon.Config{}, fmt.Errorf("unknown parameterization %q", r.Parameterization)
	}
	if err := rc.Validate(); err != nil {
		return ribbon.Config{}, err
	}
	return rc, nil
}
