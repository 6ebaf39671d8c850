package config

import (
	"flag"
	"fmt"

	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/math"
	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/spline"
)

// Flags holds command-line overrides bound to one flag set. Each
// subcommand binds its own.
type Flags struct {
	config  *string
	debug   *bool
	logFile *string
	degree  *int
	kind    *string
	samples *int
	param   *string
	aim     *string
	up      *string
	workers *int
	scale   *bool
	plane   *string
}

// BindFlags registers the config override flags on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		config:  fs.String("config", "", "Path to config file"),
		debug:   fs.Bool("debug", false, "Enable debug logging"),
		logFile: fs.String("log-file", "", "Also write logs to this file"),
		degree:  fs.Int("degree", -1, "Curve degree (0 = control count - 1)"),
		kind:    fs.String("kind", "", "Knot kind: open or periodic"),
		samples: fs.Int("samples", 0, "Number of output frames"),
		param:   fs.String("param", "", "Parameterization: uniform, arc_length or custom"),
		aim:     fs.String("aim", "", "Aim axis, e.g. +x"),
		up:      fs.String("up", "", "Up axis, e.g. +y"),
		workers: fs.Int("workers", 0, "Parallel sample workers"),
		scale:   fs.Bool("blend-scale", false, "Blend control scales"),
		plane:   fs.String("plane", "", "Preview plane: xy, xz or yz"),
	}
}

// ConfigPath returns the explicit config path if provided via --config flag.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) error {
	if f == nil {
		return nil
	}
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.logFile != "" {
		cfg.Logging.LogFile = *f.logFile
	}
	if *f.degree >= 0 {
		cfg.Ribbon.Degree = *f.degree
	}
	if *f.kind != "" {
		kind, err := spline.ParseKnotKind(*f.kind)
		if err != nil {
			return fmt.Errorf("-kind: %w", err)
		}
		cfg.Ribbon.KnotKind = kind
	}
	if *f.samples > 0 {
		cfg.Ribbon.Samples = *f.samples
	}
	if *f.param != "" {
		cfg.Ribbon.Parameterization = *f.param
	}
	if *f.aim != "" {
		axis, err := math.ParseAxis(*f.aim)
		if err != nil {
			return fmt.Errorf("-aim: %w", err)
		}
		cfg.Ribbon.AimAxis = axis
	}
	if *f.up != "" {
		axis, err := math.ParseAxis(*f.up)
		if err != nil {
			return fmt.Errorf("-up: %w", err)
		}
		cfg.Ribbon.UpAxis = axis
	}
	if *f.workers > 0 {
		cfg.Ribbon.Workers = *f.workers
	}
	if *f.scale {
		cfg.Ribbon.BlendScale = true
	}
	if *f.plane != "" {
		cfg.Preview.Plane = *f.plane
	}
	return nil
}
