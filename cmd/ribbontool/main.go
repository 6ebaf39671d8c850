// ribbontool evaluates spline ribbons from guide files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/guidogonzalezc/puiastre-tools-sub001/internal/config"
	"github.com/guidogonzalezc/puiastre-tools-sub001/internal/guide"
	"github.com/guidogonzalezc/puiastre-tools-sub001/internal/logger"
	"github.com/guidogonzalezc/puiastre-tools-sub001/internal/preview"
	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/ribbon"
	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/spline"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "eval":
		err = cmdEval(args)
	case "knots":
		err = cmdKnots(args)
	case "weights", "w":
		err = cmdWeights(args)
	case "preview":
		err = cmdPreview(args)
	case "config":
		err = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if logging {
			logger.Error(command+" failed", zap.Error(err))
			logger.Sync()
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
	logger.Sync()
}

// logging is set once the logger is initialized; earlier errors go to
// stderr directly.
var logging bool

func printUsage() {
	fmt.Println(`ribbontool - spline ribbon evaluator

Usage:
  ribbontool <command> [options] [args]

Commands:
  eval [options] <guide.yaml>       Build the ribbon and write output frames
  knots [options]                   Print the knot vector for -n controls
  weights [options]                 Print basis weights at -t
  preview [options] <guide.yaml>    Render the ribbon to a PNG
  config [options]                  Print the effective configuration

Common options:
  -config, -debug, -log-file, -degree, -kind, -samples, -param,
  -aim, -up, -workers, -blend-scale, -plane

Examples:
  ribbontool eval -samples 12 arm.yaml > frames.yaml
  ribbontool eval -kind periodic -o belt.yaml belt_guide.yaml
  ribbontool knots -n 5 -degree 3 -kind periodic
  ribbontool weights -n 4 -t 0.25
  ribbontool preview -plane xz -o arm.png arm.yaml`)
}

// setup parses args on fs, loads the config and starts logging.
func setup(fs *flag.FlagSet, args []string) (*config.Config, error) {
	flags := config.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	logging = true
	logger.Sugar.Debugf("config: %+v", cfg)
	return cfg, nil
}

// output returns stdout or a created file, plus its closer.
func output(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// buildGuide loads a guide and builds its ribbon with the configured settings.
func buildGuide(path string, cfg *config.Config) (*guide.Guide, *ribbon.Result, error) {
	g, err := guide.Load(path)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("guide loaded", zap.String("path", path), zap.Int("controls", len(g.Controls)))
	rc, err := cfg.RibbonConfig()
	if err != nil {
		return nil, nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := ribbon.Build(ctx, rc, g.Frames(), ribbon.WithLogger(logger.Named("ribbon")))
	if err != nil {
		return nil, nil, fmt.Errorf("building %s: %w", path, err)
	}
	logger.Info("ribbon built",
		zap.String("guide", g.Name),
		zap.Int("controls", len(g.Controls)),
		zap.Int("frames", len(res.Frames)),
		zap.Int("diagnostics", len(res.Diagnostics)))
	if err := res.Err(); err != nil {
		logger.Warn("ribbon has diagnostics", zap.String("guide", g.Name), zap.Error(err))
	}
	return g, res, nil
}

func cmdEval(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	out := fs.String("o", "", "Output file (default stdout)")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: ribbontool eval [options] <guide.yaml>")
	}

	g, res, err := buildGuide(fs.Arg(0), cfg)
	if err != nil {
		return err
	}
	w, closeOut, err := output(*out)
	if err != nil {
		return err
	}
	if err := guide.WriteFrames(w, g.Name, res.Frames, cfg.Ribbon.AimAxis, cfg.Ribbon.UpAxis); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

type knotReport struct {
	Kind         spline.KnotKind `yaml:"kind"`
	ControlCount int             `yaml:"controls"`
	Degree       int             `yaml:"degree"`
	EvalCount    int             `yaml:"eval_count"`
	Domain       [2]float64      `yaml:"domain,flow"`
	LoopLength   float64         `yaml:"loop_length"`
	Knots        []float64       `yaml:"knots,flow"`
	Wrap         []int           `yaml:"wrap,flow,omitempty"`
}

func knotVector(n int, cfg *config.Config) (spline.KnotVector, error) {
	degree := cfg.Ribbon.Degree
	if degree == 0 {
		degree = n - 1
	}
	return spline.NewKnotVector(n, degree, cfg.Ribbon.KnotKind)
}

func cmdKnots(args []string) error {
	fs := flag.NewFlagSet("knots", flag.ExitOnError)
	n := fs.Int("n", 4, "Number of controls")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}

	kv, err := knotVector(*n, cfg)
	if err != nil {
		return err
	}
	lo, hi := kv.Domain()
	rep := knotReport{
		Kind:         kv.Kind,
		ControlCount: kv.ControlCount,
		Degree:       kv.Degree,
		EvalCount:    kv.EvalCount(),
		Domain:       [2]float64{lo, hi},
		LoopLength:   kv.LoopLength(),
		Knots:        kv.Knots,
	}
	if kv.Kind == spline.Periodic {
		rep.Wrap = spline.WrapControls(kv.ControlCount, kv.Degree)
	}
	return yaml.NewEncoder(os.Stdout).Encode(rep)
}

type weightReport struct {
	Param   float64   `yaml:"t"`
	Span    int       `yaml:"span"`
	Weights []float64 `yaml:"weights,flow"`

	// Consolidated folds periodic duplicates onto the original controls.
	Consolidated []float64 `yaml:"consolidated,flow,omitempty"`
}

func cmdWeights(args []string) error {
	fs := flag.NewFlagSet("weights", flag.ExitOnError)
	n := fs.Int("n", 4, "Number of controls")
	t := fs.Float64("t", 0, "Curve parameter")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}

	kv, err := knotVector(*n, cfg)
	if err != nil {
		return err
	}
	if lo, hi := kv.Domain(); *t < lo || *t > hi {
		return fmt.Errorf("-t %g outside domain [%g, %g]", *t, lo, hi)
	}
	rep := weightReport{
		Param:   *t,
		Span:    kv.Span(*t),
		Weights: kv.Weights(*t, cfg.Ribbon.Tolerance),
	}
	if kv.Kind == spline.Periodic {
		rep.Consolidated = spline.ConsolidateWeights(rep.Weights, kv.ControlCount, kv.Degree)
	}
	return yaml.NewEncoder(os.Stdout).Encode(rep)
}

func cmdPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	out := fs.String("o", "ribbon.png", "Output PNG")
	width := fs.Int("width", 0, "Image width (default from config)")
	height := fs.Int("height", 0, "Image height (default from config)")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: ribbontool preview [options] <guide.yaml>")
	}

	plane, err := preview.ParsePlane(cfg.Preview.Plane)
	if err != nil {
		return err
	}
	opt := preview.Options{
		Width:      cfg.Preview.Width,
		Height:     cfg.Preview.Height,
		Plane:      plane,
		AxisLength: cfg.Preview.AxisLength,
	}
	if *width > 0 {
		opt.Width = *width
	}
	if *height > 0 {
		opt.Height = *height
	}

	g, res, err := buildGuide(fs.Arg(0), cfg)
	if err != nil {
		return err
	}
	opt.Closed = res.Knots.Kind == spline.Periodic
	img, err := preview.Render(g.Frames(), res.Frames, opt)
	if err != nil {
		return err
	}
	if err := preview.Save(*out, img); err != nil {
		return err
	}
	logger.Info("preview written", zap.String("path", *out), zap.Int("width", opt.Width), zap.Int("height", opt.Height))
	return nil
}

func cmdConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	out := fs.String("o", "", "Write to this file instead of stdout")
	save := fs.Bool("save", false, "Save to the user config directory")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	if _, err := cfg.RibbonConfig(); err != nil {
		return err
	}

	switch {
	case *save:
		if err := cfg.Save(); err != nil {
			return err
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		return nil
	case *out != "":
		return cfg.SaveTo(*out)
	}
	return cfg.Write(os.Stdout)
}
