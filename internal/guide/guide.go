// Package guide reads and writes guide files: YAML lists of named control
// frames that stand in for the rig controls a ribbon is built from.
package guide

import (
	"errors"
	"fmt"
	gomath "math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/math"
	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/ribbon"
)

// ErrMalformed reports a guide file that parses as YAML but does not
// describe valid controls.
var ErrMalformed = errors.New("malformed guide")

// Guide is a named, ordered list of controls.
type Guide struct {
	Name     string    `yaml:"name,omitempty"`
	Controls []Control `yaml:"controls"`
}

// Control is one guide entry. Rotation is a quaternion (x, y, z, w); Euler
// is XYZ rotation in degrees. At most one of them may be set.
type Control struct {
	Name     string    `yaml:"name,omitempty"`
	Position []float64 `yaml:"position,flow"`
	Rotation []float64 `yaml:"rotation,flow,omitempty"`
	Euler    []float64 `yaml:"euler,flow,omitempty"`
	Scale    []float64 `yaml:"scale,flow,omitempty"`
}

// Load reads and validates a guide file.
func Load(path string) (*Guide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Parse decodes and validates guide YAML.
func Parse(data []byte) (*Guide, error) {
	var g Guide
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	if len(g.Controls) == 0 {
		return nil, fmt.Errorf("%w: no controls", ErrMalformed)
	}
	for i, c := range g.Controls {
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("%w: control %d %s", ErrMalformed, i, err)
		}
	}
	return &g, nil
}

func (c Control) validate() error {
	if len(c.Position) != 3 {
		return fmt.Errorf("position needs 3 values, got %d", len(c.Position))
	}
	if c.Rotation != nil && c.Euler != nil {
		return fmt.Errorf("rotation and euler are mutually exclusive")
	}
	if c.Rotation != nil && len(c.Rotation) != 4 {
		return fmt.Errorf("rotation needs 4 values (x y z w), got %d", len(c.Rotation))
	}
	if c.Euler != nil && len(c.Euler) != 3 {
		return fmt.Errorf("euler needs 3 values, got %d", len(c.Euler))
	}
	if c.Scale != nil && len(c.Scale) != 3 {
		return fmt.Errorf("scale needs 3 values, got %d", len(c.Scale))
	}
	if c.Rotation != nil && c.Rotation[0] == 0 && c.Rotation[1] == 0 && c.Rotation[2] == 0 && c.Rotation[3] == 0 {
		return fmt.Errorf("rotation is a zero quaternion")
	}
	return nil
}

// Frame converts the entry to a control frame.
func (c Control) Frame() ribbon.ControlFrame {
	f := ribbon.ControlFrame{
		Name:     c.Name,
		Position: vec(c.Position),
	}
	switch {
	case c.Rotation != nil:
		f.Orientation = math.Quat{X: c.Rotation[0], Y: c.Rotation[1], Z: c.Rotation[2], W: c.Rotation[3]}.Normalize()
	case c.Euler != nil:
		f.Orientation = math.QuatFromEuler(radians(c.Euler[0]), radians(c.Euler[1]), radians(c.Euler[2]))
	default:
		f.Orientation = math.QuatIdentity()
	}
	if c.Scale != nil {
		s := vec(c.Scale)
		f.Scale = &s
	}
	return f
}

// Frames returns the guide's control frames in order.
func (g *Guide) Frames() []ribbon.ControlFrame {
	frames := make([]ribbon.ControlFrame, len(g.Controls))
	for i, c := range g.Controls {
		frames[i] = c.Frame()
	}
	return frames
}

// FromControls builds a guide from control frames. Orientations are
// stored as quaternions.
func FromControls(name string, controls []ribbon.ControlFrame) *Guide {
	g := &Guide{Name: name, Controls: make([]Control, len(controls))}
	for i, f := range controls {
		q := f.Orientation
		if q == (math.Quat{}) {
			q = math.QuatIdentity()
		}
		c := Control{
			Name:     f.Name,
			Position: []float64{f.Position.X, f.Position.Y, f.Position.Z},
			Rotation: []float64{q.X, q.Y, q.Z, q.W},
		}
		if f.Scale != nil {
			c.Scale = []float64{f.Scale.X, f.Scale.Y, f.Scale.Z}
		}
		g.Controls[i] = c
	}
	return g
}

// Save writes the guide as YAML.
func (g *Guide) Save(path string) error {
	data, err := yaml.Marshal(g)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func vec(v []float64) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func radians(deg float64) float64 {
	return deg * gomath.Pi / 180
}
