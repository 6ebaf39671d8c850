package ribbon

import (
	"fmt"
	gomath "math"

	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/math"
)

// ControlFrame is one input control. The zero Orientation means identity.
// Scale is only read when scale blending is enabled; nil means unit scale.
type ControlFrame struct {
	Name        string
	Position    math.Vec3
	Orientation math.Quat
	Scale       *math.Vec3
}

// NewControlFrame builds a control from a position and a 3x3 orientation.
func NewControlFrame(name string, pos math.Vec3, orient math.Mat3) ControlFrame {
	return ControlFrame{Name: name, Position: pos, Orientation: math.QuatFromMat3(orient)}
}

// rotation returns the normalized orientation.
func (c ControlFrame) rotation() math.Quat {
	if c.Orientation == (math.Quat{}) {
		return math.QuatIdentity()
	}
	return c.Orientation.Normalize()
}

func (c ControlFrame) scale() math.Vec3 {
	if c.Scale == nil {
		return math.Vec3{X: 1, Y: 1, Z: 1}
	}
	return *c.Scale
}

func (c ControlFrame) validate(index int, withScale bool) error {
	label := fmt.Sprintf("control %d", index)
	if c.Name != "" {
		label = fmt.Sprintf("control %d (%s)", index, c.Name)
	}
	if !c.Position.IsFinite() {
		return fmt.Errorf("%w: %s has non-finite position %v", ErrInvalidControl, label, c.Position)
	}
	q := c.Orientation
	for _, v := range [4]float64{q.X, q.Y, q.Z, q.W} {
		if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
			return fmt.Errorf("%w: %s has non-finite orientation %v", ErrInvalidControl, label, q)
		}
	}
	if withScale && c.Scale != nil && !c.Scale.IsFinite() {
		return fmt.Errorf("%w: %s has non-finite scale %v", ErrInvalidControl, label, *c.Scale)
	}
	return nil
}

// OutputFrame is one sample of a ribbon: a position and a right-handed
// orthonormal basis with Right = Tangent × Up.
type OutputFrame struct {
	Param    float64
	Position math.Vec3
	Tangent  math.Vec3
	Up       math.Vec3
	Right    math.Vec3
	Scale    *math.Vec3
}

// Basis returns the frame's basis as matrix columns (tangent, up, right).
func (f OutputFrame) Basis() math.Mat3 {
	return math.Mat3FromColumns(f.Tangent, f.Up, f.Right)
}

// Matrix returns a joint matrix whose aim axis follows the tangent and whose
// up axis follows the up vector. The third local axis is chosen to keep the
// matrix right-handed. aim and up must lie along different axes.
func (f OutputFrame) Matrix(aim, up math.Axis) math.Mat4 {
	var cols [3]math.Vec3
	cols[aim.Index()] = signed(f.Tangent, aim)
	cols[up.Index()] = signed(f.Up, up)
	k := 3 - aim.Index() - up.Index()
	cols[k] = cols[(k+1)%3].Cross(cols[(k+2)%3])

	rot := math.Mat3FromColumns(cols[0], cols[1], cols[2])
	scale := math.Vec3{X: 1, Y: 1, Z: 1}
	if f.Scale != nil {
		scale = *f.Scale
	}
	return math.Compose(f.Position, rot, scale)
}

func signed(v math.Vec3, a math.Axis) math.Vec3 {
	if a.Negative() {
		return v.Neg()
	}
	return v
}
