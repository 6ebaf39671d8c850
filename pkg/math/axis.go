package math

import (
	"fmt"
	"strings"
)

// Axis names one of the six signed local axes.
type Axis int

// Signed local axes.
const (
	PosX Axis = iota
	PosY
	PosZ
	NegX
	NegY
	NegZ
)

var axisNames = [...]string{"+x", "+y", "+z", "-x", "-y", "-z"}

// Vector returns the unit vector for the axis.
func (a Axis) Vector() Vec3 {
	switch a {
	case PosX:
		return Vec3{1, 0, 0}
	case PosY:
		return Vec3{0, 1, 0}
	case PosZ:
		return Vec3{0, 0, 1}
	case NegX:
		return Vec3{-1, 0, 0}
	case NegY:
		return Vec3{0, -1, 0}
	case NegZ:
		return Vec3{0, 0, -1}
	}
	return Vec3{}
}

// Index returns the component index (0=X, 1=Y, 2=Z) the axis lies along.
func (a Axis) Index() int {
	return int(a) % 3
}

// Negative reports whether the axis points along the negative direction.
func (a Axis) Negative() bool {
	return a >= NegX
}

// Valid reports whether a is one of the six named axes.
func (a Axis) Valid() bool {
	return a >= PosX && a <= NegZ
}

func (a Axis) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// ParseAxis parses "+x", "-y", "z" and similar (case-insensitive).
// A missing sign means positive.
func ParseAxis(s string) (Axis, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 1 {
		s = "+" + s
	}
	for i, name := range axisNames {
		if s == name {
			return Axis(i), nil
		}
	}
	return PosX, fmt.Errorf("unknown axis %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid axis %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(text []byte) error {
	parsed, err := ParseAxis(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
