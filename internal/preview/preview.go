// Package preview rasterizes a ribbon's projection onto a coordinate plane
// into a PNG, for eyeballing a build without a DCC.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/vector"

	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/math"
	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/ribbon"
)

// Plane selects the two world axes that map to image x and y.
type Plane int

const (
	XY Plane = iota
	XZ
	YZ
)

// ParsePlane parses "xy", "xz" or "yz".
func ParsePlane(s string) (Plane, error) {
	switch strings.ToLower(s) {
	case "xy", "":
		return XY, nil
	case "xz":
		return XZ, nil
	case "yz":
		return YZ, nil
	}
	return XY, fmt.Errorf("unknown preview plane %q", s)
}

func (p Plane) project(v math.Vec3) math.Vec2 {
	switch p {
	case XZ:
		return v.XZ()
	case YZ:
		return v.YZ()
	}
	return v.XY()
}

// Options control the preview image.
type Options struct {
	Width, Height int
	Plane         Plane

	// AxisLength is the length of the drawn tangent and up axes in world
	// units. 0 hides them.
	AxisLength float64

	// Margin in pixels. 0 picks one from the image size.
	Margin int

	// Closed joins the last frame back to the first, for periodic ribbons.
	Closed bool
}

// Colors used for each layer.
var (
	Background = color.RGBA{0xff, 0xff, 0xff, 0xff}
	HullColor  = color.RGBA{0xb0, 0xb0, 0xb0, 0xff}
	CurveColor = color.RGBA{0x20, 0x20, 0x20, 0xff}
	AimColor   = color.RGBA{0xd0, 0x30, 0x30, 0xff}
	UpColor    = color.RGBA{0x30, 0xa0, 0x30, 0xff}
	PointColor = color.RGBA{0x30, 0x50, 0xd0, 0xff}
)

// Render draws the control hull, the ribbon curve, each frame's aim and up
// axes and the control points.
func Render(controls []ribbon.ControlFrame, frames []ribbon.OutputFrame, opt Options) (*image.RGBA, error) {
	if opt.Width <= 0 || opt.Height <= 0 {
		return nil, fmt.Errorf("invalid preview size %dx%d", opt.Width, opt.Height)
	}
	if len(frames) == 0 && len(controls) == 0 {
		return nil, fmt.Errorf("nothing to draw")
	}
	if opt.Margin <= 0 {
		opt.Margin = max(4, min(opt.Width, opt.Height)/16)
	}

	var pts []math.Vec3
	for _, c := range controls {
		pts = append(pts, c.Position)
	}
	for _, f := range frames {
		pts = append(pts, f.Position)
		if opt.AxisLength > 0 {
			pts = append(pts, f.Position.Add(f.Tangent.Scale(opt.AxisLength)),
				f.Position.Add(f.Up.Scale(opt.AxisLength)))
		}
	}
	vp := fit(pts, opt)

	img := image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	c := &canvas{img: img, ras: vector.NewRasterizer(opt.Width, opt.Height)}
	c.polyline(vp, controlPositions(controls), 1, HullColor)
	curve := framePositions(frames)
	if opt.Closed && len(curve) > 1 {
		curve = append(curve, curve[0])
	}
	c.polyline(vp, curve, 2, CurveColor)
	if opt.AxisLength > 0 {
		c.axes(vp, frames, func(f ribbon.OutputFrame) math.Vec3 { return f.Tangent }, opt.AxisLength, AimColor)
		c.axes(vp, frames, func(f ribbon.OutputFrame) math.Vec3 { return f.Up }, opt.AxisLength, UpColor)
	}
	c.dots(vp, controlPositions(controls), 3, PointColor)
	return img, nil
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// Save writes img as a PNG file, creating the directory if needed.
func Save(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return f.Close()
}

func controlPositions(controls []ribbon.ControlFrame) []math.Vec3 {
	pts := make([]math.Vec3, len(controls))
	for i, c := range controls {
		pts[i] = c.Position
	}
	return pts
}

func framePositions(frames []ribbon.OutputFrame) []math.Vec3 {
	pts := make([]math.Vec3, len(frames))
	for i, f := range frames {
		pts[i] = f.Position
	}
	return pts
}
