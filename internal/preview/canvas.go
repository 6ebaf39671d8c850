package preview

import (
	"image"
	"image/color"
	gomath "math"

	"golang.org/x/image/vector"

	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/math"
	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/ribbon"
)

// viewport maps world coordinates on the preview plane to pixels.
type viewport struct {
	plane  Plane
	min    math.Vec2
	scale  float64
	offset math.Vec2
	height int
}

// fit scales pts uniformly into the image, centered, y pointing up.
func fit(pts []math.Vec3, opt Options) viewport {
	vp := viewport{plane: opt.Plane, height: opt.Height, scale: 1}
	if len(pts) == 0 {
		return vp
	}
	lo := opt.Plane.project(pts[0])
	hi := lo
	for _, p := range pts[1:] {
		q := opt.Plane.project(p)
		lo, hi = lo.Min(q), hi.Max(q)
	}
	size := hi.Sub(lo)
	w := float64(opt.Width - 2*opt.Margin)
	h := float64(opt.Height - 2*opt.Margin)
	switch {
	case size.X > 0 && size.Y > 0:
		vp.scale = gomath.Min(w/size.X, h/size.Y)
	case size.X > 0:
		vp.scale = w / size.X
	case size.Y > 0:
		vp.scale = h / size.Y
	}
	vp.min = lo
	vp.offset = math.Vec2{
		X: float64(opt.Margin) + (w-size.X*vp.scale)/2,
		Y: float64(opt.Margin) + (h-size.Y*vp.scale)/2,
	}
	return vp
}

func (vp viewport) pixel(p math.Vec3) math.Vec2 {
	q := vp.plane.project(p).Sub(vp.min).Scale(vp.scale).Add(vp.offset)
	return math.Vec2{X: q.X, Y: float64(vp.height) - q.Y}
}

// canvas draws filled shapes one color layer at a time.
type canvas struct {
	img *image.RGBA
	ras *vector.Rasterizer
}

func (c *canvas) flush(col color.Color) {
	c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
	c.ras.Reset(c.img.Bounds().Dx(), c.img.Bounds().Dy())
}

// segment adds a line of the given pixel width as a quad.
func (c *canvas) segment(a, b math.Vec2, width float64) {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return
	}
	n := math.Vec2{X: -d.Y, Y: d.X}.Scale(width / 2 / l)
	c.ras.MoveTo(float32(a.X+n.X), float32(a.Y+n.Y))
	c.ras.LineTo(float32(b.X+n.X), float32(b.Y+n.Y))
	c.ras.LineTo(float32(b.X-n.X), float32(b.Y-n.Y))
	c.ras.LineTo(float32(a.X-n.X), float32(a.Y-n.Y))
	c.ras.ClosePath()
}

func (c *canvas) polyline(vp viewport, pts []math.Vec3, width float64, col color.Color) {
	for i := 1; i < len(pts); i++ {
		c.segment(vp.pixel(pts[i-1]), vp.pixel(pts[i]), width)
	}
	c.flush(col)
}

func (c *canvas) axes(vp viewport, frames []ribbon.OutputFrame, axis func(ribbon.OutputFrame) math.Vec3, length float64, col color.Color) {
	for _, f := range frames {
		c.segment(vp.pixel(f.Position), vp.pixel(f.Position.Add(axis(f).Scale(length))), 1.5)
	}
	c.flush(col)
}

func (c *canvas) dots(vp viewport, pts []math.Vec3, radius float64, col color.Color) {
	r := float32(radius)
	for _, p := range pts {
		q := vp.pixel(p)
		x, y := float32(q.X), float32(q.Y)
		c.ras.MoveTo(x-r, y-r)
		c.ras.LineTo(x+r, y-r)
		c.ras.LineTo(x+r, y+r)
		c.ras.LineTo(x-r, y+r)
		c.ras.ClosePath()
	}
	c.flush(col)
}
