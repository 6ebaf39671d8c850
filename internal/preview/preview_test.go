package preview

import (
	"bytes"
	"context"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/math"
	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/ribbon"
)

func arch(t *testing.T) ([]ribbon.ControlFrame, []ribbon.OutputFrame) {
	t.Helper()
	controls := []ribbon.ControlFrame{
		{Name: "a", Position: math.V3(0, 0, 0)},
		{Name: "b", Position: math.V3(5, 5, 0)},
		{Name: "c", Position: math.V3(10, 0, 0)},
	}
	cfg := ribbon.DefaultConfig()
	cfg.Samples = 9
	res, err := ribbon.Build(context.Background(), cfg, controls)
	require.NoError(t, err)
	return controls, res.Frames
}

func painted(t *testing.T, opt Options) int {
	t.Helper()
	controls, frames := arch(t)
	img, err := Render(controls, frames, opt)
	require.NoError(t, err)
	require.Equal(t, opt.Width, img.Bounds().Dx())
	require.Equal(t, opt.Height, img.Bounds().Dy())

	n := 0
	for y := 0; y < opt.Height; y++ {
		for x := 0; x < opt.Width; x++ {
			if img.RGBAAt(x, y) != Background {
				n++
			}
		}
	}
	return n
}

func TestRender(t *testing.T) {
	opt := Options{Width: 64, Height: 48, Plane: XY, AxisLength: 0.5}
	assert.Greater(t, painted(t, opt), 0)

	// Without axes the bounds are the controls and the curve alone.
	opt.AxisLength = 0
	controls, frames := arch(t)
	img, err := Render(controls, frames, opt)
	require.NoError(t, err)

	// Control points are drawn last.
	opt.Margin = max(4, min(opt.Width, opt.Height)/16)
	vp := fit(append(controlPositions(controls), framePositions(frames)...), opt)
	p := vp.pixel(controls[1].Position)
	c := img.RGBAAt(int(p.X), int(p.Y))
	assert.Greater(t, c.B, c.R, "pixel at middle control %v", c)
}

func TestRenderEdgeOnPlane(t *testing.T) {
	// The arch lies in XY, so seen from XZ it collapses to a line.
	assert.Greater(t, painted(t, Options{Width: 32, Height: 32, Plane: XZ}), 0)
}

func TestRenderClosed(t *testing.T) {
	square := []ribbon.OutputFrame{
		{Position: math.V3(0, 0, 0)},
		{Position: math.V3(10, 0, 0)},
		{Position: math.V3(10, 10, 0)},
		{Position: math.V3(0, 10, 0)},
	}
	// With a 4px margin the left edge x=0 maps to pixel column 4.
	opt := Options{Width: 64, Height: 64, Plane: XY, Margin: 4}
	img, err := Render(nil, square, opt)
	require.NoError(t, err)
	assert.Equal(t, Background, img.RGBAAt(4, 32), "open curve drawn across the seam")
	assert.Less(t, img.RGBAAt(60, 32).R, uint8(0x80), "right edge missing")

	opt.Closed = true
	img, err = Render(nil, square, opt)
	require.NoError(t, err)
	assert.Less(t, img.RGBAAt(4, 32).R, uint8(0x80), "closed curve leaves a gap at the seam")
}

func TestRenderErrors(t *testing.T) {
	controls, frames := arch(t)
	_, err := Render(controls, frames, Options{Width: 0, Height: 10})
	assert.Error(t, err)
	_, err = Render(nil, nil, Options{Width: 10, Height: 10})
	assert.Error(t, err)
}

func TestParsePlane(t *testing.T) {
	tests := []struct {
		in   string
		want Plane
		err  bool
	}{
		{"xy", XY, false},
		{"", XY, false},
		{"XZ", XZ, false},
		{"yz", YZ, false},
		{"zx", XY, true},
	}
	for _, tt := range tests {
		got, err := ParsePlane(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSave(t *testing.T) {
	controls, frames := arch(t)
	img, err := Render(controls, frames, Options{Width: 40, Height: 30, Plane: XY})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	path := filepath.Join(t.TempDir(), "out", "ribbon.png")
	require.NoError(t, Save(path, img))
}
