package guide

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/math"
	"github.com/guidogonzalezc/puiastre-tools-sub001/pkg/ribbon"
)

// FrameRecord is the exported form of one output frame.
type FrameRecord struct {
	Index    int        `yaml:"index"`
	Param    float64    `yaml:"param"`
	Position [3]float64 `yaml:"position,flow"`
	Tangent  [3]float64 `yaml:"tangent,flow"`
	Up       [3]float64 `yaml:"up,flow"`
	Right    [3]float64 `yaml:"right,flow"`
	Scale    []float64  `yaml:"scale,flow,omitempty"`
	// Matrix is column-major, aim and up placed on the configured axes.
	Matrix [16]float64 `yaml:"matrix,flow"`
}

// FrameDocument is the top-level exported frame file.
type FrameDocument struct {
	Name   string        `yaml:"name,omitempty"`
	Aim    math.Axis     `yaml:"aim_axis"`
	Up     math.Axis     `yaml:"up_axis"`
	Frames []FrameRecord `yaml:"frames"`
}

// NewFrameDocument converts output frames to their exported form.
func NewFrameDocument(name string, frames []ribbon.OutputFrame, aim, up math.Axis) FrameDocument {
	doc := FrameDocument{Name: name, Aim: aim, Up: up, Frames: make([]FrameRecord, len(frames))}
	for i, f := range frames {
		rec := FrameRecord{
			Index:    i,
			Param:    f.Param,
			Position: arr(f.Position),
			Tangent:  arr(f.Tangent),
			Up:       arr(f.Up),
			Right:    arr(f.Right),
			Matrix:   f.Matrix(aim, up),
		}
		if f.Scale != nil {
			s := arr(*f.Scale)
			rec.Scale = s[:]
		}
		doc.Frames[i] = rec
	}
	return doc
}

// WriteFrames writes output frames as a YAML frame document.
func WriteFrames(w io.Writer, name string, frames []ribbon.OutputFrame, aim, up math.Axis) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewFrameDocument(name, frames, aim, up)); err != nil {
		return err
	}
	return enc.Close()
}

// ReadFrames decodes a frame document written by WriteFrames.
func ReadFrames(r io.Reader) (FrameDocument, error) {
	var doc FrameDocument
	err := yaml.NewDecoder(r).Decode(&doc)
	return doc, err
}

func arr(v math.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
