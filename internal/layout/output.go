package layout

import "github.com/strandwm/strand/internal/geometry"

// Transform is the output rotation/flip reported by the backend. The engine
// only needs it to orient logical sizes; it never touches pixels.
type Transform int

const (
	TransformNormal Transform = iota
	Transform90
	Transform180
	Transform270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

// rotated reports whether the transform swaps width and height.
func (t Transform) rotated() bool {
	switch t {
	case Transform90, Transform270, TransformFlipped90, TransformFlipped270:
		return true
	}
	return false
}

// Output mirrors one connected output as reported by the backend: position
// in the global layout, mode size in physical pixels, scale, transform, and
// the exclusive-zone insets reserved by layer surfaces.
type Output struct {
	ID        OutputID
	Make      string
	Model     string
	Position  geometry.Point // logical position in the global output layout
	Mode      geometry.Size  // physical pixels
	Scale     float64
	Transform Transform

	// Reserved is the sum of exclusive zones claimed by panels and bars on
	// this output, in logical pixels.
	Reserved geometry.Insets
}

// LogicalSize returns the output's size in logical pixels after scale and
// transform.
func (o *Output) LogicalSize() geometry.Size {
	scale := o.Scale
	if scale <= 0 {
		scale = 1
	}
	w := o.Mode.Width / scale
	h := o.Mode.Height / scale
	if o.Transform.rotated() {
		w, h = h, w
	}
	return geometry.Size{Width: w, Height: h}
}

// Geometry returns the output's full logical rectangle.
func (o *Output) Geometry() geometry.Rect {
	size := o.LogicalSize()
	return geometry.Rect{X: o.Position.X, Y: o.Position.Y, Width: size.Width, Height: size.Height}
}

// WorkArea returns the usable rectangle: the logical geometry minus the
// reserved exclusive zones. Recomputed on demand, never cached.
func (o *Output) WorkArea() geometry.Rect {
	return o.Geometry().Shrink(o.Reserved)
}
