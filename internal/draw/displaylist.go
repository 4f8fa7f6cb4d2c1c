package draw

// OpKind identifies a recorded drawing operation.
type OpKind int

const (
	OpCircle OpKind = iota
	OpPolygon
	OpText
)

// Op is one recorded drawing operation.
type Op struct {
	Kind   OpKind
	Center Point   // OpCircle, and the text position for OpText
	Radius float64 // OpCircle
	Filled bool    // OpCircle
	Points []Point // OpPolygon
	Text   string  // OpText
}

// DisplayList is a Renderer that records a frame instead of drawing it.
// Present publishes the recorded frame; Replay draws the last published frame
// onto another Renderer. It lets a backend that owns its own draw callback
// (such as a windowing library) show frames produced by the game loop.
type DisplayList struct {
	building []Op
	frame    []Op
}

// Ensure DisplayList satisfies Renderer.
var _ Renderer = (*DisplayList)(nil)

// Clear starts recording a new frame.
func (d *DisplayList) Clear() {
	d.building = d.building[:0]
}

// DrawCircle records a circle.
func (d *DisplayList) DrawCircle(center Point, radius float64, filled bool) {
	d.building = append(d.building, Op{Kind: OpCircle, Center: center, Radius: radius, Filled: filled})
}

// DrawPolygon records a polygon. The points are copied.
func (d *DisplayList) DrawPolygon(points []Point) {
	d.building = append(d.building, Op{Kind: OpPolygon, Points: append([]Point(nil), points...)})
}

// DrawText records a line of text.
func (d *DisplayList) DrawText(pos Point, s string) {
	d.building = append(d.building, Op{Kind: OpText, Center: pos, Text: s})
}

// Present publishes the recorded frame.
func (d *DisplayList) Present() error {
	d.frame, d.building = d.building, d.frame[:0]
	return nil
}

// Replay draws the last published frame onto r. It does not call Clear or Present.
func (d *DisplayList) Replay(r Renderer) {
	for _, op := range d.frame {
		switch op.Kind {
		case OpCircle:
			r.DrawCircle(op.Center, op.Radius, op.Filled)
		case OpPolygon:
			r.DrawPolygon(op.Points)
		case OpText:
			r.DrawText(op.Center, op.Text)
		}
	}
}
