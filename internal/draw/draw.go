// Package draw provides terminal rendering primitives and the Renderer
// interface the game draws through.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Renderer is the drawing surface the simulation renders a frame onto.
// Coordinates are in arena units; implementations scale as needed.
type Renderer interface {
	// DrawCircle draws a circle outline, or a disc if filled is true.
	DrawCircle(center Point, radius float64, filled bool)
	// DrawPolygon draws a closed polygon outline.
	DrawPolygon(points []Point)
	// DrawText draws s with its top-left corner at pos.
	DrawText(pos Point, s string)
	// Clear starts a new frame.
	Clear()
	// Present shows the frame.
	Present() error
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
