package draw

import (
	"math"
	"slices"
)

// Viewport is the block of terminal cells the arena is drawn into.
// Col and Row are the 0-based cell of its top-left corner.
type Viewport struct {
	Cols, Rows int
	Col, Row   int
}

// Fit returns the largest viewport that fits a termWidth x termHeight
// terminal while keeping the arena's aspect ratio, centered on the terminal.
// A cell holds two square dots: one column wide, half a row tall.
func Fit(termWidth, termHeight int, arenaW, arenaH float64) Viewport {
	rows := termHeight
	cols := int(math.Round(float64(rows) * 2 * arenaW / arenaH))
	if cols > termWidth {
		cols = termWidth
		rows = min(int(math.Round(float64(cols)*arenaH/(2*arenaW))), termHeight)
	}
	cols, rows = max(cols, 1), max(rows, 1)
	return Viewport{
		Cols: cols,
		Rows: rows,
		Col:  max((termWidth-cols)/2, 0),
		Row:  max((termHeight-rows)/2, 0),
	}
}

// Canvas rasterizes arena shapes into a grid of dots, two per terminal cell,
// which are later read back as half-block characters.
type Canvas struct {
	arenaW, arenaH float64
	view           Viewport
	sx, sy         float64 // Dots per arena unit
	dots           []bool  // Row-major, view.Cols wide, 2*view.Rows tall

	ring  []Point   // Circle vertices, reused
	edges []Point   // Polygon vertices in dot space, reused
	xs    []float64 // Scanline crossings, reused
}

// NewCanvas creates a canvas for an arenaW x arenaH arena drawn into view.
func NewCanvas(arenaW, arenaH float64, view Viewport) *Canvas {
	c := &Canvas{arenaW: arenaW, arenaH: arenaH}
	c.SetViewport(view)
	return c
}

// SetViewport moves or resizes the canvas. Dots are kept only if the size
// is unchanged.
func (c *Canvas) SetViewport(view Viewport) {
	if view.Cols != c.view.Cols || view.Rows != c.view.Rows || c.dots == nil {
		c.dots = make([]bool, view.Cols*view.Rows*2)
	}
	c.view = view
	c.sx = float64(view.Cols) / c.arenaW
	c.sy = float64(view.Rows*2) / c.arenaH
}

// Viewport returns where the canvas sits on the terminal.
func (c *Canvas) Viewport() Viewport {
	return c.view
}

// Clear unsets every dot.
func (c *Canvas) Clear() {
	clear(c.dots)
}

// toDot maps an arena point to dot coordinates.
func (c *Canvas) toDot(p Point) (x, y int) {
	return int(math.Round(p.X * c.sx)), int(math.Round(p.Y * c.sy))
}

func (c *Canvas) plot(x, y int) {
	if x < 0 || y < 0 || x >= c.view.Cols || y >= c.view.Rows*2 {
		return
	}
	c.dots[y*c.view.Cols+x] = true
}

// DrawLine draws a straight segment between two arena points.
func (c *Canvas) DrawLine(from, to Point) {
	x, y := c.toDot(from)
	x2, y2 := c.toDot(to)

	dx, dy := abs(x2-x), -abs(y2-y)
	stepX, stepY := 1, 1
	if x > x2 {
		stepX = -1
	}
	if y > y2 {
		stepY = -1
	}

	// Bresenham: e tracks the error of the next dot for both axes at once.
	e := dx + dy
	for {
		c.plot(x, y)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += stepX
		}
		if e2 <= dx {
			e += dx
			y += stepY
		}
	}
}

// DrawPolygon draws a closed outline through points, filling it if filled is set.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fill(points)
	}
	prev := points[len(points)-1]
	for _, p := range points {
		c.DrawLine(prev, p)
		prev = p
	}
}

// DrawCircle draws a circle as a regular polygon with a vertex count that
// grows with its size on screen. Circles under one dot become a single dot.
func (c *Canvas) DrawCircle(center Point, radius float64, filled bool) {
	dots := radius * max(c.sx, c.sy)
	if dots < 1 {
		c.plot(c.toDot(center))
		return
	}

	n := min(max(int(math.Ceil(dots*2)), 8), 48)
	c.ring = slices.Grow(c.ring[:0], n)[:n]
	step := 2 * math.Pi / float64(n)
	for i := range c.ring {
		sin, cos := math.Sincos(float64(i) * step)
		c.ring[i] = Point{X: center.X + cos*radius, Y: center.Y + sin*radius}
	}
	c.DrawPolygon(c.ring, filled)
}

// fill sets every dot whose center lies inside the polygon, using even-odd
// scanlines through dot centers.
func (c *Canvas) fill(points []Point) {
	c.edges = c.edges[:0]
	top, bottom := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		d := Point{X: p.X * c.sx, Y: p.Y * c.sy}
		c.edges = append(c.edges, d)
		top, bottom = min(top, d.Y), max(bottom, d.Y)
	}

	first := max(int(math.Floor(top)), 0)
	last := min(int(math.Ceil(bottom)), c.view.Rows*2-1)
	for y := first; y <= last; y++ {
		mid := float64(y) + 0.5

		c.xs = c.xs[:0]
		prev := c.edges[len(c.edges)-1]
		for _, p := range c.edges {
			if (prev.Y <= mid) != (p.Y <= mid) {
				c.xs = append(c.xs, prev.X+(mid-prev.Y)/(p.Y-prev.Y)*(p.X-prev.X))
			}
			prev = p
		}
		slices.Sort(c.xs)

		for i := 0; i+1 < len(c.xs); i += 2 {
			for x := int(math.Ceil(c.xs[i])); x <= int(math.Floor(c.xs[i+1])); x++ {
				c.plot(x, y)
			}
		}
	}
}

// Cells calls fn for each terminal cell with at least one dot set, passing
// the half-block character for its pair of dots. col and row are relative
// to the viewport.
func (c *Canvas) Cells(fn func(col, row int, ch rune)) {
	w := c.view.Cols
	for row := 0; row < c.view.Rows; row++ {
		upper := c.dots[2*row*w : (2*row+1)*w]
		lower := c.dots[(2*row+1)*w : (2*row+2)*w]
		for col := range w {
			switch {
			case upper[col] && lower[col]:
				fn(col, row, BlockFull)
			case upper[col]:
				fn(col, row, BlockUpperHalf)
			case lower[col]:
				fn(col, row, BlockLowerHalf)
			}
		}
	}
}

// Cell returns the viewport-relative cell containing arena point p.
func (c *Canvas) Cell(p Point) (col, row int) {
	x, y := c.toDot(p)
	return x, y / 2
}
