package draw

import (
	"fmt"
	"io"
)

// TerminalRenderer renders frames to an ANSI terminal through a half-block
// Canvas. It re-fits the canvas to the terminal size at the start of every
// frame, so it works for local terminals and SSH sessions alike.
type TerminalRenderer struct {
	canvas   *Canvas
	out      *frameWriter
	sizeFunc TermSizeFunc
	arenaW   float64
	arenaH   float64
	texts    []textItem
}

type textItem struct {
	pos Point
	s   string
}

// Ensure TerminalRenderer satisfies Renderer.
var _ Renderer = (*TerminalRenderer)(nil)

// NewTerminalRenderer creates a renderer that maps an arenaW x arenaH arena
// onto the terminal reported by sizeFunc. A nil sizeFunc uses
// DefaultTermSizeFunc. If the size cannot be read, 80x24 is assumed.
func NewTerminalRenderer(w io.Writer, sizeFunc TermSizeFunc, arenaW, arenaH float64) *TerminalRenderer {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	r := &TerminalRenderer{
		out:      newFrameWriter(w),
		sizeFunc: sizeFunc,
		arenaW:   arenaW,
		arenaH:   arenaH,
	}
	r.canvas = NewCanvas(arenaW, arenaH, r.fit(Fit(80, 24, arenaW, arenaH)))
	return r
}

// fit returns the viewport for the current terminal size, or fallback if
// the size is unavailable.
func (r *TerminalRenderer) fit(fallback Viewport) Viewport {
	w, h, err := r.sizeFunc()
	if err != nil || w < 1 || h < 1 {
		return fallback
	}
	return Fit(w, h, r.arenaW, r.arenaH)
}

// Clear picks up terminal resizes and starts a new frame.
func (r *TerminalRenderer) Clear() {
	r.canvas.SetViewport(r.fit(r.canvas.Viewport()))
	r.canvas.Clear()
	r.texts = r.texts[:0]
	r.out.text(seqClear)
}

// DrawCircle draws a circle onto the canvas.
func (r *TerminalRenderer) DrawCircle(center Point, radius float64, filled bool) {
	r.canvas.DrawCircle(center, radius, filled)
}

// DrawPolygon draws a polygon outline onto the canvas.
func (r *TerminalRenderer) DrawPolygon(points []Point) {
	r.canvas.DrawPolygon(points, false)
}

// DrawText queues text; it is written after the canvas so it stays on top.
func (r *TerminalRenderer) DrawText(pos Point, s string) {
	r.texts = append(r.texts, textItem{pos: pos, s: s})
}

// Present writes the frame to the terminal.
func (r *TerminalRenderer) Present() error {
	view := r.canvas.Viewport()

	// Cells arrive row by row, so the cursor only moves at row starts and gaps.
	nextCol, nextRow := -1, -1
	r.canvas.Cells(func(col, row int, ch rune) {
		if col != nextCol || row != nextRow {
			r.out.moveTo(view.Col+col, view.Row+row)
		}
		r.out.char(ch)
		nextCol, nextRow = col+1, row
	})
	r.out.border(view)

	for _, t := range r.texts {
		col, row := r.canvas.Cell(t.pos)
		r.out.textAt(view.Col+col, view.Row+row, t.s)
	}

	if err := r.out.flush(); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	return nil
}
