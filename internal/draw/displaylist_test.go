package draw

import (
	"bytes"
	"strings"
	"testing"
)

// opRecorder is a Renderer that keeps the operations drawn onto it.
type opRecorder struct {
	ops []Op
}

func (r *opRecorder) DrawCircle(center Point, radius float64, filled bool) {
	r.ops = append(r.ops, Op{Kind: OpCircle, Center: center, Radius: radius, Filled: filled})
}
func (r *opRecorder) DrawPolygon(points []Point) {
	r.ops = append(r.ops, Op{Kind: OpPolygon, Points: points})
}
func (r *opRecorder) DrawText(pos Point, s string) {
	r.ops = append(r.ops, Op{Kind: OpText, Center: pos, Text: s})
}
func (r *opRecorder) Clear()         {}
func (r *opRecorder) Present() error { return nil }

func replayed(d *DisplayList) []Op {
	var r opRecorder
	d.Replay(&r)
	return r.ops
}

func TestDisplayListPublishesOnPresent(t *testing.T) {
	var d DisplayList

	d.Clear()
	d.DrawCircle(Point{X: 1, Y: 2}, 3, true)
	pts := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 5}}
	d.DrawPolygon(pts)
	d.DrawText(Point{X: 10, Y: 10}, "Lives: 3")

	if n := len(replayed(&d)); n != 0 {
		t.Fatalf("frame visible before Present: %d ops", n)
	}
	if err := d.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	pts[0].X = 99
	ops := replayed(&d)
	if len(ops) != 3 {
		t.Fatalf("ops = %d, want 3", len(ops))
	}
	if ops[0].Kind != OpCircle || ops[0].Radius != 3 || !ops[0].Filled {
		t.Errorf("circle op = %+v", ops[0])
	}
	if ops[1].Kind != OpPolygon || ops[1].Points[0].X != 0 {
		t.Errorf("polygon op = %+v, want a copy of the points", ops[1])
	}
	if ops[2].Kind != OpText || ops[2].Text != "Lives: 3" {
		t.Errorf("text op = %+v", ops[2])
	}

	// Recording the next frame leaves the published one intact.
	d.Clear()
	d.DrawText(Point{}, "next")
	if n := len(replayed(&d)); n != 3 {
		t.Errorf("published frame has %d ops while recording, want 3", n)
	}
}

func TestDisplayListReplay(t *testing.T) {
	var d DisplayList
	d.Clear()
	d.DrawPolygon([]Point{{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 150, Y: 200}})
	d.DrawText(Point{X: 10, Y: 10}, "Level: 2")
	d.Present()

	var out bytes.Buffer
	r := NewTerminalRenderer(&out, fixedSize(64, 18), 1280, 720)
	r.Clear()
	d.Replay(r)
	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if !strings.Contains(out.String(), "Level: 2") {
		t.Error("replayed frame missing text")
	}
}
