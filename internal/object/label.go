package object

import (
	"github.com/tomz197/asteroidfield/internal/draw"
	"github.com/tomz197/asteroidfield/internal/physics"
)

// Label is a line of HUD text pinned to an arena position.
type Label struct {
	Position physics.Vector
	Text     string
}

// NewLabel creates a label at pos.
func NewLabel(pos physics.Vector, text string) *Label {
	return &Label{Position: pos, Text: text}
}

// Update does nothing; labels are changed by their owner.
func (l *Label) Update(UpdateContext) bool {
	return false
}

// Draw renders the label text.
func (l *Label) Draw(r draw.Renderer) {
	if l.Text == "" {
		return
	}
	r.DrawText(point(l.Position), l.Text)
}
