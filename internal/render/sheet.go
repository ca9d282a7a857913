// Package render draws game entities and the shared chrome (HUD, message
// boxes) into a core.Screen. Nothing here mutates game state.
package render

import (
	"math"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/physics"
)

// Placeholder is drawn for entity kinds that have no sprite.
var Placeholder = Sprite{Glyph: '?', Color: core.ColorBrightMagenta}

// Sprite is how one entity kind looks. Multi-cell entities are filled
// with Glyph over every cell their box covers.
type Sprite struct {
	Glyph rune
	Color core.Color

	// Vary, if set, picks glyph and color from the entity's state
	// (damaged bricks, breaking platforms).
	Vary func(e *physics.Entity) (rune, core.Color)
}

func (s Sprite) look(e *physics.Entity) (rune, core.Color) {
	if s.Vary != nil {
		return s.Vary(e)
	}
	return s.Glyph, s.Color
}

// Sheet maps entity kinds to sprites.
type Sheet map[physics.Kind]Sprite

// Sprite returns the sprite for a kind, or Placeholder.
func (s Sheet) Sprite(kind physics.Kind) Sprite {
	if sp, ok := s[kind]; ok {
		return sp
	}
	return Placeholder
}

// Draw paints a live entity at its world position.
func (s Sheet) Draw(dst *core.Screen, e *physics.Entity) {
	s.DrawOffset(dst, e, 0, 0)
}

// DrawOffset paints a live entity shifted by (dx, dy) world units, which is
// how scrolling games apply their camera.
func (s Sheet) DrawOffset(dst *core.Screen, e *physics.Entity, dx, dy float64) {
	if e == nil || !e.Alive {
		return
	}
	glyph, color := s.Sprite(e.Kind).look(e)

	x0 := int(math.Floor(e.X + dx))
	y0 := int(math.Floor(e.Y + dy))
	w := max(int(math.Round(e.W)), 1)
	h := max(int(math.Round(e.H)), 1)
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			dst.SetColored(x, y, glyph, color)
		}
	}
}

// DrawWorld paints every live entity in creation order, so later entities
// are drawn on top.
func (s Sheet) DrawWorld(dst *core.Screen, w *physics.World, dx, dy float64) {
	for _, e := range w.All() {
		s.DrawOffset(dst, e, dx, dy)
	}
}
