package physics

import (
	"math"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Deflect pushes a moving body out of a static box along the axis of least
// penetration and reflects the matching velocity component away from it.
// Returns the side of the obstacle that was hit.
func Deflect(m *core.Body, obstacle core.Box) Side {
	box := m.Box()
	dx, dy := box.Penetration(obstacle)
	if dx <= 0 || dy <= 0 {
		return SideNone
	}

	if dx < dy {
		if box.CenterX() < obstacle.CenterX() {
			m.X = obstacle.X - m.W
			m.VX = -math.Abs(m.VX)
			return SideLeft
		}
		m.X = obstacle.Right()
		m.VX = math.Abs(m.VX)
		return SideRight
	}

	if box.CenterY() < obstacle.CenterY() {
		m.Y = obstacle.Y - m.H
		m.VY = -math.Abs(m.VY)
		return SideTop
	}
	m.Y = obstacle.Bottom()
	m.VY = math.Abs(m.VY)
	return SideBottom
}

// HitOffset returns where the body's center struck the paddle, from -1 at the
// left edge to +1 at the right edge.
func HitOffset(b *core.Body, paddle core.Box) float64 {
	half := paddle.W / 2
	if half <= 0 {
		return 0
	}
	return core.ClampF((b.CenterX()-paddle.CenterX())/half, -1, 1)
}

// PaddleBounce sends the body back up off a paddle. The outgoing angle from
// vertical is offset*maxAngle (radians), so it varies continuously with the
// impact point; speed is preserved.
func PaddleBounce(b *core.Body, paddle core.Box, maxAngle float64) {
	speed := Speed(b)
	angle := HitOffset(b, paddle) * maxAngle
	b.VX = speed * math.Sin(angle)
	b.VY = -speed * math.Cos(angle)
	b.Y = paddle.Y - b.H
}
