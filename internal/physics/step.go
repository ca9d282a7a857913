// Package physics advances kinematic entities one tick at a time and resolves
// axis-aligned collisions between them. Integration is explicit Euler with a
// fixed step; there is no delta-time normalization across refresh rates.
package physics

import (
	"math"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Tilt limits in degrees (nose up is negative).
const (
	MinTilt = -30.0
	MaxTilt = 70.0
)

// Fall applies gravity then moves the body vertically:
// vy += g*dt, vy is capped at maxFall, y += vy*dt.
// A non-positive maxFall disables the cap.
func Fall(b *core.Body, gravity, maxFall, dt float64) {
	b.VY += gravity * dt
	if maxFall > 0 && b.VY > maxFall {
		b.VY = maxFall
	}
	b.Y += b.VY * dt
}

// Integrate moves the body by its velocity.
func Integrate(b *core.Body, dt float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// Tilt maps vertical velocity to a display rotation clamped to [MinTilt, MaxTilt].
func Tilt(vy, degreesPerUnit float64) float64 {
	return core.ClampF(vy*degreesPerUnit, MinTilt, MaxTilt)
}

// Speed returns the magnitude of the body's velocity.
func Speed(b *core.Body) float64 {
	return math.Hypot(b.VX, b.VY)
}

// Side identifies which wall of a playfield a body touched.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "none"
	}
}

// BounceInside clamps the body to the left, right and top walls of bounds,
// reflecting the matching velocity component. The axes are handled
// independently so a corner overshoot is fixed on both. The bottom is open:
// a body that crossed it is reported as SideBottom and left where it is so
// the caller can remove it. When two walls are hit the vertical side is
// reported.
func BounceInside(b *core.Body, bounds core.Box) Side {
	side := SideNone

	switch {
	case b.X < bounds.X:
		b.X = bounds.X
		b.VX = math.Abs(b.VX)
		side = SideLeft
	case b.X+b.W > bounds.Right():
		b.X = bounds.Right() - b.W
		b.VX = -math.Abs(b.VX)
		side = SideRight
	}

	switch {
	case b.Y < bounds.Y:
		b.Y = bounds.Y
		b.VY = math.Abs(b.VY)
		side = SideTop
	case b.Y >= bounds.Bottom():
		side = SideBottom
	}
	return side
}

// ClampX keeps the body horizontally inside [lo, hi-w].
func ClampX(b *core.Body, lo, hi float64) {
	b.X = core.ClampF(b.X, lo, hi-b.W)
}

// WrapX moves a body that left one side of [lo, hi) to the other side.
func WrapX(b *core.Body, lo, hi float64) {
	width := hi - lo
	if width <= 0 {
		return
	}
	if b.CenterX() < lo {
		b.X += width
	} else if b.CenterX() >= hi {
		b.X -= width
	}
}
