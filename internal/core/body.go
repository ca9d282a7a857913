package core

// Body is the kinematic state of an entity: position, velocity and size.
type Body struct {
	X, Y   float64 // Top-left corner
	VX, VY float64 // Velocity per tick
	W, H   float64
}

// Box returns the body's bounding box.
func (b *Body) Box() Box {
	return Box{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Right returns the x coordinate just past the body's right edge.
func (b *Body) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y coordinate just past the body's bottom edge.
func (b *Body) Bottom() float64 {
	return b.Y + b.H
}

// CenterX returns the horizontal center of the body.
func (b *Body) CenterX() float64 {
	return b.X + b.W/2
}

// CenterY returns the vertical center of the body.
func (b *Body) CenterY() float64 {
	return b.Y + b.H/2
}

// Valid reports whether position, velocity and size are finite.
func (b *Body) Valid() bool {
	return Finite(b.X, b.Y, b.VX, b.VY, b.W, b.H)
}
